package deck

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeCSV(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func testDeck(t *testing.T) (deckPath, progressPath string) {
	t.Helper()
	dir := t.TempDir()
	deckPath = filepath.Join(dir, "words.csv")
	progressPath = filepath.Join(dir, "progress.csv")
	writeCSV(t, deckPath, "Swedish,English\nhej,hello\ntack,thanks\nbra,good\n")
	return deckPath, progressPath
}

func sorted(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool { return out[i].Source < out[j].Source })
	return out
}

func TestOpenMissingDeck(t *testing.T) {
	dir := t.TempDir()
	_, err := Open(filepath.Join(dir, "nope.csv"), filepath.Join(dir, "progress.csv"))
	if !errors.Is(err, ErrDeckUnavailable) {
		t.Fatalf("err = %v, want ErrDeckUnavailable", err)
	}
}

func TestOpenEmptyDeck(t *testing.T) {
	dir := t.TempDir()
	deckPath := filepath.Join(dir, "words.csv")
	writeCSV(t, deckPath, "Swedish,English\n")
	_, err := Open(deckPath, filepath.Join(dir, "progress.csv"))
	if !errors.Is(err, ErrDeckUnavailable) {
		t.Fatalf("err = %v, want ErrDeckUnavailable for header-only deck", err)
	}
}

func TestOpenSeedsFromCanonical(t *testing.T) {
	tests := []struct {
		name     string
		progress *string // nil = no file
	}{
		{"missing progress", nil},
		{"empty progress", strPtr("")},
		{"header-only progress", strPtr("Swedish,English\n")},
		{"malformed progress", strPtr("only-one-column\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deckPath, progressPath := testDeck(t)
			if tt.progress != nil {
				writeCSV(t, progressPath, *tt.progress)
			}

			s, err := Open(deckPath, progressPath)
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			if s.Remaining() != 3 {
				t.Errorf("Remaining() = %d, want 3", s.Remaining())
			}
			want := sorted(s.Canonical())
			got := sorted(s.Entries())
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("pool[%d] = %v, want %v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestOpenUsesProgressNotCanonical(t *testing.T) {
	deckPath, progressPath := testDeck(t)
	// Progress deliberately differs from the canonical list.
	writeCSV(t, progressPath, "Swedish,English\nkatt,cat\n")

	s, err := Open(deckPath, progressPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.Remaining() != 1 {
		t.Fatalf("Remaining() = %d, want 1", s.Remaining())
	}
	if got := s.At(0); got != (Entry{"katt", "cat"}) {
		t.Errorf("pool[0] = %v, want {katt cat}", got)
	}
	if s.Total() != 3 {
		t.Errorf("Total() = %d, want canonical size 3", s.Total())
	}
}

func TestRemoveOneInstance(t *testing.T) {
	dir := t.TempDir()
	deckPath := filepath.Join(dir, "words.csv")
	writeCSV(t, deckPath, "Swedish,English\nhej,hello\nhej,hello\ntack,thanks\n")

	s, err := Open(deckPath, filepath.Join(dir, "progress.csv"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if !s.Remove(Entry{"hej", "hello"}) {
		t.Fatal("Remove returned false for present entry")
	}
	if s.Remaining() != 2 {
		t.Fatalf("Remaining() = %d, want 2 (one duplicate removed)", s.Remaining())
	}
	// The second copy is still there.
	found := false
	for _, e := range s.Entries() {
		if e == (Entry{"hej", "hello"}) {
			found = true
		}
	}
	if !found {
		t.Error("both duplicate copies were removed, want exactly one")
	}

	if s.Remove(Entry{"saknas", "missing"}) {
		t.Error("Remove returned true for absent entry")
	}
}

func TestPersistRoundTrip(t *testing.T) {
	deckPath, progressPath := testDeck(t)
	s, err := Open(deckPath, progressPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	s.Remove(Entry{"hej", "hello"})
	if err := s.Persist(); err != nil {
		t.Fatalf("persist: %v", err)
	}

	reloaded, err := Open(deckPath, progressPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got := sorted(reloaded.Entries())
	want := []Entry{{"bra", "good"}, {"tack", "thanks"}}
	if len(got) != len(want) {
		t.Fatalf("reloaded pool size = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("reloaded[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPersistEmptyPoolReseedsOnReload(t *testing.T) {
	deckPath, progressPath := testDeck(t)
	s, err := Open(deckPath, progressPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for _, e := range s.Entries() {
		s.Remove(e)
	}
	if err := s.Persist(); err != nil {
		t.Fatalf("persist: %v", err)
	}

	// A fully learned deck reads back as "no progress" and reseeds.
	reloaded, err := Open(deckPath, progressPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reloaded.Remaining() != 3 {
		t.Errorf("Remaining() after empty persist = %d, want 3", reloaded.Remaining())
	}
}

func TestPersistFailure(t *testing.T) {
	deckPath, _ := testDeck(t)
	// Progress path inside a file (not a directory) cannot be created.
	s, err := Open(deckPath, filepath.Join(deckPath, "progress.csv"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Persist(); !errors.Is(err, ErrProgressWrite) {
		t.Fatalf("persist err = %v, want ErrProgressWrite", err)
	}
	// The pool is untouched.
	if s.Remaining() != 3 {
		t.Errorf("Remaining() = %d, want 3 after failed persist", s.Remaining())
	}
}

func TestReset(t *testing.T) {
	deckPath, progressPath := testDeck(t)
	s, err := Open(deckPath, progressPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s.Remove(Entry{"hej", "hello"})
	s.Remove(Entry{"tack", "thanks"})

	s.Reset()
	if s.Remaining() != s.Total() {
		t.Errorf("Remaining() = %d, want Total() = %d after reset", s.Remaining(), s.Total())
	}
}

func TestHeaderPreserved(t *testing.T) {
	dir := t.TempDir()
	deckPath := filepath.Join(dir, "words.csv")
	progressPath := filepath.Join(dir, "progress.csv")
	writeCSV(t, deckPath, "Suomi,English\nkissa,cat\nkoira,dog\n")

	s, err := Open(deckPath, progressPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Persist(); err != nil {
		t.Fatalf("persist: %v", err)
	}

	data, err := os.ReadFile(progressPath)
	if err != nil {
		t.Fatalf("read progress: %v", err)
	}
	if got := string(data[:13]); got != "Suomi,English" {
		t.Errorf("progress header = %q, want %q", got, "Suomi,English")
	}
}

func strPtr(s string) *string { return &s }
