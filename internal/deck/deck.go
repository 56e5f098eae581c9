// Package deck owns the canonical word list and the in-progress learning
// pool. The canonical list comes from a two-column CSV deck file and is
// read-only after load; the pool is the mutable set of words not yet marked
// known, persisted to a progress CSV of the same shape.
package deck

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var (
	// ErrDeckUnavailable reports that the canonical word file is missing or
	// unparseable. There is no fallback; callers should exit with a message.
	ErrDeckUnavailable = errors.New("deck unavailable")

	// ErrProgressWrite reports a failed progress write. The in-memory pool is
	// still valid and the next persist re-attempts.
	ErrProgressWrite = errors.New("write progress")
)

// DefaultHeader is the column pair written by the importer when the input
// carries no usable header row.
var DefaultHeader = [2]string{"Swedish", "English"}

// Entry is a single vocabulary card. Equality is by value.
type Entry struct {
	Source string
	Target string
}

// Store holds the canonical word list and the pool. It is not safe for
// concurrent use; the drill is single-threaded by design.
type Store struct {
	deckPath     string
	progressPath string
	header       [2]string
	canonical    []Entry
	pool         []Entry
}

// Open loads the canonical deck and the saved progress.
//
// A missing progress file, an empty one, or one with a header but no data
// rows all seed the pool from the canonical list. A non-empty progress file
// becomes the pool verbatim; the canonical list is still kept for resets. An
// unparseable progress file is treated like a missing one — the canonical
// list is the source of truth and the next persist overwrites it.
func Open(deckPath, progressPath string) (*Store, error) {
	header, canonical, err := readFile(deckPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeckUnavailable, err)
	}
	if len(canonical) == 0 {
		return nil, fmt.Errorf("%w: %s has no word rows", ErrDeckUnavailable, deckPath)
	}

	s := &Store{
		deckPath:     deckPath,
		progressPath: progressPath,
		header:       header,
		canonical:    canonical,
	}

	_, saved, err := readFile(progressPath)
	if err != nil || len(saved) == 0 {
		s.pool = copyEntries(canonical)
	} else {
		s.pool = saved
	}
	return s, nil
}

// Remaining returns the number of words still in the pool.
func (s *Store) Remaining() int { return len(s.pool) }

// Total returns the size of the canonical list.
func (s *Store) Total() int { return len(s.canonical) }

// At returns the pool entry at index i.
func (s *Store) At(i int) Entry { return s.pool[i] }

// Entries returns a copy of the current pool.
func (s *Store) Entries() []Entry { return copyEntries(s.pool) }

// Canonical returns a copy of the canonical list.
func (s *Store) Canonical() []Entry { return copyEntries(s.canonical) }

// Header returns the deck's column names, reused for the progress file.
func (s *Store) Header() [2]string { return s.header }

// Remove deletes exactly one pool entry equal to e and reports whether a
// matching instance was found. Duplicated pairs lose a single copy per call.
func (s *Store) Remove(e Entry) bool {
	for i, have := range s.pool {
		if have == e {
			last := len(s.pool) - 1
			s.pool[i] = s.pool[last]
			s.pool = s.pool[:last]
			return true
		}
	}
	return false
}

// Reset reloads the pool from the canonical list. The progress file is left
// untouched until the next Persist.
func (s *Store) Reset() {
	s.pool = copyEntries(s.canonical)
}

// Persist overwrites the progress file with the current pool. An empty pool
// writes a header-only file, which reads back as "no progress yet".
func (s *Store) Persist() error {
	if err := WriteFile(s.progressPath, s.header, s.pool); err != nil {
		return fmt.Errorf("%w: %v", ErrProgressWrite, err)
	}
	return nil
}

// WriteFile writes entries as a two-column CSV with the given header,
// creating parent directories as needed. The importer uses it to build
// canonical decks.
func WriteFile(path string, header [2]string, entries []Entry) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	records := make([][]string, 0, len(entries)+1)
	records = append(records, header[:])
	for _, e := range entries {
		records = append(records, []string{e.Source, e.Target})
	}
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// readFile parses a two-column CSV. The first row is the header; a file with
// a header but no data rows yields zero entries, as does an empty file.
func readFile(path string) ([2]string, []Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return [2]string{}, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2

	var (
		header  [2]string
		entries []Entry
		first   = true
	)
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return header, nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if first {
			header = [2]string{rec[0], rec[1]}
			first = false
			continue
		}
		entries = append(entries, Entry{Source: rec[0], Target: rec[1]})
	}
	return header, entries, nil
}

func copyEntries(in []Entry) []Entry {
	out := make([]Entry, len(in))
	copy(out, in)
	return out
}
