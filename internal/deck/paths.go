package deck

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDeckPath resolves the canonical deck file in priority order:
// ORDKORT_DECK, a data/words.csv under the working directory, then the XDG
// data dir.
func DefaultDeckPath() (string, error) {
	if p := os.Getenv("ORDKORT_DECK"); p != "" {
		return p, nil
	}
	local := filepath.Join("data", "words.csv")
	if _, err := os.Stat(local); err == nil {
		return local, nil
	}
	return dataFile("words.csv")
}

// DefaultProgressPath resolves the progress file: ORDKORT_PROGRESS, then the
// XDG data dir.
func DefaultProgressPath() (string, error) {
	if p := os.Getenv("ORDKORT_PROGRESS"); p != "" {
		return p, nil
	}
	return dataFile("progress.csv")
}

func dataFile(name string) (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "ordkort", name), nil
}
