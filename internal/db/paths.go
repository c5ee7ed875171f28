package db

import (
	"fmt"
	"os"
	"path/filepath"
)

// DataDir returns the directory where course databases live:
// $GLOSA_DATA_DIR if set, otherwise $XDG_DATA_HOME/glosa, otherwise
// ~/.local/share/glosa.
func DataDir() (string, error) {
	if dir := os.Getenv("GLOSA_DATA_DIR"); dir != "" {
		return dir, nil
	}
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "glosa"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", "glosa"), nil
}

// CoursePath returns the database path for a course pair, e.g.
// <data dir>/eng-spa.db.
func CoursePath(dataDir, l1, l2 string) string {
	return filepath.Join(dataDir, fmt.Sprintf("%s-%s.db", l1, l2))
}
