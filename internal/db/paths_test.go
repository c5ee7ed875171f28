package db

import (
	"path/filepath"
	"testing"
)

func TestDataDirEnvOverride(t *testing.T) {
	t.Setenv("GLOSA_DATA_DIR", "/tmp/glosa-test")
	dir, err := DataDir()
	if err != nil {
		t.Fatalf("data dir: %v", err)
	}
	if dir != "/tmp/glosa-test" {
		t.Errorf("dir: got %q, want %q", dir, "/tmp/glosa-test")
	}
}

func TestDataDirXDG(t *testing.T) {
	t.Setenv("GLOSA_DATA_DIR", "")
	t.Setenv("XDG_DATA_HOME", "/home/u/.local/share")
	dir, err := DataDir()
	if err != nil {
		t.Fatalf("data dir: %v", err)
	}
	if dir != filepath.Join("/home/u/.local/share", "glosa") {
		t.Errorf("dir: got %q", dir)
	}
}

func TestCoursePath(t *testing.T) {
	got := CoursePath("/data", "eng", "spa")
	if got != filepath.Join("/data", "eng-spa.db") {
		t.Errorf("course path: got %q", got)
	}
}
