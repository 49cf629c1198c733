package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestUniquePathSuffixes(t *testing.T) {
	dir := t.TempDir()
	mtime := time.Now()

	target := filepath.Join(dir, "a.jpg")
	if got := uniquePath(target); got != target {
		t.Fatalf("free name must be kept: %q", got)
	}

	writeFile(t, target, "x", mtime)
	if got := uniquePath(target); got != filepath.Join(dir, "a_1.jpg") {
		t.Fatalf("first collision = %q, want a_1.jpg", got)
	}

	writeFile(t, filepath.Join(dir, "a_1.jpg"), "x", mtime)
	if got := uniquePath(target); got != filepath.Join(dir, "a_2.jpg") {
		t.Fatalf("second collision = %q, want a_2.jpg", got)
	}
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.jpg")
	dst := filepath.Join(dir, "dst.jpg")
	writeFile(t, src, "payload", time.Now())

	if err := moveFile(src, dst); err != nil {
		t.Fatalf("move: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatal("source must be gone after move")
	}
	data, err := os.ReadFile(dst)
	if err != nil || string(data) != "payload" {
		t.Fatalf("destination content %q err %v", data, err)
	}
}

func TestCopyFilePreservesModTime(t *testing.T) {
	dir := t.TempDir()
	mtime := time.Date(2023, 5, 10, 14, 30, 0, 0, time.Local)
	src := filepath.Join(dir, "src.jpg")
	dst := filepath.Join(dir, "dst.jpg")
	writeFile(t, src, "payload", mtime)

	if err := copyFile(src, dst); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatal("source must survive a copy")
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Truncate(time.Second).Equal(mtime.Truncate(time.Second)) {
		t.Fatalf("mtime not preserved: %v != %v", info.ModTime(), mtime)
	}
}

func TestCleanEmptyDirs(t *testing.T) {
	root := t.TempDir()

	// a/b is empty after the run, c still has content, root is kept.
	if err := os.MkdirAll(filepath.Join(root, "a", "b"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(root, "c", "keep.jpg"), "x", time.Now())

	removed := cleanEmptyDirs(root)
	if removed != 2 {
		t.Fatalf("removed = %d, want 2 (a and a/b)", removed)
	}
	if _, err := os.Stat(filepath.Join(root, "a")); !os.IsNotExist(err) {
		t.Fatal("emptied tree must be removed")
	}
	if _, err := os.Stat(filepath.Join(root, "c", "keep.jpg")); err != nil {
		t.Fatal("non-empty directories must be untouched")
	}
	if _, err := os.Stat(root); err != nil {
		t.Fatal("the source root itself must be kept")
	}
}
