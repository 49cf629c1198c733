package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/otiai10/copy"
)

// moveFile moves a file, with fallback to copy+delete if cross-device
func moveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}

	if err := copyFile(src, dst); err != nil {
		return fmt.Errorf("copy: %w", err)
	}

	if err := os.Remove(src); err != nil {
		return fmt.Errorf("remove source: %w", err)
	}

	return nil
}

// copyFile copies a file preserving permissions and timestamps, so a copied
// file keeps the same modification-time fingerprint as its source.
func copyFile(src, dst string) error {
	return copy.Copy(src, dst, copy.Options{PreserveTimes: true})
}

// uniquePath adds a counter before the extension until the name is unused
func uniquePath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}

	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	base := filepath.Base(path)
	name := base[:len(base)-len(ext)]

	for i := 1; ; i++ {
		newPath := filepath.Join(dir, fmt.Sprintf("%s_%d%s", name, i, ext))
		if _, err := os.Stat(newPath); os.IsNotExist(err) {
			return newPath
		}
	}
}

// cleanEmptyDirs removes directories under root that are empty after a
// move-mode run, deepest first. The root itself is kept. Removal failures
// are ignored; a directory that still has content simply stays.
func cleanEmptyDirs(root string) int {
	var dirs []string
	filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() && path != root {
			dirs = append(dirs, path)
		}
		return nil
	})

	// Deepest first so emptied parents become removable too.
	sort.Slice(dirs, func(i, j int) bool {
		return strings.Count(dirs[i], string(os.PathSeparator)) > strings.Count(dirs[j], string(os.PathSeparator))
	})

	removed := 0
	for _, dir := range dirs {
		if err := os.Remove(dir); err == nil {
			removed++
		}
	}
	return removed
}
