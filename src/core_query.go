package main

import (
	"path/filepath"
	"sort"
	"strings"
)

// sortRecords orders a scanned listing for display. Sorting by date resolves
// shooting times first; records whose time cannot be resolved sort first.
func sortRecords(records []*FileRecord, key string, reverse bool) {
	var less func(a, b *FileRecord) bool

	switch strings.ToLower(strings.TrimSpace(key)) {
	case "size":
		less = func(a, b *FileRecord) bool { return a.Size < b.Size }
	case "date":
		for _, rec := range records {
			fingerprint(rec)
		}
		less = func(a, b *FileRecord) bool { return a.Taken.Before(b.Taken) }
	default:
		less = func(a, b *FileRecord) bool {
			return strings.ToLower(filepath.Base(a.Path)) < strings.ToLower(filepath.Base(b.Path))
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		if reverse {
			return less(records[j], records[i])
		}
		return less(records[i], records[j])
	})
}

// filterRecords keeps the records whose base name contains the query,
// case-insensitively, optionally restricted to a set of extensions. An empty
// query matches everything.
func filterRecords(records []*FileRecord, query string, exts []string) []*FileRecord {
	query = strings.ToLower(strings.TrimSpace(query))
	wanted := normalizeExtensions(exts)

	var out []*FileRecord
	for _, rec := range records {
		if query != "" && !strings.Contains(strings.ToLower(filepath.Base(rec.Path)), query) {
			continue
		}
		if len(wanted) > 0 && !wanted[rec.Ext] {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// normalizeExtensions lower-cases a filter list and ensures each entry
// carries a leading dot, so "JPG" and ".jpg" select the same files.
func normalizeExtensions(exts []string) map[string]bool {
	wanted := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		wanted[ext] = true
	}
	return wanted
}
