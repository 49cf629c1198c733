package main

import (
	"fmt"
	"path/filepath"
	"strings"
)

// pathResolver computes destination directories (relative to the output
// root) for one run. For event mode the labels map is pre-computed by the
// clustering pass before any file is placed.
type pathResolver struct {
	mode     OrganizeMode
	template string
	labels   map[*FileRecord]string // event mode: record -> event folder
}

// DestDir returns the destination directory for a record, relative to the
// output root. A template that cannot be expanded falls back to the by-date
// layout for that file and returns the template error as a notice; the run
// keeps going.
func (r *pathResolver) DestDir(rec *FileRecord) (string, error) {
	switch r.mode {
	case ModeByEvent:
		if label, ok := r.labels[rec]; ok {
			return label, nil
		}
		return dateDir(rec), nil
	case ModeByTemplate:
		dir, err := expandTemplate(r.template, rec)
		if err != nil {
			return dateDir(rec), err
		}
		return dir, nil
	default:
		return dateDir(rec), nil
	}
}

// dateDir is the YYYY/MM/DD layout shared by the by-date mode and every
// fallback path.
func dateDir(rec *FileRecord) string {
	return filepath.Join(
		rec.Taken.Format("2006"),
		rec.Taken.Format("01"),
		rec.Taken.Format("02"),
	)
}

// dateName is the rename-by-date filename: YYYYMMDD_HHMMSS plus the
// lower-cased original extension.
func dateName(rec *FileRecord) string {
	return rec.Taken.Format("20060102_150405") + rec.Ext
}

// expandTemplate substitutes every placeholder in a path template per-file.
// Supported tokens: {year} {month} {day} {camera} {ext} {type}. Month and
// day are zero-padded, {ext} has no leading dot, {camera} is sanitized so a
// device string can never introduce extra path elements. Any placeholder
// left unsubstituted makes the expansion fail.
func expandTemplate(template string, rec *FileRecord) (string, error) {
	if template == "" {
		return "", fmt.Errorf("empty template")
	}

	replacer := strings.NewReplacer(
		"{year}", rec.Taken.Format("2006"),
		"{month}", rec.Taken.Format("01"),
		"{day}", rec.Taken.Format("02"),
		"{ext}", strings.TrimPrefix(rec.Ext, "."),
		"{type}", rec.Type.String(),
		"{camera}", sanitizeCamera(readDeviceModel(rec.Path)),
	)
	expanded := replacer.Replace(template)

	if i := strings.IndexAny(expanded, "{}"); i >= 0 {
		return "", fmt.Errorf("template %q: unknown placeholder near %q", template, expanded[i:])
	}

	return filepath.FromSlash(expanded), nil
}

// sanitizeCamera strips characters that would change the directory layout
// out of a device identifier.
func sanitizeCamera(camera string) string {
	camera = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, camera)
	return strings.Join(strings.Fields(camera), "_")
}
