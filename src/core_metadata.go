package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

const unknownDevice = "Unknown_Device"

// readCaptureTime extracts the embedded capture timestamp from an image
// file. It prefers DateTimeOriginal and falls back to DateTime. Any failure
// (unreadable file, no EXIF block, missing tag, bad value) returns ok=false;
// this is a best-effort probe and never an error.
func readCaptureTime(path string) (time.Time, bool) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, false
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, false
	}

	// DateTime() tries DateTimeOriginal before the generic DateTime tag
	// and parses the fixed "2006:01:02 15:04:05" layout.
	tm, err := x.DateTime()
	if err != nil {
		return time.Time{}, false
	}
	return tm, true
}

// readDeviceModel returns a cleaned camera identifier from the Model tag,
// falling back to Make. Video files report "Video"; anything without a
// usable tag reports "Unknown_Device".
func readDeviceModel(path string) string {
	if detectMediaType(path) == TypeVideo {
		return "Video"
	}

	f, err := os.Open(path)
	if err != nil {
		return unknownDevice
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return unknownDevice
	}

	for _, field := range []exif.FieldName{exif.Model, exif.Make} {
		tag, err := x.Get(field)
		if err != nil {
			continue
		}
		val, err := tag.StringVal()
		if err != nil {
			continue
		}
		val = strings.TrimSpace(strings.ReplaceAll(val, "\x00", ""))
		if val != "" {
			return val
		}
	}
	return unknownDevice
}

// resolveShootingTime determines the effective capture time for a record:
// embedded metadata for photos when present, filesystem modification time in
// every other case. A file that cannot be stat'ed anymore (deleted between
// scan and placement) is an error for the caller to count.
func resolveShootingTime(rec *FileRecord) (time.Time, error) {
	if rec.Type == TypePhoto {
		if tm, ok := readCaptureTime(rec.Path); ok {
			return tm, nil
		}
	}

	info, err := os.Stat(rec.Path)
	if err != nil {
		return time.Time{}, fmt.Errorf("resolve shooting time: %w", err)
	}
	return info.ModTime(), nil
}
