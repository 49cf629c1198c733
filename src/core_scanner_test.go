package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDetectMediaType(t *testing.T) {
	cases := map[string]MediaType{
		"a.jpg":       TypePhoto,
		"b.JPEG":      TypePhoto,
		"raw/c.CR2":   TypePhoto,
		"d.dng":       TypePhoto,
		"e.mp4":       TypeVideo,
		"f.MOV":       TypeVideo,
		"notes.txt":   TypeUnknown,
		"noextension": TypeUnknown,
	}
	for path, want := range cases {
		if got := detectMediaType(path); got != want {
			t.Errorf("detectMediaType(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestValidateSources(t *testing.T) {
	dir := t.TempDir()
	if err := validateSources([]string{dir}); err != nil {
		t.Fatalf("valid source rejected: %v", err)
	}
	if err := validateSources(nil); err == nil {
		t.Fatal("empty source list must be rejected")
	}
	if err := validateSources([]string{filepath.Join(dir, "missing")}); err == nil {
		t.Fatal("missing source must be rejected")
	}

	file := filepath.Join(dir, "f.jpg")
	writeFile(t, file, "x", time.Now())
	if err := validateSources([]string{file}); err == nil {
		t.Fatal("a plain file is not a valid source")
	}
}

func TestScanSources(t *testing.T) {
	src := t.TempDir()
	now := time.Now()

	writeFile(t, filepath.Join(src, "photo.jpg"), "img", now)
	writeFile(t, filepath.Join(src, "sub", "clip.mp4"), "vid", now)
	writeFile(t, filepath.Join(src, "notes.txt"), "txt", now)
	writeFile(t, filepath.Join(src, ".hidden", "secret.jpg"), "img", now)
	writeFile(t, filepath.Join(src, ".DS_Store.jpg"), "img", now)

	records, err := ScanSources([]string{src}, nil)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	byName := map[string]*FileRecord{}
	for _, rec := range records {
		byName[filepath.Base(rec.Path)] = rec
	}
	photo, ok := byName["photo.jpg"]
	if !ok {
		t.Fatal("photo.jpg not scanned")
	}
	if photo.Type != TypePhoto || photo.Ext != ".jpg" || photo.Size != 3 {
		t.Fatalf("bad record: %+v", photo)
	}
	if clip, ok := byName["clip.mp4"]; !ok || clip.Type != TypeVideo {
		t.Fatal("clip.mp4 in a subdirectory must be scanned as video")
	}
}

func TestScanSourcesMultiple(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	now := time.Now()
	writeFile(t, filepath.Join(a, "one.jpg"), "1", now)
	writeFile(t, filepath.Join(b, "two.jpg"), "2", now)

	records, err := ScanSources([]string{a, b}, nil)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if filepath.Base(records[0].Path) != "one.jpg" {
		t.Fatal("sources must be scanned in order")
	}
}

func TestScanSourcesUppercaseExtLowered(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "SHOT.JPG"), "img", time.Now())

	records, err := ScanSources([]string{src}, nil)
	if err != nil || len(records) != 1 {
		t.Fatalf("scan: %v (%d records)", err, len(records))
	}
	if records[0].Ext != ".jpg" {
		t.Fatalf("extension must be lower-cased, got %q", records[0].Ext)
	}
	if _, err := os.Stat(records[0].Path); err != nil {
		t.Fatalf("record path must point at the original file: %v", err)
	}
}
