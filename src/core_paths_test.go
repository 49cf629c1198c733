package main

import (
	"path/filepath"
	"testing"
	"time"
)

func testRecord() *FileRecord {
	return &FileRecord{
		Path:  "/src/photo.jpg",
		Size:  1024,
		Ext:   ".jpg",
		Type:  TypePhoto,
		Taken: time.Date(2023, 5, 10, 14, 30, 0, 0, time.Local),
	}
}

func TestDateDir(t *testing.T) {
	if got := dateDir(testRecord()); got != filepath.Join("2023", "05", "10") {
		t.Fatalf("dateDir = %q", got)
	}
}

func TestDateName(t *testing.T) {
	rec := testRecord()
	if got := dateName(rec); got != "20230510_143000.jpg" {
		t.Fatalf("dateName = %q", got)
	}
}

func TestExpandTemplateMatchesDateLayout(t *testing.T) {
	rec := testRecord()
	got, err := expandTemplate("{year}/{month}/{day}", rec)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got != dateDir(rec) {
		t.Fatalf("template layout %q differs from date layout %q", got, dateDir(rec))
	}
}

func TestExpandTemplateTokens(t *testing.T) {
	rec := testRecord()
	rec.Type = TypeVideo
	rec.Ext = ".mp4"
	got, err := expandTemplate("{type}/{ext}", rec)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got != filepath.Join("Video", "mp4") {
		t.Fatalf("got %q", got)
	}
}

func TestExpandTemplateUnknownPlaceholder(t *testing.T) {
	if _, err := expandTemplate("{year}/{bogus}", testRecord()); err == nil {
		t.Fatal("unknown placeholder must fail expansion")
	}
	if _, err := expandTemplate("", testRecord()); err == nil {
		t.Fatal("empty template must fail expansion")
	}
}

func TestDestDirTemplateFallsBackToDate(t *testing.T) {
	rec := testRecord()
	r := &pathResolver{mode: ModeByTemplate, template: "{nope}"}

	dir, err := r.DestDir(rec)
	if err == nil {
		t.Fatal("expected a template notice")
	}
	if dir != dateDir(rec) {
		t.Fatalf("fallback dir = %q, want date layout %q", dir, dateDir(rec))
	}
}

func TestDestDirEventLabel(t *testing.T) {
	rec := testRecord()
	r := &pathResolver{
		mode:   ModeByEvent,
		labels: map[*FileRecord]string{rec: "2023-05-10_1430"},
	}
	dir, err := r.DestDir(rec)
	if err != nil {
		t.Fatalf("DestDir: %v", err)
	}
	if dir != "2023-05-10_1430" {
		t.Fatalf("dir = %q", dir)
	}
}

func TestSanitizeCamera(t *testing.T) {
	cases := map[string]string{
		"Canon EOS 5D":    "Canon_EOS_5D",
		"weird/model\\x":  "weird_model_x",
		"  NIKON  D750  ": "NIKON_D750",
	}
	for in, want := range cases {
		if got := sanitizeCamera(in); got != want {
			t.Errorf("sanitizeCamera(%q) = %q, want %q", in, got, want)
		}
	}
}
