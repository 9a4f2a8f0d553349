// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package content

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/pdf-distill/pkg/types"
)

func sampleRecord() *types.ContentRecord {
	return &types.ContentRecord{
		FullText: "# Title\n\n![Overview](img1.png)\n",
		Images: []types.ImageRecord{
			{ID: "fig1", Filename: "img1.png", Path: "output/images/s1/img1.png", Caption: "Overview"},
			{ID: "fig2", Filename: "img2.png", Path: "output/images/s1/img2.png", Caption: ""},
		},
		PDFPath:        "papers/paper.pdf",
		ExtractionTime: time.Date(2026, 2, 11, 9, 30, 0, 0, time.UTC),
		ConversionTime: types.Duration(1500 * time.Millisecond),
		SessionID:      "20260211_093000_ab12cd34",
	}
}

func TestSaveDefaultsToCanonicalFilename(t *testing.T) {
	outputDir := t.TempDir()

	path, err := Save(sampleRecord(), outputDir, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Join(outputDir, DefaultFilename)
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("record not written: %v", err)
	}
}

func TestSaveFieldNames(t *testing.T) {
	path, err := Save(sampleRecord(), t.TempDir(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("parsing written record: %v", err)
	}
	for _, field := range []string{
		"full_text", "images", "pdf_path",
		"extraction_time", "conversion_time_seconds", "session_id",
	} {
		if _, ok := raw[field]; !ok {
			t.Errorf("field %q missing from persisted record", field)
		}
	}

	secs, ok := raw["conversion_time_seconds"].(float64)
	if !ok || secs != 1.5 {
		t.Errorf("conversion_time_seconds = %v, want 1.5", raw["conversion_time_seconds"])
	}
	if ts, _ := raw["extraction_time"].(string); !strings.HasPrefix(ts, "2026-02-11T09:30:00") {
		t.Errorf("extraction_time = %q, want ISO-8601 instant", ts)
	}

	imgs, ok := raw["images"].([]any)
	if !ok || len(imgs) != 2 {
		t.Fatalf("images = %v, want array of 2", raw["images"])
	}
	first, _ := imgs[0].(map[string]any)
	for _, field := range []string{"id", "filename", "path", "caption"} {
		if _, ok := first[field]; !ok {
			t.Errorf("image field %q missing from persisted record", field)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	rec := sampleRecord()

	path, err := Save(rec, t.TempDir(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if loaded.FullText != rec.FullText {
		t.Errorf("full text mismatch after round trip")
	}
	if loaded.PDFPath != rec.PDFPath {
		t.Errorf("pdf path = %q, want %q", loaded.PDFPath, rec.PDFPath)
	}
	if loaded.SessionID != rec.SessionID {
		t.Errorf("session id = %q, want %q", loaded.SessionID, rec.SessionID)
	}
	if !loaded.ExtractionTime.Equal(rec.ExtractionTime) {
		t.Errorf("extraction time = %v, want %v", loaded.ExtractionTime, rec.ExtractionTime)
	}
	if loaded.ConversionTime.Seconds() != rec.ConversionTime.Seconds() {
		t.Errorf("conversion seconds = %v, want %v",
			loaded.ConversionTime.Seconds(), rec.ConversionTime.Seconds())
	}
	if len(loaded.Images) != len(rec.Images) {
		t.Fatalf("got %d images, want %d", len(loaded.Images), len(rec.Images))
	}
	for i := range rec.Images {
		if loaded.Images[i] != rec.Images[i] {
			t.Errorf("image[%d] = %+v, want %+v", i, loaded.Images[i], rec.Images[i])
		}
	}
}

func TestSaveExplicitDestination(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "custom.json")
	path, err := Save(sampleRecord(), "ignored-when-path-given", dest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != dest {
		t.Errorf("path = %q, want %q", path, dest)
	}
}

func TestSaveUnwritableDestination(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "missing", "nested", "out.json")
	if _, err := Save(sampleRecord(), "", dest); err == nil {
		t.Fatal("expected error for unwritable destination")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestExportYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	if err := ExportYAML(sampleRecord(), path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, field := range []string{"full_text:", "pdf_path:", "session_id:", "conversion_time_seconds: 1.5"} {
		if !strings.Contains(out, field) {
			t.Errorf("YAML export missing %q:\n%s", field, out)
		}
	}
}
