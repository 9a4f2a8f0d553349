// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session orchestrates one isolated extraction run. A session owns
// a dedicated image directory, drives the converter once, materializes each
// extracted figure, and assembles the final content record. Sessions are
// single-use and not safe for concurrent access.
package session

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/pdf-distill/internal/convert"
	"github.com/pdiddy/pdf-distill/pkg/types"
)

// State tracks the session lifecycle.
type State string

const (
	StateCreated    State = "created"
	StateExtracting State = "extracting"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

// imagesDir is the subdirectory under the output base holding per-session
// image directories.
const imagesDir = "images"

// Session is one extraction run. The identifier isolates its image
// directory from every other session's.
type Session struct {
	id        string
	pdfPath   string
	outputDir string
	imageDir  string
	state     State
}

// New creates a session for the PDF at pdfPath, generating a unique
// identifier and creating the output and image directories idempotently.
func New(pdfPath, outputDir string) (*Session, error) {
	id := newSessionID()
	imageDir := filepath.Join(outputDir, imagesDir, id)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}
	if err := os.MkdirAll(imageDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating image directory %s: %w", imageDir, err)
	}

	slog.Info("extraction session created", "session_id", id, "pdf", pdfPath, "image_dir", imageDir)

	return &Session{
		id:        id,
		pdfPath:   pdfPath,
		outputDir: outputDir,
		imageDir:  imageDir,
		state:     StateCreated,
	}, nil
}

// newSessionID builds a session identifier. The timestamp prefix keeps
// directories human-ordered; the random suffix rules out collisions between
// sessions created in the same second.
func newSessionID() string {
	return time.Now().UTC().Format("20060102_150405") + "_" + uuid.NewString()[:8]
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// ImageDir returns the session's image directory.
func (s *Session) ImageDir() string { return s.imageDir }

// OutputDir returns the output base directory.
func (s *Session) OutputDir() string { return s.outputDir }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Extract invokes the converter exactly once on the session's PDF,
// materializes every extracted image in converter order, and assembles the
// content record. On any conversion or materialization failure the session
// moves to StateFailed and no record is returned; partial results are never
// surfaced.
func (s *Session) Extract(conv convert.Converter) (*types.ContentRecord, error) {
	if s.state != StateCreated {
		return nil, fmt.Errorf("session %s: extraction already ran (state %s)", s.id, s.state)
	}
	s.state = StateExtracting

	slog.Info("starting content extraction", "session_id", s.id, "pdf", s.pdfPath)

	start := time.Now()
	res, err := conv.Convert(s.pdfPath)
	if err != nil {
		s.state = StateFailed
		slog.Error("conversion failed", "session_id", s.id, "pdf", s.pdfPath, "error", err)
		return nil, fmt.Errorf("converting %s: %w", s.pdfPath, err)
	}
	elapsed := time.Since(start)

	slog.Info("conversion completed", "session_id", s.id, "seconds", elapsed.Seconds())

	records := make([]types.ImageRecord, 0, len(res.Images))
	for i, img := range res.Images {
		rec, err := materializeImage(res.Markdown, img, s.imageDir, i)
		if err != nil {
			s.state = StateFailed
			slog.Error("image materialization failed",
				"session_id", s.id, "filename", img.Filename, "index", i, "error", err)
			return nil, fmt.Errorf("materializing image %s: %w", img.Filename, err)
		}
		records = append(records, rec)
	}

	record := &types.ContentRecord{
		FullText:       res.Markdown,
		Images:         records,
		PDFPath:        s.pdfPath,
		ExtractionTime: time.Now().UTC(),
		ConversionTime: types.Duration(elapsed),
		SessionID:      s.id,
	}
	s.state = StateCompleted

	slog.Info("content extraction completed",
		"session_id", s.id, "text_chars", len(res.Markdown), "images", len(records))

	return record, nil
}

// Cleanup removes the session's image directory. Removal errors are logged
// and swallowed so housekeeping never masks the extraction outcome; calling
// Cleanup on an already-removed directory is a no-op.
func (s *Session) Cleanup() {
	if _, err := os.Stat(s.imageDir); os.IsNotExist(err) {
		return
	}
	slog.Info("removing session image directory", "session_id", s.id, "dir", s.imageDir)
	if err := os.RemoveAll(s.imageDir); err != nil {
		slog.Warn("image directory cleanup failed", "session_id", s.id, "dir", s.imageDir, "error", err)
	}
}
