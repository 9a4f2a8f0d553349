// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pdiddy/pdf-distill/internal/caption"
	"github.com/pdiddy/pdf-distill/internal/convert"
	"github.com/pdiddy/pdf-distill/pkg/types"
)

// jpegQuality is the encoder quality for materialized figures.
const jpegQuality = 90

// materializeImage decodes one extracted figure, re-encodes it as JPEG under
// dir, and builds its record. A corrupt payload or unwritable directory is
// an error; the missing-caption case is not, since captions are best-effort.
func materializeImage(markdown string, img convert.Image, dir string, index int) (types.ImageRecord, error) {
	decoded, _, err := image.Decode(bytes.NewReader(img.Data))
	if err != nil {
		return types.ImageRecord{}, fmt.Errorf("decoding %s: %w", img.Filename, err)
	}

	path := filepath.Join(dir, img.Filename)
	f, err := os.Create(path)
	if err != nil {
		return types.ImageRecord{}, fmt.Errorf("creating %s: %w", path, err)
	}
	if err := jpeg.Encode(f, decoded, &jpeg.Options{Quality: jpegQuality}); err != nil {
		f.Close()
		return types.ImageRecord{}, fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return types.ImageRecord{}, fmt.Errorf("writing %s: %w", path, err)
	}

	c := caption.Find(markdown, img.Filename)
	if c == "" {
		slog.Debug("no caption resolved", "filename", img.Filename)
	}

	return types.ImageRecord{
		ID:       fmt.Sprintf("fig%d", index+1),
		Filename: img.Filename,
		Path:     path,
		Caption:  c,
	}, nil
}
