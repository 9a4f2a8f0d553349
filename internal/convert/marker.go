// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pdf-distill/internal/container"
	"github.com/pdiddy/pdf-distill/pkg/types"
)

// imageMarker is the default marker-pdf container image.
const imageMarker = "marker-pdf:latest"

// Guest paths inside the converter container.
const (
	guestIn     = "/in"
	guestOut    = "/out"
	guestModels = "/models"
)

// imageExts lists the figure file extensions marker emits.
var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// MarkerConverter converts PDFs by running the marker container image with
// the input, output, and model checkpoint directories bind-mounted. It
// depends on a container.Runtime (docker or podman) injected at
// construction time.
type MarkerConverter struct {
	runtime  container.Runtime
	image    string
	modelDir string
}

// NewMarkerConverter creates a converter that uses the given container
// runtime to run the marker image. It verifies that the image exists
// locally before returning.
func NewMarkerConverter(rt container.Runtime, cfg types.ConversionConfig) (*MarkerConverter, error) {
	image := cfg.Image
	if image == "" {
		image = imageMarker
	}
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("marker image not available in %s: %w", rt.Name(), err)
	}
	return &MarkerConverter{runtime: rt, image: image, modelDir: cfg.ModelDir}, nil
}

// Convert runs marker on the PDF at pdfPath and collects the Markdown and
// image files it writes, ordering images by their appearance in the text.
func (m *MarkerConverter) Convert(pdfPath string) (*Result, error) {
	abs, err := filepath.Abs(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("resolving PDF path %s: %w", pdfPath, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("reading PDF %s: %w", pdfPath, err)
	}

	outDir, err := os.MkdirTemp("", "marker-out-")
	if err != nil {
		return nil, fmt.Errorf("creating converter scratch directory: %w", err)
	}
	defer os.RemoveAll(outDir)

	mounts := []container.Mount{
		{Host: filepath.Dir(abs), Guest: guestIn, ReadOnly: true},
		{Host: outDir, Guest: guestOut},
	}
	if m.modelDir != "" {
		mounts = append(mounts, container.Mount{Host: m.modelDir, Guest: guestModels, ReadOnly: true})
	}

	args := []string{
		guestIn + "/" + filepath.Base(abs),
		"--output_dir", guestOut,
		"--output_format", "markdown",
	}

	var progress bytes.Buffer
	if err := m.runtime.Run(m.image, mounts, args, &progress); err != nil {
		return nil, fmt.Errorf("converting %s with marker: %w", pdfPath, err)
	}
	if progress.Len() > 0 {
		slog.Debug("marker output", "pdf", pdfPath, "output", progress.String())
	}

	return collectOutput(outDir, pdfPath)
}

// collectOutput reads the Markdown file and image files marker wrote under
// outDir. Marker nests output under a per-document subdirectory; walking
// handles both nested and flat layouts.
func collectOutput(outDir, pdfPath string) (*Result, error) {
	var markdown string
	var images []Image

	err := filepath.WalkDir(outDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		switch {
		case ext == ".md" && markdown == "":
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading converter output %s: %w", path, err)
			}
			markdown = string(data)
		case imageExts[ext]:
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading converter image %s: %w", path, err)
			}
			images = append(images, Image{Filename: d.Name(), Data: data})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if markdown == "" {
		return nil, fmt.Errorf("marker produced no Markdown output for %s", pdfPath)
	}

	return &Result{
		Markdown: markdown,
		Images:   orderByAppearance(markdown, images),
	}, nil
}
