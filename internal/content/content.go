// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package content persists assembled extraction results. The JSON layout is
// the durable contract other tools consume; YAML export is a convenience
// mirror of the same fields.
package content

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf-distill/pkg/types"
)

// DefaultFilename is the canonical content record filename inside the
// output directory.
const DefaultFilename = "lightweight_content.json"

// Save serializes the record as indented JSON. When path is empty it
// defaults to DefaultFilename inside outputDir. Returns the path written.
func Save(record *types.ContentRecord, outputDir, path string) (string, error) {
	if path == "" {
		path = filepath.Join(outputDir, DefaultFilename)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling content record: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing content record %s: %w", path, err)
	}

	slog.Info("content record saved", "path", path, "bytes", len(data))
	return path, nil
}

// Load reads a persisted content record back from path.
func Load(path string) (*types.ContentRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content record %s: %w", path, err)
	}
	var record types.ContentRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parsing content record %s: %w", path, err)
	}
	return &record, nil
}

// ExportYAML writes the record to path in YAML with the same field names as
// the JSON contract.
func ExportYAML(record *types.ContentRecord, path string) error {
	data, err := yaml.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshaling content record: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	slog.Info("content record exported", "path", path, "bytes", len(data))
	return nil
}
