// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model and configuration structs
// for the extraction pipeline.
package types

// ConversionBackend identifies the PDF conversion tool.
type ConversionBackend string

const (
	// BackendMarker runs the marker-pdf container image.
	BackendMarker ConversionBackend = "marker"
)

// ConversionConfig holds settings for the external PDF-to-Markdown
// converter. Model checkpoint locations are the converter's initialization
// concern, so they live here rather than in process-wide state.
type ConversionConfig struct {
	// Backend selects the conversion tool. Only marker is implemented.
	Backend ConversionBackend `json:"backend" yaml:"backend"`

	// Image is the container image to run (default "marker-pdf:latest").
	Image string `json:"image" yaml:"image"`

	// ModelDir is a host directory with model checkpoints, mounted
	// read-only into the converter container when set.
	ModelDir string `json:"model_dir,omitempty" yaml:"model_dir,omitempty"`

	// Runtime selects the container runtime: "docker", "podman", or empty
	// for auto-detection.
	Runtime string `json:"runtime,omitempty" yaml:"runtime,omitempty"`
}

// ExtractionConfig holds settings for one extraction run.
type ExtractionConfig struct {
	// OutputDir is the base directory for the content record, the
	// per-session image directories, and the session journal.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// CleanupImages removes the session image directory after the content
	// record has been saved.
	CleanupImages bool `json:"cleanup_images" yaml:"cleanup_images"`

	// History records completed runs in the session journal.
	History bool `json:"history" yaml:"history"`

	// Conversion configures the external converter.
	Conversion ConversionConfig `json:"conversion" yaml:"conversion"`
}
