// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"fmt"
	"time"

	"go.yaml.in/yaml/v3"
)

// Duration wraps time.Duration so conversion timing serializes as
// floating-point seconds, which is the on-disk contract consumed by
// downstream tools.
type Duration time.Duration

// Seconds returns the duration as floating-point seconds.
func (d Duration) Seconds() float64 {
	return time.Duration(d).Seconds()
}

// MarshalJSON encodes the duration as floating-point seconds.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Seconds())
}

// UnmarshalJSON decodes floating-point seconds back into a duration.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var secs float64
	if err := json.Unmarshal(data, &secs); err != nil {
		return fmt.Errorf("parsing duration seconds: %w", err)
	}
	*d = Duration(time.Duration(secs * float64(time.Second)))
	return nil
}

// MarshalYAML encodes the duration as floating-point seconds.
func (d Duration) MarshalYAML() (any, error) {
	return d.Seconds(), nil
}

// UnmarshalYAML decodes floating-point seconds back into a duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var secs float64
	if err := value.Decode(&secs); err != nil {
		return fmt.Errorf("parsing duration seconds: %w", err)
	}
	*d = Duration(time.Duration(secs * float64(time.Second)))
	return nil
}

// ImageRecord describes one materialized figure. Records are created during
// materialization and never mutated afterwards; the JSON tag names are the
// durable field names other tools consume.
type ImageRecord struct {
	// ID is the sequential figure label ("fig1", "fig2", ...).
	ID string `json:"id" yaml:"id"`

	// Filename is the image filename as named by the converter.
	Filename string `json:"filename" yaml:"filename"`

	// Path is where the materialized JPEG was written.
	Path string `json:"path" yaml:"path"`

	// Caption is the best-effort caption resolved from the Markdown text.
	// Empty when no caption could be determined.
	Caption string `json:"caption" yaml:"caption"`
}

// ContentRecord is the assembled output of one extraction: the full Markdown
// text, the materialized figures in converter order, and run metadata.
// Created once per extraction and immutable thereafter.
type ContentRecord struct {
	// FullText is the Markdown text the converter produced.
	FullText string `json:"full_text" yaml:"full_text"`

	// Images lists the materialized figures in the order the converter
	// yielded them.
	Images []ImageRecord `json:"images" yaml:"images"`

	// PDFPath is the source document path.
	PDFPath string `json:"pdf_path" yaml:"pdf_path"`

	// ExtractionTime is when the record was assembled.
	ExtractionTime time.Time `json:"extraction_time" yaml:"extraction_time"`

	// ConversionTime is the wall-clock duration of the converter call.
	ConversionTime Duration `json:"conversion_time_seconds" yaml:"conversion_time_seconds"`

	// SessionID identifies the extraction session that produced the record.
	SessionID string `json:"session_id" yaml:"session_id"`
}
