// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package caption resolves best-effort figure captions from converted
// Markdown text. Resolution never fails: each rule reports found or
// not-found, and when every rule misses the caption is simply empty.
package caption

import (
	"regexp"
	"strings"
)

// Search windows for the line-based rules. These are policy thresholds the
// persisted captions depend on, not tuning knobs.
const (
	labelWindowDown = 5
	labelWindowUp   = 3
	proseWindow     = 3
	minProseLen     = 10
)

var (
	// figureLabelRE matches explicit figure labels such as "Figure 3:",
	// "Fig. 12." or "figure 2", capturing the number and the trailing text.
	figureLabelRE = regexp.MustCompile(`(?i)(?:Figure?|Fig\.?)\s*(\d+)[:.]?\s*(.*)`)

	numericLineRE = regexp.MustCompile(`^\d+$`)
	markupLineRE  = regexp.MustCompile(`^[#*\-]+$`)
)

// Find returns the best-guess caption for the named image, or the empty
// string when none can be determined. Rules apply in strict priority order:
// a direct Markdown image reference, then a nearby "Figure N" label
// (downward before upward), then an adjacent prose line. Deterministic for
// identical inputs.
func Find(markdown, filename string) string {
	if markdown == "" || filename == "" {
		return ""
	}

	if c, ok := fromImageRef(markdown, filename); ok {
		return c
	}

	lines := strings.Split(markdown, "\n")
	idx, ok := firstLineWith(lines, filename)
	if !ok {
		return ""
	}

	if c, ok := fromFigureLabel(lines, idx); ok {
		return c
	}
	if c, ok := fromAdjacentProse(lines, idx); ok {
		return c
	}
	return ""
}

// fromImageRef looks for a Markdown image reference ![caption](path) whose
// path contains the filename, and returns the bracketed text of the first
// match.
func fromImageRef(markdown, filename string) (string, bool) {
	re, err := regexp.Compile(`!\[(.*?)\]\([^)]*` + regexp.QuoteMeta(filename) + `[^)]*\)`)
	if err != nil {
		// QuoteMeta keeps adversarial filenames from producing an invalid
		// pattern; a compile failure still just means "no caption".
		return "", false
	}
	m := re.FindStringSubmatch(markdown)
	if m == nil {
		return "", false
	}
	c := strings.TrimSpace(m[1])
	return c, c != ""
}

// firstLineWith returns the index of the first line containing the filename.
func firstLineWith(lines []string, filename string) (int, bool) {
	for i, line := range lines {
		if strings.Contains(line, filename) {
			return i, true
		}
	}
	return 0, false
}

// fromFigureLabel scans for an explicit figure label near the line that
// mentions the image: first the labelWindowDown lines below, then the
// labelWindowUp lines above in top-down order.
func fromFigureLabel(lines []string, idx int) (string, bool) {
	for j := idx + 1; j <= idx+labelWindowDown && j < len(lines); j++ {
		if c, ok := labelText(lines[j]); ok {
			return c, true
		}
	}

	lo := idx - labelWindowUp
	if lo < 0 {
		lo = 0
	}
	for j := lo; j < idx; j++ {
		if c, ok := labelText(lines[j]); ok {
			return c, true
		}
	}
	return "", false
}

// labelText extracts the text trailing a figure label. A label with nothing
// after it does not count as a caption.
func labelText(line string) (string, bool) {
	m := figureLabelRE.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	c := strings.TrimSpace(m[2])
	return c, c != ""
}

// fromAdjacentProse falls back to the first plausible prose line within
// proseWindow lines below the image mention: non-empty, not another image
// reference, not purely numeric or Markdown punctuation, and longer than
// minProseLen characters.
func fromAdjacentProse(lines []string, idx int) (string, bool) {
	for j := idx + 1; j <= idx+proseWindow && j < len(lines); j++ {
		text := strings.TrimSpace(lines[j])
		if text == "" || strings.HasPrefix(text, "!") {
			continue
		}
		if numericLineRE.MatchString(text) || markupLineRE.MatchString(text) {
			continue
		}
		if len(text) > minProseLen {
			return text, true
		}
	}
	return "", false
}
