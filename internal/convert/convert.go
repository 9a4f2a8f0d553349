// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns a PDF document into Markdown text plus the figure
// images the document embeds. Backends implement the Converter interface;
// the marker container image is the production backend.
package convert

import (
	"sort"
	"strings"
)

// Image is one extracted figure: the filename the Markdown references and
// the raw encoded payload.
type Image struct {
	Filename string
	Data     []byte
}

// Result is the output of one conversion: the Markdown text and the images
// in the order they appear in that text.
type Result struct {
	Markdown string
	Images   []Image
}

// Converter transforms a PDF into Markdown plus extracted images. The call
// is long-running and blocking; backends decide their own parallelism.
type Converter interface {
	Convert(pdfPath string) (*Result, error)
}

// orderByAppearance sorts images by the offset of their first mention in the
// Markdown. Images the text never references follow in lexical filename
// order, so the result is stable for identical inputs.
func orderByAppearance(markdown string, images []Image) []Image {
	type keyed struct {
		img Image
		pos int
	}

	referenced := make([]keyed, 0, len(images))
	var unreferenced []Image
	for _, img := range images {
		if pos := strings.Index(markdown, img.Filename); pos >= 0 {
			referenced = append(referenced, keyed{img: img, pos: pos})
		} else {
			unreferenced = append(unreferenced, img)
		}
	}

	sort.SliceStable(referenced, func(i, j int) bool {
		return referenced[i].pos < referenced[j].pos
	})
	sort.Slice(unreferenced, func(i, j int) bool {
		return unreferenced[i].Filename < unreferenced[j].Filename
	})

	out := make([]Image, 0, len(images))
	for _, k := range referenced {
		out = append(out, k.img)
	}
	return append(out, unreferenced...)
}
