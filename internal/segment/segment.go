// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package segment locates literal section markers in a document and slices
// it into contiguous ranges: a preamble, then one range per marker ending
// where the next marker starts.
package segment

import (
	"fmt"
	"strings"

	"github.com/pdiddy/specsplit/pkg/types"
)

// MissingMarkerError reports a configured heading absent from the document.
type MissingMarkerError struct {
	Heading string
}

func (e *MissingMarkerError) Error() string {
	return fmt.Sprintf("missing section: %s", e.Heading)
}

// OrderError reports a heading whose first occurrence does not come after
// the previous heading's first occurrence.
type OrderError struct {
	Heading  string
	Previous string
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("section %q does not follow %q", e.Heading, e.Previous)
}

// Range is a half-open byte range [Start, End) of the source text.
type Range struct {
	Key   string
	Start int
	End   int
}

// Locate returns the first-occurrence offset of every heading, in order.
// Offsets must strictly increase; the first violation is returned as an
// *OrderError and the first absent heading as a *MissingMarkerError.
// Every heading is checked for presence before order is considered.
func Locate(text string, headings []string) ([]int, error) {
	offsets := make([]int, len(headings))
	for i, h := range headings {
		idx := strings.Index(text, h)
		if idx == -1 {
			return nil, &MissingMarkerError{Heading: h}
		}
		offsets[i] = idx
	}
	for i := 1; i < len(offsets); i++ {
		if offsets[i] <= offsets[i-1] {
			return nil, &OrderError{Heading: headings[i], Previous: headings[i-1]}
		}
	}
	return offsets, nil
}

// Segments is a document partitioned into keyed ranges.
type Segments struct {
	text   string
	ranges []Range
	byKey  map[string]int
}

// Split locates markers in text and builds the preamble plus one range per
// marker. The ranges cover text exactly, with no gaps or overlaps.
func Split(text string, markers []types.Marker) (*Segments, error) {
	headings := make([]string, len(markers))
	for i, m := range markers {
		headings[i] = m.Heading
	}
	offsets, err := Locate(text, headings)
	if err != nil {
		return nil, err
	}

	s := &Segments{
		text:   text,
		ranges: make([]Range, 0, len(markers)+1),
		byKey:  make(map[string]int, len(markers)+1),
	}

	first := len(text)
	if len(offsets) > 0 {
		first = offsets[0]
	}
	s.add(Range{Key: types.PreambleKey, Start: 0, End: first})

	for i, m := range markers {
		end := len(text)
		if i+1 < len(offsets) {
			end = offsets[i+1]
		}
		s.add(Range{Key: m.Key, Start: offsets[i], End: end})
	}
	return s, nil
}

func (s *Segments) add(r Range) {
	s.byKey[r.Key] = len(s.ranges)
	s.ranges = append(s.ranges, r)
}

// Ranges returns the ranges in document order, preamble first.
func (s *Segments) Ranges() []Range {
	out := make([]Range, len(s.ranges))
	copy(out, s.ranges)
	return out
}

// Source returns the full document text.
func (s *Segments) Source() string {
	return s.text
}

// Text returns the raw text of the range for key.
func (s *Segments) Text(key string) (string, bool) {
	i, ok := s.byKey[key]
	if !ok {
		return "", false
	}
	r := s.ranges[i]
	return s.text[r.Start:r.End], true
}

// Chunk returns the range text for key with surrounding whitespace removed
// and a single trailing newline.
func (s *Segments) Chunk(key string) (string, bool) {
	raw, ok := s.Text(key)
	if !ok {
		return "", false
	}
	return Normalize(raw), true
}

// Preamble returns the normalized text before the first marker.
func (s *Segments) Preamble() string {
	c, _ := s.Chunk(types.PreambleKey)
	return c
}

// Normalize trims surrounding whitespace and terminates with one newline.
func Normalize(raw string) string {
	return strings.TrimSpace(raw) + "\n"
}
