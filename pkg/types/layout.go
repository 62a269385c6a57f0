// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PreambleKey names the range that precedes the first marker.
const PreambleKey = "preamble"

// Marker is a literal heading used as a split anchor. Its first occurrence
// in the source document starts the section identified by Key.
type Marker struct {
	// Key is the role name documents use to reference this section.
	Key string `json:"key" yaml:"key"`

	// Heading is the exact text searched for (e.g. "## Core Entities").
	Heading string `json:"heading" yaml:"heading"`
}

// DocumentSpec describes one output file assembled from one or more
// consecutive sections.
type DocumentSpec struct {
	// File is the path relative to the output root (e.g. "01-core-entities.md").
	// Derived from Title and position when empty.
	File string `json:"file,omitempty" yaml:"file,omitempty"`

	// Title becomes the document's level-one heading.
	Title string `json:"title" yaml:"title"`

	// Nav is the link text in the index table of contents. Defaults to Title.
	Nav string `json:"nav,omitempty" yaml:"nav,omitempty"`

	// Sections lists marker keys whose ranges are joined, in order.
	Sections []string `json:"sections" yaml:"sections"`
}

// NavText returns the table-of-contents label for the document.
func (d DocumentSpec) NavText() string {
	if d.Nav != "" {
		return d.Nav
	}
	return d.Title
}

// Layout is the ordered marker table plus the mapping from sections to
// output files, along with the fixed prose of the index and stub.
type Layout struct {
	// Title heads both the index and the stub.
	Title string `json:"title" yaml:"title"`

	// Summary is the paragraph under the index title.
	Summary string `json:"summary" yaml:"summary"`

	// Index is the index file name relative to the output root.
	Index string `json:"index" yaml:"index"`

	// Snapshot is the verbatim copy file name relative to the output root.
	Snapshot string `json:"snapshot" yaml:"snapshot"`

	// PreambleHeading introduces the preamble at the end of the index.
	PreambleHeading string `json:"preamble_heading" yaml:"preamble_heading"`

	// StubSummary is the paragraph under the stub title.
	StubSummary string `json:"stub_summary" yaml:"stub_summary"`

	// StubFooter closes the stub.
	StubFooter string `json:"stub_footer" yaml:"stub_footer"`

	// DoneMessage is printed after a successful split.
	DoneMessage string `json:"done_message,omitempty" yaml:"done_message,omitempty"`

	// Markers lists section anchors in the order they appear in the source.
	Markers []Marker `json:"markers" yaml:"markers"`

	// Documents lists output files in table-of-contents order.
	Documents []DocumentSpec `json:"documents" yaml:"documents"`
}

// Document is a planned output file: a path and its full text.
type Document struct {
	// Path is the slash-separated location on the target filesystem.
	Path string `json:"path" yaml:"path"`

	// Content is the complete file text.
	Content string `json:"content" yaml:"content"`
}
