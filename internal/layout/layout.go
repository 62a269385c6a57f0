// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package layout loads and validates split layouts: the ordered marker
// table and the mapping from marker sections to output documents.
package layout

import (
	_ "embed"
	"fmt"
	"path"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-slug"
	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/specsplit/pkg/types"
)

//go:embed telos.yaml
var telosLayout []byte

// sectionFilePattern matches numbered top-level section files: NN-slug.md.
var sectionFilePattern = regexp.MustCompile(`^\d{2}-.+\.md$`)

// Default returns the TELOS abstract schema layout.
func Default() types.Layout {
	l, err := Parse(telosLayout)
	if err != nil {
		panic(fmt.Sprintf("embedded layout: %v", err))
	}
	return l
}

// Load reads a layout YAML file from fs, fills derived fields, and validates it.
func Load(fs afero.Fs, p string) (types.Layout, error) {
	data, err := afero.ReadFile(fs, p)
	if err != nil {
		return types.Layout{}, fmt.Errorf("reading layout: %w", err)
	}
	l, err := Parse(data)
	if err != nil {
		return types.Layout{}, fmt.Errorf("layout %s: %w", p, err)
	}
	return l, nil
}

// Parse decodes layout YAML, fills derived fields, and validates the result.
func Parse(data []byte) (types.Layout, error) {
	var l types.Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return types.Layout{}, fmt.Errorf("parsing layout: %w", err)
	}
	l, err := Normalize(l)
	if err != nil {
		return types.Layout{}, err
	}
	if err := Validate(l); err != nil {
		return types.Layout{}, err
	}
	return l, nil
}

// Normalize derives missing document file names as NN-<slug>.md from the
// document's position and title.
func Normalize(l types.Layout) (types.Layout, error) {
	docs := make([]types.DocumentSpec, len(l.Documents))
	copy(docs, l.Documents)
	for i, d := range docs {
		if d.File != "" {
			continue
		}
		s, err := slug.Normalize(d.Title)
		if err != nil {
			return l, fmt.Errorf("deriving file name for document %d (%q): %w", i+1, d.Title, err)
		}
		if s == "" {
			return l, fmt.Errorf("deriving file name for document %d (%q): empty slug", i+1, d.Title)
		}
		docs[i].File = fmt.Sprintf("%02d-%s.md", i+1, s)
	}
	l.Documents = docs
	return l, nil
}

// Validate checks that a layout can drive a split: unique non-empty markers,
// documents referencing known sections, and collision-free relative paths.
func Validate(l types.Layout) error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Title, validation.Required),
		validation.Field(&l.Index, validation.Required, validation.By(relativeFile)),
		validation.Field(&l.Snapshot, validation.Required, validation.By(relativeFile),
			validation.By(func(value any) error {
				if value.(string) == l.Index {
					return validation.NewError("layout.snapshot_collides", "must differ from index")
				}
				return nil
			})),
		validation.Field(&l.Markers, validation.Required, validation.By(validateMarkers)),
		validation.Field(&l.Documents, validation.Required, validation.By(func(value any) error {
			return validateDocuments(l, value.([]types.DocumentSpec))
		})),
	)
}

func validateMarkers(value any) error {
	markers := value.([]types.Marker)
	keys := make(map[string]bool, len(markers))
	headings := make(map[string]bool, len(markers))
	for i, m := range markers {
		switch {
		case strings.TrimSpace(m.Key) == "":
			return validation.NewError("layout.marker_key_required", fmt.Sprintf("marker %d: key is required", i+1))
		case m.Key == types.PreambleKey:
			return validation.NewError("layout.marker_key_reserved", fmt.Sprintf("marker %d: key %q is reserved", i+1, m.Key))
		case strings.TrimSpace(m.Heading) == "":
			return validation.NewError("layout.marker_heading_required", fmt.Sprintf("marker %q: heading is required", m.Key))
		case keys[m.Key]:
			return validation.NewError("layout.marker_key_duplicate", fmt.Sprintf("duplicate marker key %q", m.Key))
		case headings[m.Heading]:
			return validation.NewError("layout.marker_heading_duplicate", fmt.Sprintf("duplicate marker heading %q", m.Heading))
		}
		keys[m.Key] = true
		headings[m.Heading] = true
	}
	return nil
}

func validateDocuments(l types.Layout, docs []types.DocumentSpec) error {
	known := make(map[string]bool, len(l.Markers)+1)
	known[types.PreambleKey] = true
	for _, m := range l.Markers {
		known[m.Key] = true
	}

	files := map[string]bool{l.Index: true, l.Snapshot: true}
	for i, d := range docs {
		if strings.TrimSpace(d.Title) == "" {
			return validation.NewError("layout.document_title_required", fmt.Sprintf("document %d: title is required", i+1))
		}
		if err := relativeFile(d.File); err != nil {
			return validation.NewError("layout.document_file_invalid", fmt.Sprintf("document %q: %v", d.Title, err))
		}
		if files[d.File] {
			return validation.NewError("layout.document_file_duplicate", fmt.Sprintf("document %q: file %q is already used", d.Title, d.File))
		}
		if !strings.Contains(d.File, "/") && !sectionFilePattern.MatchString(d.File) {
			return validation.NewError("layout.document_file_pattern", fmt.Sprintf("document %q: file %q must be named NN-slug.md", d.Title, d.File))
		}
		files[d.File] = true

		if len(d.Sections) == 0 {
			return validation.NewError("layout.document_sections_required", fmt.Sprintf("document %q: sections are required", d.Title))
		}
		for _, key := range d.Sections {
			if !known[key] {
				return validation.NewError("layout.document_section_unknown", fmt.Sprintf("document %q: unknown section %q", d.Title, key))
			}
		}
	}
	return nil
}

// relativeFile accepts clean, slash-separated paths that stay inside the
// output root and name a Markdown file.
func relativeFile(value any) error {
	p, _ := value.(string)
	if p == "" {
		return nil
	}
	if path.IsAbs(p) || path.Clean(p) != p || p == ".." || strings.HasPrefix(p, "../") {
		return validation.NewError("layout.file_not_relative", "must be a clean path inside the output root")
	}
	if path.Ext(p) != ".md" {
		return validation.NewError("layout.file_not_markdown", "must end in .md")
	}
	return nil
}
