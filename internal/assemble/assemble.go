// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assemble turns a segmented source document into the planned set
// of output documents: snapshot, index, section groups, and redirect stub.
// Planning is pure; nothing is written here.
package assemble

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/pdiddy/specsplit/internal/segment"
	"github.com/pdiddy/specsplit/pkg/types"
)

const defaultPreambleHeading = "## Preamble"

// Plan segments text with the layout's markers and returns every output
// document in write order. The snapshot always precedes the stub, and the
// stub is last.
func Plan(text string, cfg types.SplitConfig) ([]types.Document, error) {
	if cfg.Source == "" {
		return nil, errors.New("source path is required")
	}
	l := cfg.Layout

	segs, err := segment.Split(text, l.Markers)
	if err != nil {
		return nil, err
	}

	docs := make([]types.Document, 0, len(l.Documents)+3)
	docs = append(docs, types.Document{
		Path:    outPath(cfg, l.Snapshot),
		Content: text,
	})
	docs = append(docs, types.Document{
		Path:    outPath(cfg, l.Index),
		Content: Index(cfg, segs.Preamble()),
	})
	for _, spec := range l.Documents {
		content, err := Group(spec, segs)
		if err != nil {
			return nil, err
		}
		docs = append(docs, types.Document{
			Path:    outPath(cfg, spec.File),
			Content: content,
		})
	}

	stubPath := path.Clean(cfg.Source)
	for _, d := range docs {
		if d.Path == stubPath {
			return nil, fmt.Errorf("source %s would be overwritten by a generated file", cfg.Source)
		}
	}
	docs = append(docs, types.Document{
		Path:    stubPath,
		Content: Stub(cfg),
	})
	return docs, nil
}

// Group renders one output document: a level-one title followed by the
// normalized ranges of its sections separated by a blank line.
func Group(spec types.DocumentSpec, segs *segment.Segments) (string, error) {
	chunks := make([]string, 0, len(spec.Sections))
	for _, key := range spec.Sections {
		c, ok := segs.Chunk(key)
		if !ok {
			return "", fmt.Errorf("document %s: unknown section %q", spec.File, key)
		}
		chunks = append(chunks, c)
	}
	return "# " + spec.Title + "\n\n" + strings.Join(chunks, "\n"), nil
}

// Index renders the navigation document with entry points, a numbered
// table of contents, and the preamble.
func Index(cfg types.SplitConfig, preamble string) string {
	l := cfg.Layout
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", l.Title)
	if l.Summary != "" {
		fmt.Fprintf(&b, "%s\n\n", l.Summary)
	}

	b.WriteString("## Canonical Entry Points\n\n")
	fmt.Fprintf(&b, "- Modular index: `%s`\n", outPath(cfg, l.Index))
	fmt.Fprintf(&b, "- Compatibility shim: `%s`\n", path.Clean(cfg.Source))
	fmt.Fprintf(&b, "- Full monolith snapshot: `%s`\n\n", outPath(cfg, l.Snapshot))

	b.WriteString("## Table of Contents\n\n")
	for i, d := range l.Documents {
		fmt.Fprintf(&b, "%d. [%s](./%s)\n", i+1, d.NavText(), d.File)
	}

	heading := l.PreambleHeading
	if heading == "" {
		heading = defaultPreambleHeading
	}
	fmt.Fprintf(&b, "\n%s\n\n", heading)
	b.WriteString(preamble)
	return b.String()
}

// Stub renders the short document left at the source path, linking to the
// index and snapshot relative to the stub's own directory.
func Stub(cfg types.SplitConfig) string {
	l := cfg.Layout
	from := path.Dir(path.Clean(cfg.Source))
	index := outPath(cfg, l.Index)
	snapshot := outPath(cfg, l.Snapshot)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", l.Title)
	if l.StubSummary != "" {
		fmt.Fprintf(&b, "%s\n\n", l.StubSummary)
	}
	fmt.Fprintf(&b, "- Start here: [`%s`](%s)\n", index, relLink(from, index))
	fmt.Fprintf(&b, "- Full single-file snapshot: [`%s`](%s)\n", snapshot, relLink(from, snapshot))
	if l.StubFooter != "" {
		fmt.Fprintf(&b, "\n%s\n", l.StubFooter)
	}
	return b.String()
}

func outPath(cfg types.SplitConfig, file string) string {
	return path.Join(cfg.OutputRoot, file)
}

// relLink returns a Markdown link target for target as seen from dir.
func relLink(dir, target string) string {
	rel, err := filepath.Rel(filepath.FromSlash(dir), filepath.FromSlash(target))
	if err != nil {
		return target
	}
	rel = filepath.ToSlash(rel)
	if strings.HasPrefix(rel, "../") {
		return rel
	}
	return "./" + rel
}
