// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package layout

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/specsplit/pkg/types"
)

func TestDefault(t *testing.T) {
	l := Default()

	assert.Equal(t, "TELOS Abstract Schema Specification", l.Title)
	assert.Equal(t, "README.md", l.Index)
	assert.Equal(t, "specification.full.md", l.Snapshot)
	assert.Equal(t, "Modular abstract schema files generated.", l.DoneMessage)
	require.Len(t, l.Markers, 13)
	assert.Equal(t, "## Core Entities", l.Markers[0].Heading)
	assert.Equal(t, "## Appendix: Complete Example", l.Markers[12].Heading)

	require.Len(t, l.Documents, 9)
	assert.Equal(t, "06-engineering-units-and-namespaces.md", l.Documents[5].File)
	assert.Equal(t, []string{"engineering", "namespaces"}, l.Documents[5].Sections)
	assert.Equal(t, []string{"implementation", "extension", "versioning"}, l.Documents[7].Sections)
	assert.Equal(t, "examples/temperature-to-recommendation.md", l.Documents[8].File)
	assert.Equal(t, "Complete Example", l.Documents[8].NavText())
	assert.Equal(t, "Core Entities", l.Documents[0].NavText())
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "layout.yaml", []byte(`title: Demo
index: README.md
snapshot: full.md
markers:
  - key: a
    heading: "## A"
  - key: b
    heading: "## B"
documents:
  - file: 01-a.md
    title: A
    sections: [a]
  - file: 02-b.md
    title: B
    sections: [b]
`), 0o644))

	l, err := Load(fs, "layout.yaml")
	require.NoError(t, err)
	require.Len(t, l.Markers, 2)
	assert.Equal(t, "## B", l.Markers[1].Heading)
	assert.Len(t, l.Documents, 2)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "nope.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading layout")
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("{{{bad"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing layout")
}

func TestNormalizeDerivesFileNames(t *testing.T) {
	l := types.Layout{
		Documents: []types.DocumentSpec{
			{File: "01-kept.md", Title: "Kept"},
			{Title: "Query Patterns"},
		},
	}
	got, err := Normalize(l)
	require.NoError(t, err)

	assert.Equal(t, "01-kept.md", got.Documents[0].File)
	derived := got.Documents[1].File
	assert.True(t, strings.HasPrefix(derived, "02-"), "derived %q", derived)
	assert.True(t, strings.HasSuffix(derived, ".md"), "derived %q", derived)
	assert.Empty(t, l.Documents[1].File, "input layout must not be modified")
}

func validLayout() types.Layout {
	return types.Layout{
		Title:    "Demo",
		Index:    "README.md",
		Snapshot: "full.md",
		Markers: []types.Marker{
			{Key: "a", Heading: "## A"},
			{Key: "b", Heading: "## B"},
		},
		Documents: []types.DocumentSpec{
			{File: "01-a.md", Title: "A", Sections: []string{"a"}},
			{File: "examples/b.md", Title: "B", Sections: []string{"b"}},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(l *types.Layout)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(l *types.Layout) {},
		},
		{
			name:    "missing title",
			mutate:  func(l *types.Layout) { l.Title = "" },
			wantErr: "title",
		},
		{
			name:    "no markers",
			mutate:  func(l *types.Layout) { l.Markers = nil },
			wantErr: "markers",
		},
		{
			name:    "duplicate marker key",
			mutate:  func(l *types.Layout) { l.Markers[1].Key = "a" },
			wantErr: `duplicate marker key "a"`,
		},
		{
			name:    "duplicate marker heading",
			mutate:  func(l *types.Layout) { l.Markers[1].Heading = "## A" },
			wantErr: "duplicate marker heading",
		},
		{
			name:    "reserved preamble key",
			mutate:  func(l *types.Layout) { l.Markers[0].Key = types.PreambleKey },
			wantErr: "reserved",
		},
		{
			name:    "empty heading",
			mutate:  func(l *types.Layout) { l.Markers[0].Heading = "  " },
			wantErr: "heading is required",
		},
		{
			name:    "unknown section",
			mutate:  func(l *types.Layout) { l.Documents[0].Sections = []string{"zzz"} },
			wantErr: `unknown section "zzz"`,
		},
		{
			name:    "no sections",
			mutate:  func(l *types.Layout) { l.Documents[0].Sections = nil },
			wantErr: "sections are required",
		},
		{
			name:    "top-level file not numbered",
			mutate:  func(l *types.Layout) { l.Documents[0].File = "a.md" },
			wantErr: "NN-slug.md",
		},
		{
			name:    "file escapes root",
			mutate:  func(l *types.Layout) { l.Documents[1].File = "../b.md" },
			wantErr: "inside the output root",
		},
		{
			name:    "file collides with index",
			mutate:  func(l *types.Layout) { l.Documents[1].File = "README.md" },
			wantErr: "already used",
		},
		{
			name:    "snapshot equals index",
			mutate:  func(l *types.Layout) { l.Snapshot = "README.md" },
			wantErr: "must differ from index",
		},
		{
			name:    "index not markdown",
			mutate:  func(l *types.Layout) { l.Index = "index.txt" },
			wantErr: "must end in .md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validLayout()
			tt.mutate(&l)
			err := Validate(l)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNormalizeBlankTitle(t *testing.T) {
	l := types.Layout{Documents: []types.DocumentSpec{{Title: "   "}}}
	_, err := Normalize(l)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deriving file name for document 1")
}
