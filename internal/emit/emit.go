// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package emit writes planned documents to a filesystem in order.
package emit

import (
	"fmt"
	"io"
	"path"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/pdiddy/specsplit/pkg/types"
)

const tmpSuffix = ".tmp"

// Result lists the paths written, in write order.
type Result struct {
	Written []string
}

// Writer writes documents through an afero filesystem.
type Writer struct {
	fs  afero.Fs
	log *logrus.Logger
}

// NewWriter returns a Writer over fs. A nil logger falls back to logrus.New().
func NewWriter(fs afero.Fs, log *logrus.Logger) *Writer {
	if log == nil {
		log = logrus.New()
	}
	return &Writer{fs: fs, log: log}
}

// Write emits docs sequentially, creating parent directories as needed.
// Each file is written beside its target and renamed into place, so a
// failed write never truncates an existing file. Write stops at the first
// error; files already written are left in place. If w is non-nil, one
// line per written file is printed to it.
func (wr *Writer) Write(docs []types.Document, w io.Writer) (Result, error) {
	var res Result
	for _, d := range docs {
		if err := wr.writeFile(d); err != nil {
			wr.log.WithFields(logrus.Fields{
				"path":    d.Path,
				"written": len(res.Written),
			}).WithError(err).Error("write failed")
			return res, err
		}
		res.Written = append(res.Written, d.Path)
		wr.log.WithFields(logrus.Fields{
			"path":  d.Path,
			"bytes": len(d.Content),
		}).Debug("wrote document")
		if w != nil {
			fmt.Fprintf(w, "wrote: %s\n", d.Path)
		}
	}
	return res, nil
}

func (wr *Writer) writeFile(d types.Document) error {
	if dir := path.Dir(d.Path); dir != "." {
		if err := wr.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	tmp := d.Path + tmpSuffix
	if err := afero.WriteFile(wr.fs, tmp, []byte(d.Content), 0o644); err != nil {
		_ = wr.fs.Remove(tmp)
		return fmt.Errorf("writing %s: %w", d.Path, err)
	}
	if err := wr.fs.Rename(tmp, d.Path); err != nil {
		_ = wr.fs.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", d.Path, err)
	}
	return nil
}
