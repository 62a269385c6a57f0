// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package split runs the full pipeline: load the monolithic source, plan
// every output document, then write them. All markers are validated during
// planning, so a missing or misplaced heading leaves the filesystem as it
// was. Write failures are not rolled back.
package split

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/pdiddy/specsplit/internal/assemble"
	"github.com/pdiddy/specsplit/internal/emit"
	"github.com/pdiddy/specsplit/pkg/types"
)

// Options controls a run.
type Options struct {
	// DryRun plans documents without writing them.
	DryRun bool

	// Log receives diagnostics. Defaults to logrus.New().
	Log *logrus.Logger

	// Progress, when set, receives one line per written file.
	Progress io.Writer
}

// Result describes a completed run.
type Result struct {
	// Documents are the planned outputs in write order.
	Documents []types.Document

	// Written lists the paths actually written; empty for a dry run.
	Written []string
}

// Run splits cfg.Source on fs according to cfg.Layout.
func Run(fs afero.Fs, cfg types.SplitConfig, opts Options) (Result, error) {
	log := opts.Log
	if log == nil {
		log = logrus.New()
	}

	data, err := afero.ReadFile(fs, cfg.Source)
	if err != nil {
		return Result{}, fmt.Errorf("reading source %s: %w", cfg.Source, err)
	}
	log.WithFields(logrus.Fields{
		"source": cfg.Source,
		"bytes":  len(data),
	}).Debug("loaded source")

	docs, err := assemble.Plan(string(data), cfg)
	if err != nil {
		return Result{}, fmt.Errorf("planning split: %w", err)
	}
	res := Result{Documents: docs}

	if opts.DryRun {
		log.WithField("documents", len(docs)).Info("dry run, nothing written")
		return res, nil
	}

	written, err := emit.NewWriter(fs, log).Write(docs, opts.Progress)
	res.Written = written.Written
	if err != nil {
		return res, err
	}
	log.WithFields(logrus.Fields{
		"source":  cfg.Source,
		"root":    cfg.OutputRoot,
		"written": len(res.Written),
	}).Info("split complete")
	return res, nil
}
