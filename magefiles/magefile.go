//go:build mage

// Package main contains Mage build targets for specsplit developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "specsplit"
	cmdPkg  = "./cmd/specsplit"

	sourceFile   = "schema/abstract/specification.md"
	snapshotFile = "schema/abstract/specification.full.md"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-ldflags", "-X main.version="+version(), "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Plan lists the files a split would write.
func Plan() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "plan")
}

// Split rewrites the monolithic specification into modular files.
func Split() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName))
}

// Restore copies the snapshot back over the stub so Split can run again.
func Restore() error {
	if _, err := os.Stat(snapshotFile); err != nil {
		return fmt.Errorf("no snapshot to restore: %w", err)
	}
	if err := sh.Copy(sourceFile, snapshotFile); err != nil {
		return fmt.Errorf("restoring %s: %w", sourceFile, err)
	}
	fmt.Printf("Restored %s from %s\n", sourceFile, snapshotFile)
	return nil
}

// version returns the current git describe string, or "dev" outside a repository.
func version() string {
	v, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || v == "" {
		return "dev"
	}
	return v
}
