// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SplitConfig groups everything a split run needs. Paths use forward
// slashes and are resolved against the filesystem the run is given.
type SplitConfig struct {
	// Source is the monolithic document; it is replaced by the stub.
	Source string `json:"source" yaml:"source"`

	// OutputRoot is the directory receiving the index, snapshot, and sections.
	OutputRoot string `json:"output_root" yaml:"output_root"`

	// Layout is the marker table and document mapping.
	Layout Layout `json:"layout" yaml:"layout"`
}
