package trees

import "github.com/joshuapare/treekit/pkg/types"

// DecodeOptions controls reconstruction from level-order visits.
// The zero value validates the stream and applies no limits.
type DecodeOptions struct {
	// Limits bounds the shape of the rebuilt structure. Zero fields are unlimited.
	Limits types.Limits

	// Trust skips the post-pass that checks every claimed size against the
	// rebuilt structure, and accepts a stream that ends early. Slot bounds and
	// orphan visits are still rejected.
	Trust bool
}

// BuildOptions controls construction from preorder shape events.
// The zero value validates the stream and applies no limits.
type BuildOptions struct {
	// Limits bounds the shape of the built structure. Zero fields are unlimited.
	Limits types.Limits

	// Trust skips the size check of every branch against its actual subtree.
	Trust bool
}
