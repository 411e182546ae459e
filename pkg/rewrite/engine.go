// Package rewrite defines the transformation engine seam and the adapter
// that turns one engine invocation into a supervised background job.
//
// The engine contract is narrow on purpose: parse a project into a source
// set, apply one transformation by id, hand back per-file changes. The
// bundled LocalEngine satisfies it with registry-backed text rewrites;
// a heavier external engine can be substituted without touching the job
// supervisor.
package rewrite

import "context"

// SourceFile is one file of a parsed project. Path is always relative to
// the project root, using forward slashes.
type SourceFile struct {
	Path    string
	Content []byte
}

// SourceSet is the parsed form of a project handed to Apply.
type SourceSet struct {
	Root  string
	Files []SourceFile
}

// FileChange is one modified file produced by a transformation. Path is
// relative to the project root; Diff is a human-readable summary included
// in the job's terminal message.
type FileChange struct {
	Path    string
	Content []byte
	Diff    string
}

// Engine is the external transformation collaborator.
type Engine interface {
	// Transformations lists the ids this engine can apply.
	Transformations() []string

	// Parse loads the project's sources from root.
	Parse(ctx context.Context, root string) (*SourceSet, error)

	// Apply runs the transformation against the source set. A nil change
	// list with a nil error means the transformation matched nothing.
	Apply(ctx context.Context, id string, src *SourceSet) ([]FileChange, error)
}
