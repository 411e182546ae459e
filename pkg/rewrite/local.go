package rewrite

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultSourcePatterns selects the files Parse loads when no patterns are
// configured.
var DefaultSourcePatterns = []string{
	"**/*.java",
	"pom.xml",
	"**/pom.xml",
	"**/*.gradle",
	"**/*.properties",
}

// skipDirs are build and VCS output directories never worth parsing.
var skipDirs = map[string]bool{
	".git":         true,
	"target":       true,
	"build":        true,
	".gradle":      true,
	"node_modules": true,
}

// LocalEngine is the bundled Engine: it loads project files matching the
// configured glob patterns and applies registry transformations in memory.
type LocalEngine struct {
	registry *Registry
	patterns []string
}

// NewLocalEngine builds an engine over registry. Empty patterns fall back
// to DefaultSourcePatterns.
func NewLocalEngine(registry *Registry, patterns []string) *LocalEngine {
	if registry == nil {
		registry = DefaultRegistry()
	}
	if len(patterns) == 0 {
		patterns = DefaultSourcePatterns
	}
	return &LocalEngine{registry: registry, patterns: patterns}
}

func (e *LocalEngine) Transformations() []string {
	return e.registry.IDs()
}

// Parse walks root and loads every file matching the engine's patterns.
func (e *LocalEngine) Parse(ctx context.Context, root string) (*SourceSet, error) {
	src := &SourceSet{Root: root}
	seen := make(map[string]bool)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if skipDirs[d.Name()] && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if seen[rel] || !matchAny(e.patterns, rel) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", rel, err)
		}
		seen[rel] = true
		src.Files = append(src.Files, SourceFile{Path: rel, Content: content})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(src.Files, func(i, j int) bool { return src.Files[i].Path < src.Files[j].Path })
	return src, nil
}

// Apply runs one registered transformation over the source set.
func (e *LocalEngine) Apply(ctx context.Context, id string, src *SourceSet) ([]FileChange, error) {
	transformation, ok := e.registry.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("transformation not registered: %s", id)
	}

	var changes []FileChange
	for _, file := range src.Files {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !matchAny(transformation.Patterns(), file.Path) {
			continue
		}
		next, changed := transformation.Rewrite(file.Path, file.Content)
		if !changed {
			continue
		}
		changes = append(changes, FileChange{
			Path:    file.Path,
			Content: next,
			Diff:    diffText(file.Path, file.Content, next),
		})
	}
	return changes, nil
}

func matchAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// Compile-time check that LocalEngine implements Engine.
var _ Engine = (*LocalEngine)(nil)
