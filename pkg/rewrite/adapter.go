package rewrite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/seamlabs/codeshift/pkg/jobs"
)

// TransformJob builds the unit of work submitted to the transform runner:
// parse the project, apply one transformation, write changed files back
// under the project root, and assemble the terminal message.
//
// Input problems (missing directory, unregistered id) short-circuit with a
// descriptive FAILURE message instead of invoking the engine; faults inside
// the engine surface as errors and become ERROR records upstream.
func TransformJob(engine Engine, aliases *Aliases, root, id string, logger *zap.Logger) jobs.Work {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(ctx context.Context) (jobs.Result, error) {
		resolved := id
		if aliases != nil {
			resolved, _ = aliases.Resolve(id)
		}

		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			return jobs.Result{OK: false, Message: "Project directory not found: " + root}, nil
		}
		if !registered(engine, resolved) {
			return jobs.Result{OK: false, Message: "Transformation not found: " + resolved}, nil
		}

		src, err := engine.Parse(ctx, root)
		if err != nil {
			return jobs.Result{}, fmt.Errorf("parse project: %w", err)
		}

		changes, err := engine.Apply(ctx, resolved, src)
		if err != nil {
			return jobs.Result{}, fmt.Errorf("apply %s: %w", resolved, err)
		}

		applied := 0
		var sb strings.Builder
		fmt.Fprintf(&sb, "Applied %s to %s.\n", resolved, root)

		for _, change := range changes {
			target := filepath.Join(root, filepath.FromSlash(change.Path))
			if err := os.WriteFile(target, change.Content, 0644); err != nil {
				// A single bad file must not abort the rest of the run.
				logger.Error("failed to write changed file",
					zap.String("path", change.Path),
					zap.Error(err))
				continue
			}
			applied++
			fmt.Fprintf(&sb, "\n--- %s ---\n%s", change.Path, change.Diff)
		}

		message := fmt.Sprintf("Changed %d files.\n%s", applied, sb.String())
		// No applied change is an expected, reportable outcome, not a fault.
		return jobs.Result{OK: applied > 0, Message: message}, nil
	}
}

func registered(engine Engine, id string) bool {
	for _, known := range engine.Transformations() {
		if known == id {
			return true
		}
	}
	return false
}
