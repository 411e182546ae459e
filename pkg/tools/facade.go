// Package tools is the externally invokable surface: the five migration
// operations exposed to automation clients, shared by the HTTP server and
// the CLI. It adapts requests into job submissions and collaborator calls;
// all long-running work goes through the jobs supervisor.
package tools

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/seamlabs/codeshift/internal/telemetry"
	"github.com/seamlabs/codeshift/pkg/analyze"
	"github.com/seamlabs/codeshift/pkg/jobs"
	"github.com/seamlabs/codeshift/pkg/rewrite"
	"github.com/seamlabs/codeshift/pkg/verify"
)

// Facade wires the collaborators to two independent single-worker runners,
// one per job kind, so a slow build never queues behind a transformation.
type Facade struct {
	engine   rewrite.Engine
	aliases  *rewrite.Aliases
	verifier *verify.Verifier
	analyzer *analyze.Analyzer

	transformRunner *jobs.Runner
	buildRunner     *jobs.Runner
	logger          *zap.Logger
}

// Options configures a Facade. Nil collaborators get the bundled defaults.
type Options struct {
	Engine   rewrite.Engine
	Aliases  *rewrite.Aliases
	Verifier *verify.Verifier
	Analyzer *analyze.Analyzer
	Logger   *zap.Logger
}

func New(opts Options) *Facade {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	engine := opts.Engine
	if engine == nil {
		engine = rewrite.NewLocalEngine(rewrite.DefaultRegistry(), nil)
	}
	aliases := opts.Aliases
	if aliases == nil {
		aliases = rewrite.NewAliases(logger)
	}
	verifier := opts.Verifier
	if verifier == nil {
		verifier = verify.New("", nil, logger)
	}
	analyzer := opts.Analyzer
	if analyzer == nil {
		analyzer = analyze.New(analyze.RuleClassifier{}, engine.Transformations(), logger)
	}

	return &Facade{
		engine:          engine,
		aliases:         aliases,
		verifier:        verifier,
		analyzer:        analyzer,
		transformRunner: jobs.NewRunner(jobs.KindTransform, jobs.NewStore(), logger),
		buildRunner:     jobs.NewRunner(jobs.KindBuild, jobs.NewStore(), logger),
		logger:          logger,
	}
}

// Close drains both runners.
func (f *Facade) Close() {
	f.transformRunner.Close()
	f.buildRunner.Close()
}

// Analyze inspects the project synchronously; it never creates a job.
func (f *Facade) Analyze(ctx context.Context, projectPath string) (analyze.Profile, error) {
	return f.analyzer.Analyze(ctx, projectPath)
}

// Transformations lists the ids the engine can apply.
func (f *Facade) Transformations() []string {
	return f.engine.Transformations()
}

// ResolveAlias exposes alias resolution for the CLI surface.
func (f *Facade) ResolveAlias(id string) (string, bool) {
	return f.aliases.Resolve(id)
}

// Aliases returns the deprecated-id table, for listings.
func (f *Facade) Aliases() map[string]string {
	return f.aliases.Table()
}

// RunTransformation submits a transformation job and returns its id
// immediately. Empty inputs are synchronous errors, never jobs.
func (f *Facade) RunTransformation(projectPath, transformationID string) (string, error) {
	projectPath = strings.TrimSpace(projectPath)
	transformationID = strings.TrimSpace(transformationID)
	if projectPath == "" {
		return "", fmt.Errorf("project path is required")
	}
	if transformationID == "" {
		return "", fmt.Errorf("transformation id is required")
	}

	resolved, _ := f.aliases.Resolve(transformationID)
	work := rewrite.TransformJob(f.engine, f.aliases, projectPath, transformationID, f.logger)

	jobID, err := f.transformRunner.Submit("Starting transformation "+resolved, f.instrument(jobs.KindTransform, work))
	if err != nil {
		return "", err
	}
	telemetry.JobsSubmitted.WithLabelValues(string(jobs.KindTransform)).Inc()
	telemetry.JobsInFlight.WithLabelValues(string(jobs.KindTransform)).Inc()
	return jobID, nil
}

// TransformationStatus is a pure store read; unknown ids resolve to the
// UNKNOWN sentinel.
func (f *Facade) TransformationStatus(jobID string) jobs.Record {
	return f.transformRunner.Store().Get(jobID)
}

// DryRunBuild submits a verification build job and returns its id
// immediately. An invalid directory is a synchronous error.
func (f *Facade) DryRunBuild(projectPath string) (string, error) {
	projectPath = strings.TrimSpace(projectPath)
	if err := verify.ValidateProjectDir(projectPath); err != nil {
		return "", err
	}

	jobID, err := f.buildRunner.Submit("Starting build...", f.instrument(jobs.KindBuild, f.verifier.Job(projectPath)))
	if err != nil {
		return "", err
	}
	telemetry.JobsSubmitted.WithLabelValues(string(jobs.KindBuild)).Inc()
	telemetry.JobsInFlight.WithLabelValues(string(jobs.KindBuild)).Inc()
	return jobID, nil
}

// BuildStatus is a pure store read.
func (f *Facade) BuildStatus(jobID string) jobs.Record {
	return f.buildRunner.Store().Get(jobID)
}

// Jobs lists records for one kind, newest first. An empty kind lists both.
func (f *Facade) Jobs(kind jobs.Kind) []jobs.Record {
	switch kind {
	case jobs.KindTransform:
		return f.transformRunner.Store().List()
	case jobs.KindBuild:
		return f.buildRunner.Store().List()
	default:
		out := f.transformRunner.Store().List()
		return append(out, f.buildRunner.Store().List()...)
	}
}

// instrument wraps work so completion metrics fire regardless of outcome.
func (f *Facade) instrument(kind jobs.Kind, work jobs.Work) jobs.Work {
	return func(ctx context.Context) (jobs.Result, error) {
		result, err := work(ctx)
		status := jobs.StatusSuccess
		switch {
		case err != nil:
			status = jobs.StatusError
		case !result.OK:
			status = jobs.StatusFailure
		}
		telemetry.JobsCompleted.WithLabelValues(string(kind), string(status)).Inc()
		telemetry.JobsInFlight.WithLabelValues(string(kind)).Dec()
		return result, err
	}
}
