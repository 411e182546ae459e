// Package verify runs a verification build against a project and packages
// the outcome as a supervised job.
package verify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/seamlabs/codeshift/pkg/jobs"
)

// wrapperScripts are project-local build wrappers preferred over the
// system tool, checked in order.
var wrapperScripts = []string{"mvnw", "gradlew"}

// verifyArgs is the fixed verification action per tool: clean the previous
// output and compile, nothing more.
var verifyArgs = map[string][]string{
	"mvn":     {"clean", "compile"},
	"mvnw":    {"clean", "compile"},
	"gradle":  {"clean", "compileJava"},
	"gradlew": {"clean", "compileJava"},
}

// Verifier invokes the external build tool as a subprocess.
type Verifier struct {
	// Tool is the system build command used when no wrapper script is
	// present in the project. Defaults to "mvn".
	Tool string

	// Args overrides the verification arguments for every invocation.
	// Empty means the per-tool default.
	Args []string

	logger *zap.Logger
}

func New(tool string, args []string, logger *zap.Logger) *Verifier {
	if tool == "" {
		tool = "mvn"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Verifier{Tool: tool, Args: args, logger: logger}
}

// Detect picks the build invocation for projectDir: a project-local
// wrapper script if one exists, otherwise the configured system tool.
func (v *Verifier) Detect(projectDir string) (command string, args []string) {
	for _, wrapper := range wrapperScripts {
		candidate := filepath.Join(projectDir, wrapper)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return "./" + wrapper, v.argsFor(wrapper)
		}
	}
	return v.Tool, v.argsFor(filepath.Base(v.Tool))
}

func (v *Verifier) argsFor(tool string) []string {
	if len(v.Args) > 0 {
		return v.Args
	}
	if args, ok := verifyArgs[tool]; ok {
		return args
	}
	return verifyArgs["mvn"]
}

// Run executes the verification build synchronously, returning the exit
// code and the merged stdout+stderr stream. A process that could not be
// launched at all is an error, distinct from a non-zero exit.
func (v *Verifier) Run(ctx context.Context, projectDir string) (exitCode int, output string, err error) {
	command, args := v.Detect(projectDir)

	v.logger.Info("running verification build",
		zap.String("project", projectDir),
		zap.String("command", command),
		zap.Strings("args", args))

	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = projectDir

	// One buffer for both streams: build output interleaves naturally and
	// the caller wants it exactly as produced.
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	runErr := cmd.Run()
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return exitErr.ExitCode(), buf.String(), nil
		}
		return -1, buf.String(), fmt.Errorf("launch %s: %w", command, runErr)
	}
	return 0, buf.String(), nil
}

// Job builds the unit of work submitted to the build runner. The project
// directory is validated synchronously by the caller; the subprocess runs
// on the worker.
func (v *Verifier) Job(projectDir string) jobs.Work {
	return func(ctx context.Context) (jobs.Result, error) {
		exitCode, output, err := v.Run(ctx, projectDir)
		if err != nil {
			return jobs.Result{}, err
		}
		v.logger.Info("verification build finished",
			zap.String("project", projectDir),
			zap.Int("exit_code", exitCode))
		return jobs.Result{OK: exitCode == 0, Message: output}, nil
	}
}

// ValidateProjectDir reports whether path exists and is a directory.
func ValidateProjectDir(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("invalid project directory: %s", path)
	}
	return nil
}
