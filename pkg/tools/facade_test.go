package tools

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seamlabs/codeshift/pkg/jobs"
)

func newTestFacade(t *testing.T) *Facade {
	t.Helper()
	f := New(Options{})
	t.Cleanup(f.Close)
	return f
}

func awaitTerminal(t *testing.T, get func(string) jobs.Record, id string) jobs.Record {
	t.Helper()
	require.Eventually(t, func() bool {
		return get(id).Status.Terminal()
	}, 10*time.Second, 10*time.Millisecond)
	return get(id)
}

func TestRunTransformation_EndToEnd(t *testing.T) {
	root := t.TempDir()
	javaDir := filepath.Join(root, "src", "main", "java")
	require.NoError(t, os.MkdirAll(javaDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(javaDir, "S.java"),
		[]byte("import javax.servlet.ServletException;\nclass S {}\n"), 0644))

	f := newTestFacade(t)

	jobID, err := f.RunTransformation(root, "codeshift.jakarta.JavaxToJakarta")
	require.NoError(t, err)

	rec := awaitTerminal(t, f.TransformationStatus, jobID)
	assert.Equal(t, jobs.StatusSuccess, rec.Status)
	assert.Contains(t, rec.Message, "Changed 1 files.")

	rewritten, err := os.ReadFile(filepath.Join(javaDir, "S.java"))
	require.NoError(t, err)
	assert.Contains(t, string(rewritten), "jakarta.servlet.ServletException")
}

func TestRunTransformation_AliasAppearsResolvedInMessage(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "pom.xml"), []byte("<project/>"), 0644))

	f := newTestFacade(t)

	jobID, err := f.RunTransformation(root, "codeshift.legacy.JavaxMigration")
	require.NoError(t, err)

	// The placeholder already references the canonical id.
	assert.Contains(t, f.TransformationStatus(jobID).Message, "codeshift.jakarta.JavaxToJakarta")

	rec := awaitTerminal(t, f.TransformationStatus, jobID)
	assert.Contains(t, rec.Message, "codeshift.jakarta.JavaxToJakarta")
	assert.NotContains(t, rec.Message, "codeshift.legacy.JavaxMigration")
}

func TestRunTransformation_InputErrorsAreSynchronous(t *testing.T) {
	f := newTestFacade(t)

	_, err := f.RunTransformation("", "codeshift.jakarta.JavaxToJakarta")
	require.Error(t, err)

	_, err = f.RunTransformation(t.TempDir(), "  ")
	require.Error(t, err)
}

func TestDryRunBuild_SuccessAndFailure(t *testing.T) {
	f := newTestFacade(t)

	okDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(okDir, "mvnw"),
		[]byte("#!/bin/sh\necho BUILD SUCCESS\nexit 0\n"), 0755))

	jobID, err := f.DryRunBuild(okDir)
	require.NoError(t, err)

	// Immediately after submission the job is RUNNING with a placeholder.
	immediate := f.BuildStatus(jobID)
	if !immediate.Status.Terminal() {
		assert.Equal(t, jobs.StatusRunning, immediate.Status)
		assert.NotEmpty(t, immediate.Message)
	}

	rec := awaitTerminal(t, f.BuildStatus, jobID)
	assert.Equal(t, jobs.StatusSuccess, rec.Status)
	assert.Equal(t, "BUILD SUCCESS\n", rec.Message)

	failDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(failDir, "mvnw"),
		[]byte("#!/bin/sh\necho compilation error >&2\nexit 1\n"), 0755))

	failID, err := f.DryRunBuild(failDir)
	require.NoError(t, err)
	rec = awaitTerminal(t, f.BuildStatus, failID)
	assert.Equal(t, jobs.StatusFailure, rec.Status)
	assert.Equal(t, "compilation error\n", rec.Message)
}

func TestDryRunBuild_InvalidDirectoryIsSynchronousError(t *testing.T) {
	f := newTestFacade(t)
	_, err := f.DryRunBuild("/does/not/exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid project directory")
}

func TestStatus_UnknownIDsReturnSentinel(t *testing.T) {
	f := newTestFacade(t)
	assert.Equal(t, jobs.StatusUnknown, f.TransformationStatus("nope").Status)
	assert.Equal(t, jobs.StatusUnknown, f.BuildStatus("nope").Status)
}

func TestAnalyze_DelegatesToAnalyzer(t *testing.T) {
	f := newTestFacade(t)

	profile, err := f.Analyze(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "Unknown", profile.Version)

	_, err = f.Analyze(context.Background(), "/does/not/exist")
	require.Error(t, err)
}

func TestJobs_ListsByKind(t *testing.T) {
	f := newTestFacade(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mvnw"),
		[]byte("#!/bin/sh\nexit 0\n"), 0755))

	buildID, err := f.DryRunBuild(dir)
	require.NoError(t, err)
	awaitTerminal(t, f.BuildStatus, buildID)

	builds := f.Jobs(jobs.KindBuild)
	require.Len(t, builds, 1)
	assert.Equal(t, buildID, builds[0].ID)
	assert.Empty(t, f.Jobs(jobs.KindTransform))
	assert.Len(t, f.Jobs(""), 1)
}

func TestTransformations_ListsBundledIDs(t *testing.T) {
	f := newTestFacade(t)
	ids := f.Transformations()
	assert.Contains(t, ids, "codeshift.jakarta.JavaxToJakarta")
	assert.Contains(t, ids, "codeshift.testing.JUnit4To5Imports")
	assert.Contains(t, ids, "codeshift.java.UpgradeJavaRelease")
}
