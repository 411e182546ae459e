package analyze

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAllowList = []string{
	"codeshift.jakarta.JavaxToJakarta",
	"codeshift.testing.JUnit4To5Imports",
	"codeshift.java.UpgradeJavaRelease",
}

func writePom(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pom.xml"), []byte(content), 0644))
}

func TestAnalyze_InvalidPathIsAnError(t *testing.T) {
	a := New(RuleClassifier{}, testAllowList, nil)
	_, err := a.Analyze(context.Background(), "/does/not/exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid project path")
}

func TestAnalyze_NoDescriptorYieldsUnknownProfile(t *testing.T) {
	a := New(RuleClassifier{}, testAllowList, nil)

	profile, err := a.Analyze(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "Unknown", profile.Version)
	assert.Empty(t, profile.Frameworks)
	assert.Empty(t, profile.SuggestedIDs)
	// Slices must be non-nil so JSON encodes [] rather than null.
	assert.NotNil(t, profile.Frameworks)
	assert.NotNil(t, profile.SuggestedIDs)
}

func TestAnalyze_DetectsVersionFrameworksAndSuggestions(t *testing.T) {
	dir := t.TempDir()
	writePom(t, dir, `<project>
  <properties>
    <maven.compiler.source>11</maven.compiler.source>
  </properties>
  <dependencies>
    <dependency>
      <groupId>javax.servlet</groupId><artifactId>javax.servlet-api</artifactId>
    </dependency>
    <dependency>
      <groupId>junit</groupId><artifactId>junit</artifactId>
    </dependency>
  </dependencies>
</project>`)

	a := New(RuleClassifier{}, testAllowList, nil)
	profile, err := a.Analyze(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, "11", profile.Version)
	assert.Contains(t, profile.Frameworks, "JavaxEE")
	assert.Contains(t, profile.Frameworks, "JUnit4")
	assert.Contains(t, profile.SuggestedIDs, "codeshift.jakarta.JavaxToJakarta")
	assert.Contains(t, profile.SuggestedIDs, "codeshift.testing.JUnit4To5Imports")
	assert.Contains(t, profile.SuggestedIDs, "codeshift.java.UpgradeJavaRelease")
}

func TestAnalyze_LegacyVersionProperty(t *testing.T) {
	dir := t.TempDir()
	writePom(t, dir, "<project><properties><java.version>1.8</java.version></properties></project>")

	a := New(RuleClassifier{}, testAllowList, nil)
	profile, err := a.Analyze(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "8", profile.Version)
	assert.Contains(t, profile.SuggestedIDs, "codeshift.java.UpgradeJavaRelease")
}

type scriptedClassifier struct {
	profile Profile
	err     error
}

func (s scriptedClassifier) Classify(ctx context.Context, descriptor string, allowed []string) (Profile, error) {
	return s.profile, s.err
}

func TestAnalyze_SuggestionsOutsideAllowListAreDropped(t *testing.T) {
	dir := t.TempDir()
	writePom(t, dir, "<project/>")

	a := New(scriptedClassifier{profile: Profile{
		Version:      "17",
		SuggestedIDs: []string{"codeshift.jakarta.JavaxToJakarta", "codeshift.rogue.NotAllowed"},
	}}, testAllowList, nil)

	profile, err := a.Analyze(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"codeshift.jakarta.JavaxToJakarta"}, profile.SuggestedIDs)
}

func TestAnalyze_ClassifierFaultPropagates(t *testing.T) {
	dir := t.TempDir()
	writePom(t, dir, "<project/>")

	a := New(scriptedClassifier{err: errors.New("reasoning service down")}, testAllowList, nil)
	_, err := a.Analyze(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reasoning service down")
}

func TestAnalyze_GradleDescriptorIsRecognized(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "build.gradle"),
		[]byte("dependencies { testImplementation 'junit:junit:4.13.2' }"), 0644))

	a := New(RuleClassifier{}, testAllowList, nil)
	profile, err := a.Analyze(context.Background(), dir)
	require.NoError(t, err)
	assert.Contains(t, profile.Frameworks, "JUnit4")
}
