// Package analyze inspects a project's build descriptor and produces a
// migration profile: detected language version, frameworks in use, and
// suggested transformation ids drawn from a bounded allow-list.
//
// Classification itself is a collaborator behind the Classifier interface;
// the bundled RuleClassifier does marker scanning so the server works
// without an external reasoning service.
package analyze

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Profile is the analysis result returned by the analyze tool.
type Profile struct {
	Version      string   `json:"detected_version"`
	Frameworks   []string `json:"frameworks"`
	SuggestedIDs []string `json:"suggested_transformation_ids"`
}

// UnknownProfile is returned when the project has no recognizable build
// descriptor. That is not an error condition.
func UnknownProfile() Profile {
	return Profile{Version: "Unknown", Frameworks: []string{}, SuggestedIDs: []string{}}
}

// Classifier is the external reasoning collaborator: given descriptor text
// and the allowed transformation ids, produce a profile. Suggestions
// outside the allow-list are the classifier's bug; the analyzer filters
// them anyway.
type Classifier interface {
	Classify(ctx context.Context, descriptor string, allowed []string) (Profile, error)
}

// descriptorNames are recognized project descriptors, checked in order.
var descriptorNames = []string{"pom.xml", "build.gradle", "build.gradle.kts"}

// Analyzer ties descriptor discovery to a classifier and an allow-list.
type Analyzer struct {
	classifier Classifier
	allowed    []string
	logger     *zap.Logger
}

func New(classifier Classifier, allowed []string, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{classifier: classifier, allowed: allowed, logger: logger}
}

// Allowed returns the allow-list handed to the classifier.
func (a *Analyzer) Allowed() []string {
	return a.allowed
}

// Analyze reads the project descriptor under projectPath and classifies
// it. An invalid path is an input error; a merely absent descriptor yields
// the Unknown profile.
func (a *Analyzer) Analyze(ctx context.Context, projectPath string) (Profile, error) {
	info, err := os.Stat(projectPath)
	if err != nil || !info.IsDir() {
		return Profile{}, fmt.Errorf("invalid project path: %s", projectPath)
	}

	descriptor, name, found := a.readDescriptor(projectPath)
	if !found {
		a.logger.Info("no project descriptor found",
			zap.String("project", projectPath))
		return UnknownProfile(), nil
	}

	a.logger.Info("analyzing project descriptor",
		zap.String("project", projectPath),
		zap.String("descriptor", name))

	profile, err := a.classifier.Classify(ctx, descriptor, a.allowed)
	if err != nil {
		return Profile{}, fmt.Errorf("classify project: %w", err)
	}
	profile.SuggestedIDs = intersect(profile.SuggestedIDs, a.allowed)
	if profile.Frameworks == nil {
		profile.Frameworks = []string{}
	}
	if profile.SuggestedIDs == nil {
		profile.SuggestedIDs = []string{}
	}
	return profile, nil
}

func (a *Analyzer) readDescriptor(projectPath string) (content, name string, found bool) {
	for _, candidate := range descriptorNames {
		data, err := os.ReadFile(filepath.Join(projectPath, candidate))
		if err == nil {
			return string(data), candidate, true
		}
	}
	return "", "", false
}

// intersect keeps suggestions that appear in the allow-list, preserving
// suggestion order.
func intersect(suggested, allowed []string) []string {
	allowedSet := make(map[string]bool, len(allowed))
	for _, id := range allowed {
		allowedSet[id] = true
	}
	out := make([]string, 0, len(suggested))
	for _, id := range suggested {
		if allowedSet[id] {
			out = append(out, id)
		}
	}
	return out
}
