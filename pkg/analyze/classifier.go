package analyze

import (
	"context"
	"regexp"
	"strings"
)

// RuleClassifier is the bundled Classifier: plain marker scanning over the
// descriptor text. It is deliberately conservative; a reasoning service
// plugged in behind the Classifier interface can do better.
type RuleClassifier struct{}

var javaVersionRe = regexp.MustCompile(`<(?:maven\.compiler\.(?:source|release)|java\.version)>\s*(1\.\d|\d+)\s*<`)

// Markers a framework detection keys on, paired with the transformation
// worth suggesting when present.
var frameworkRules = []struct {
	marker    string
	framework string
	suggest   string
}{
	{"javax.servlet", "JavaxEE", "codeshift.jakarta.JavaxToJakarta"},
	{"javax.persistence", "JavaxEE", "codeshift.jakarta.JavaxToJakarta"},
	{"spring-boot-starter-parent", "SpringBoot", ""},
	{"junit</artifactId>", "JUnit4", "codeshift.testing.JUnit4To5Imports"},
	{"junit:junit", "JUnit4", "codeshift.testing.JUnit4To5Imports"},
	{"junit-jupiter", "JUnit5", ""},
}

func (RuleClassifier) Classify(ctx context.Context, descriptor string, allowed []string) (Profile, error) {
	profile := UnknownProfile()

	if m := javaVersionRe.FindStringSubmatch(descriptor); m != nil {
		version := m[1]
		if strings.HasPrefix(version, "1.") {
			version = strings.TrimPrefix(version, "1.")
		}
		profile.Version = version
	}

	seenFramework := make(map[string]bool)
	seenSuggestion := make(map[string]bool)
	for _, rule := range frameworkRules {
		if !strings.Contains(descriptor, rule.marker) {
			continue
		}
		if !seenFramework[rule.framework] {
			seenFramework[rule.framework] = true
			profile.Frameworks = append(profile.Frameworks, rule.framework)
		}
		if rule.suggest != "" && !seenSuggestion[rule.suggest] {
			seenSuggestion[rule.suggest] = true
			profile.SuggestedIDs = append(profile.SuggestedIDs, rule.suggest)
		}
	}

	// An old language level is itself a migration suggestion.
	switch profile.Version {
	case "8", "11", "17":
		if !seenSuggestion["codeshift.java.UpgradeJavaRelease"] {
			profile.SuggestedIDs = append(profile.SuggestedIDs, "codeshift.java.UpgradeJavaRelease")
		}
	}

	return profile, nil
}

// Compile-time check that RuleClassifier implements Classifier.
var _ Classifier = RuleClassifier{}
