package rewrite

import (
	"bytes"
	"regexp"
)

// Bundled transformations. Each one is a mechanical text rewrite over the
// files its patterns select; anything needing real source parsing belongs
// in an external engine behind the Engine interface.

// DefaultRegistry returns a registry populated with the bundled
// transformations.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, f := range []Factory{
		func() Transformation { return javaxToJakarta{} },
		func() Transformation { return junit4To5Imports{} },
		func() Transformation { return upgradeJavaRelease{} },
	} {
		// Ids are compile-time constants; a collision here is a bug.
		if err := r.Register(f); err != nil {
			panic(err)
		}
	}
	return r
}

// javaxToJakarta migrates javax.* enterprise imports to jakarta.*.
type javaxToJakarta struct{}

var javaxImportRe = regexp.MustCompile(`(?m)^(\s*import\s+)javax\.(servlet|persistence|validation|annotation|transaction|ws|json|mail)\b`)

func (javaxToJakarta) ID() string { return "codeshift.jakarta.JavaxToJakarta" }
func (javaxToJakarta) Description() string {
	return "Rewrites javax.* enterprise imports to their jakarta.* successors"
}
func (javaxToJakarta) Patterns() []string { return []string{"**/*.java"} }

func (javaxToJakarta) Rewrite(path string, content []byte) ([]byte, bool) {
	out := javaxImportRe.ReplaceAll(content, []byte("${1}jakarta.${2}"))
	return out, !bytes.Equal(out, content)
}

// junit4To5Imports migrates the common JUnit 4 imports and annotations to
// their JUnit 5 equivalents.
type junit4To5Imports struct{}

var junitReplacements = []struct {
	re   *regexp.Regexp
	repl []byte
}{
	{regexp.MustCompile(`(?m)^(\s*import\s+)org\.junit\.Test;`), []byte("${1}org.junit.jupiter.api.Test;")},
	{regexp.MustCompile(`(?m)^(\s*import\s+)org\.junit\.Before;`), []byte("${1}org.junit.jupiter.api.BeforeEach;")},
	{regexp.MustCompile(`(?m)^(\s*import\s+)org\.junit\.After;`), []byte("${1}org.junit.jupiter.api.AfterEach;")},
	{regexp.MustCompile(`(?m)^(\s*import\s+)org\.junit\.Assert;`), []byte("${1}org.junit.jupiter.api.Assertions;")},
	{regexp.MustCompile(`(?m)^(\s*import\s+static\s+)org\.junit\.Assert\.`), []byte("${1}org.junit.jupiter.api.Assertions.")},
	{regexp.MustCompile(`@Before\b([^E])`), []byte("@BeforeEach$1")},
	{regexp.MustCompile(`@After\b([^E])`), []byte("@AfterEach$1")},
}

func (junit4To5Imports) ID() string { return "codeshift.testing.JUnit4To5Imports" }
func (junit4To5Imports) Description() string {
	return "Rewrites JUnit 4 imports and lifecycle annotations to JUnit 5"
}
func (junit4To5Imports) Patterns() []string { return []string{"**/*.java"} }

func (junit4To5Imports) Rewrite(path string, content []byte) ([]byte, bool) {
	out := content
	for _, r := range junitReplacements {
		out = r.re.ReplaceAll(out, r.repl)
	}
	return out, !bytes.Equal(out, content)
}

// upgradeJavaRelease bumps the Maven compiler release properties to 21.
type upgradeJavaRelease struct{}

var javaReleaseRe = regexp.MustCompile(`(?m)(<(?:maven\.compiler\.(?:source|target|release)|java\.version)>)\s*(?:1\.8|8|11|17)\s*(</)`)

func (upgradeJavaRelease) ID() string { return "codeshift.java.UpgradeJavaRelease" }
func (upgradeJavaRelease) Description() string {
	return "Raises Maven compiler source/target/release properties to 21"
}
func (upgradeJavaRelease) Patterns() []string { return []string{"pom.xml", "**/pom.xml"} }

func (upgradeJavaRelease) Rewrite(path string, content []byte) ([]byte, bool) {
	out := javaReleaseRe.ReplaceAll(content, []byte("${1}21${2}"))
	return out, !bytes.Equal(out, content)
}
