package rewrite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProjectFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLocalEngine_ParseCollectsMatchingFiles(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "pom.xml", "<project/>")
	writeProjectFile(t, root, "src/main/java/App.java", "class App {}")
	writeProjectFile(t, root, "README.md", "docs")
	writeProjectFile(t, root, "target/Generated.java", "class Generated {}")

	engine := NewLocalEngine(DefaultRegistry(), nil)
	src, err := engine.Parse(context.Background(), root)
	require.NoError(t, err)

	paths := make([]string, 0, len(src.Files))
	for _, f := range src.Files {
		paths = append(paths, f.Path)
	}
	assert.Contains(t, paths, "pom.xml")
	assert.Contains(t, paths, "src/main/java/App.java")
	assert.NotContains(t, paths, "README.md")
	assert.NotContains(t, paths, "target/Generated.java", "build output must be skipped")
}

func TestLocalEngine_ApplyJavaxToJakarta(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "src/main/java/Servlet.java",
		"import javax.servlet.http.HttpServlet;\nimport javax.xml.bind.JAXB;\n\nclass S extends HttpServlet {}\n")

	engine := NewLocalEngine(DefaultRegistry(), nil)
	src, err := engine.Parse(context.Background(), root)
	require.NoError(t, err)

	changes, err := engine.Apply(context.Background(), "codeshift.jakarta.JavaxToJakarta", src)
	require.NoError(t, err)
	require.Len(t, changes, 1)

	assert.Equal(t, "src/main/java/Servlet.java", changes[0].Path)
	assert.Contains(t, string(changes[0].Content), "import jakarta.servlet.http.HttpServlet;")
	// javax.xml.bind is not an enterprise namespace handled by this rewrite.
	assert.Contains(t, string(changes[0].Content), "import javax.xml.bind.JAXB;")
	assert.Contains(t, changes[0].Diff, "--- a/src/main/java/Servlet.java")
	assert.Contains(t, changes[0].Diff, "+import jakarta.servlet.http.HttpServlet;")
}

func TestLocalEngine_ApplyJUnitImports(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "src/test/java/AppTest.java",
		"import org.junit.Test;\nimport org.junit.Before;\n\nclass AppTest {\n  @Before\n  void setUp() {}\n  @Test\n  void works() {}\n}\n")

	engine := NewLocalEngine(DefaultRegistry(), nil)
	src, err := engine.Parse(context.Background(), root)
	require.NoError(t, err)

	changes, err := engine.Apply(context.Background(), "codeshift.testing.JUnit4To5Imports", src)
	require.NoError(t, err)
	require.Len(t, changes, 1)

	got := string(changes[0].Content)
	assert.Contains(t, got, "import org.junit.jupiter.api.Test;")
	assert.Contains(t, got, "import org.junit.jupiter.api.BeforeEach;")
	assert.Contains(t, got, "@BeforeEach")
}

func TestLocalEngine_ApplyUpgradeJavaRelease(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "pom.xml",
		"<project>\n  <properties>\n    <maven.compiler.source>11</maven.compiler.source>\n    <maven.compiler.target>11</maven.compiler.target>\n  </properties>\n</project>\n")

	engine := NewLocalEngine(DefaultRegistry(), nil)
	src, err := engine.Parse(context.Background(), root)
	require.NoError(t, err)

	changes, err := engine.Apply(context.Background(), "codeshift.java.UpgradeJavaRelease", src)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Contains(t, string(changes[0].Content), "<maven.compiler.source>21</maven.compiler.source>")
}

func TestLocalEngine_ApplyUnknownTransformation(t *testing.T) {
	engine := NewLocalEngine(DefaultRegistry(), nil)
	_, err := engine.Apply(context.Background(), "codeshift.does.NotExist", &SourceSet{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not registered")
}

func TestRegistry_RejectsDuplicateIDs(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(func() Transformation { return javaxToJakarta{} }))
	require.Error(t, r.Register(func() Transformation { return javaxToJakarta{} }))
}

func TestRegistry_IDsSorted(t *testing.T) {
	ids := DefaultRegistry().IDs()
	require.NotEmpty(t, ids)
	assert.IsNonDecreasing(t, ids)
}
