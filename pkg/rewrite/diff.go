package rewrite

import (
	"fmt"
	"strings"
)

// diffText renders a compact line diff for one changed file. It compares
// lines positionally, which is enough for the mechanical single-line
// rewrites the bundled transformations produce; a structural diff belongs
// to an external engine.
func diffText(path string, before, after []byte) string {
	oldLines := strings.Split(string(before), "\n")
	newLines := strings.Split(string(after), "\n")

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", path, path)

	common := len(oldLines)
	if len(newLines) < common {
		common = len(newLines)
	}
	for i := 0; i < common; i++ {
		if oldLines[i] != newLines[i] {
			fmt.Fprintf(&sb, "@@ line %d @@\n-%s\n+%s\n", i+1, oldLines[i], newLines[i])
		}
	}
	for i := common; i < len(oldLines); i++ {
		fmt.Fprintf(&sb, "-%s\n", oldLines[i])
	}
	for i := common; i < len(newLines); i++ {
		fmt.Fprintf(&sb, "+%s\n", newLines[i])
	}
	return sb.String()
}
