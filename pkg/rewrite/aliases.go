package rewrite

import "go.uber.org/zap"

// defaultAliases maps deprecated transformation ids to their current
// canonical form. A catalog file may extend this table at startup.
var defaultAliases = map[string]string{
	"codeshift.legacy.JavaxMigration":       "codeshift.jakarta.JavaxToJakarta",
	"codeshift.legacy.JUnitMigration":       "codeshift.testing.JUnit4To5Imports",
	"codeshift.legacy.UpgradeJava8To21":     "codeshift.java.UpgradeJavaRelease",
	"codeshift.maven.ChangeJavaVersionProp": "codeshift.java.UpgradeJavaRelease",
}

// Aliases resolves deprecated ids. Unknown ids pass through unchanged.
type Aliases struct {
	table  map[string]string
	logger *zap.Logger
}

func NewAliases(logger *zap.Logger) *Aliases {
	if logger == nil {
		logger = zap.NewNop()
	}
	table := make(map[string]string, len(defaultAliases))
	for from, to := range defaultAliases {
		table[from] = to
	}
	return &Aliases{table: table, logger: logger}
}

// Add extends the table with one alias. Later entries win.
func (a *Aliases) Add(from, to string) {
	if from == "" || to == "" {
		return
	}
	a.table[from] = to
}

// Table returns a copy of the alias table.
func (a *Aliases) Table() map[string]string {
	out := make(map[string]string, len(a.table))
	for from, to := range a.table {
		out[from] = to
	}
	return out
}

// Resolve maps id to its canonical form, logging a warning when a
// deprecated alias was used. Ids without an alias entry pass through.
func (a *Aliases) Resolve(id string) (string, bool) {
	if canonical, ok := a.table[id]; ok {
		a.logger.Warn("aliasing deprecated transformation id",
			zap.String("deprecated", id),
			zap.String("canonical", canonical))
		return canonical, true
	}
	return id, false
}
