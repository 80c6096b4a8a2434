package display

import (
	"sort"
	"strings"

	"github.com/arthur-debert/linkany/pkg/types"
)

// pathKeyOrder fixes the order path keys are printed in
var pathKeyOrder = []string{
	types.PathDir, types.PathFile, types.PathPath,
	types.PathSource, types.PathTarget,
	types.PathFrom, types.PathTo,
	types.PathKind,
}

// FormatPlan renders one line per step:
//
//	- <kind>: <message> (k=v k=v)
//
// An empty plan renders as "No changes.".
func FormatPlan(steps []types.Step) string {
	if len(steps) == 0 {
		return "No changes."
	}

	lines := make([]string, 0, len(steps))
	for _, s := range steps {
		line := "- " + string(s.Kind) + ": " + s.Message
		if paths := formatPaths(s.Paths); paths != "" {
			line += " (" + paths + ")"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func formatPaths(paths map[string]string) string {
	if len(paths) == 0 {
		return ""
	}
	parts := make([]string, 0, len(paths))
	for _, k := range orderedKeys(paths) {
		parts = append(parts, k+"="+paths[k])
	}
	return strings.Join(parts, " ")
}

func orderedKeys(paths map[string]string) []string {
	keys := make([]string, 0, len(paths))
	seen := make(map[string]bool, len(pathKeyOrder))
	for _, k := range pathKeyOrder {
		if _, ok := paths[k]; ok {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	var rest []string
	for k := range paths {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
