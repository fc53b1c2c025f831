package spec

import (
	"fmt"
	"strings"
)

// Declared-dependency normalization.
//
// Authors write the dependency field in several shapes: absent, a bare
// string, or a list — under either "depends_on" or "dependsOn". This is
// the single place that collapses all of them into one ordered []string.
// Downstream code (graph builder, validators, tools) must never re-parse
// the raw field.

// dependencyKeys are the accepted frontmatter spellings, checked in order.
// "depends_on" wins when both are present.
var dependencyKeys = []string{"depends_on", "dependsOn"}

// DependencyField extracts the raw declared-dependency value from a
// frontmatter mapping. Returns nil when neither spelling is present.
func DependencyField(meta map[string]any) any {
	for _, key := range dependencyKeys {
		if v, ok := meta[key]; ok {
			return v
		}
	}
	return nil
}

// NormalizeDependencies canonicalizes a raw declared-dependency value into
// an ordered list of trimmed identifier strings. Empty and non-string
// entries are dropped; declaration order is preserved; repeated identical
// entries are kept as typed (round-trip fidelity — see DESIGN.md).
// It never fails: malformed input normalizes to an empty list.
func NormalizeDependencies(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return []string{s}
		}
		return nil
	case []string:
		return appendTrimmed(nil, v...)
	case []any:
		var deps []string
		for _, item := range v {
			switch s := item.(type) {
			case string:
				deps = appendTrimmed(deps, s)
			case int, int64, float64:
				// YAML parses bare numeric identifiers as numbers.
				deps = appendTrimmed(deps, fmt.Sprintf("%v", s))
			}
		}
		return deps
	default:
		return nil
	}
}

// NormalizeTags canonicalizes the tags field the same way: absent, scalar,
// or list, collapsed into an ordered list of trimmed strings.
func NormalizeTags(raw any) []string {
	return NormalizeDependencies(raw)
}

func appendTrimmed(dst []string, items ...string) []string {
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			dst = append(dst, s)
		}
	}
	return dst
}
