// Package spec defines the core record model for a spec corpus and the
// ingestion-boundary normalization of declared dependencies.
//
// A corpus is a directory of spec folders, one folder per unit of work.
// Each folder holds a spec.md with a YAML frontmatter header (status,
// priority, tags, declared dependencies) followed by free-form markdown.
// Records are read-time snapshots: once loaded they are never mutated by
// any consumer except through an explicit Save.
package spec

import (
	"fmt"
	"strings"
)

// --- Status enum ---

// Status is the lifecycle state of a spec.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusPlanned    Status = "planned"
	StatusInProgress Status = "in-progress"
	StatusComplete   Status = "complete"
	StatusArchived   Status = "archived"
)

// validStatuses is the set of allowed statuses.
var validStatuses = map[Status]bool{
	StatusDraft:      true,
	StatusPlanned:    true,
	StatusInProgress: true,
	StatusComplete:   true,
	StatusArchived:   true,
}

// ValidateStatus returns an error if the status is not recognized.
func ValidateStatus(s Status) error {
	if !validStatuses[s] {
		return fmt.Errorf("invalid status %q: must be one of: draft, planned, in-progress, complete, archived", s)
	}
	return nil
}

// --- Priority enum ---

// Priority orders specs for planning purposes. It has no effect on
// validation; it is carried through for listing and reporting.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// validPriorities is the set of allowed priorities.
var validPriorities = map[Priority]bool{
	PriorityLow:      true,
	PriorityMedium:   true,
	PriorityHigh:     true,
	PriorityCritical: true,
}

// ValidatePriority returns an error if the priority is not recognized.
func ValidatePriority(p Priority) error {
	if !validPriorities[p] {
		return fmt.Errorf("invalid priority %q: must be one of: low, medium, high, critical", p)
	}
	return nil
}

// --- Core data structure ---

// Record is one spec document, loaded from its folder.
//
// DependsOn holds the declared dependencies exactly as the author listed
// them, after normalization (see NormalizeDependencies): order preserved,
// duplicates preserved, entries may reference specs that do not exist.
// Dangling entries are a tolerated data state, not a load error.
type Record struct {
	// ID is the folder name, e.g. "001-auth-flow" or "20251103-001-auth-flow".
	ID string `json:"id"`

	// Sequence is the numeric ordering value parsed from the ID,
	// or nil when the ID does not follow the naming grammar.
	Sequence *int `json:"sequence,omitempty"`

	Status    Status   `json:"status"`
	Priority  Priority `json:"priority"`
	Tags      []string `json:"tags,omitempty"`
	DependsOn []string `json:"depends_on,omitempty"`

	// Body is the markdown text after the frontmatter block.
	Body string `json:"-"`

	// Meta is the raw frontmatter mapping, kept so that Save can
	// round-trip fields this engine does not interpret.
	Meta map[string]any `json:"-"`
}

// DeclaresDependency reports whether id appears in the record's
// declared dependency list.
func (r *Record) DeclaresDependency(id string) bool {
	for _, d := range r.DependsOn {
		if d == id {
			return true
		}
	}
	return false
}

// Slugify converts free text into a folder-name-safe slug.
// "Fix auth token refresh" -> "fix-auth-token-refresh".
func Slugify(text string) string {
	var b strings.Builder
	lastDash := true // suppress leading dash
	for _, r := range strings.ToLower(strings.TrimSpace(text)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
