package sequence

import (
	"fmt"
	"strings"
)

// --- Presentation modes ---

// Mode selects how a conflict check is rendered. The underlying findings
// are identical in every mode; only the text differs.
type Mode string

const (
	// ModeSilent produces no output — callers use CheckResult.Conflicts.
	ModeSilent Mode = "silent"
	// ModeQuiet produces a single warning line with a count. Used for
	// automatic pre-flight checks before mutations.
	ModeQuiet Mode = "quiet"
	// ModeFull enumerates every conflicting group with remediation guidance.
	ModeFull Mode = "full"
)

// validModes is the set of allowed presentation modes.
var validModes = map[Mode]bool{
	ModeSilent: true,
	ModeQuiet:  true,
	ModeFull:   true,
}

// ValidateMode returns an error if the mode is not recognized.
func ValidateMode(m Mode) error {
	if !validModes[m] {
		return fmt.Errorf("invalid check mode %q: must be one of: silent, quiet, full", m)
	}
	return nil
}

// CheckResult is the structured outcome of a sequence conflict check.
// A machine-readable rendering is exactly this structure, nothing more.
type CheckResult struct {
	Conflicts bool       `json:"conflicts"`
	Groups    []Conflict `json:"groups"`
}

// Check runs the conflict check over a set of identifiers.
func Check(ids []string) CheckResult {
	groups := BuildIndex(ids).Conflicts()
	return CheckResult{Conflicts: len(groups) > 0, Groups: groups}
}

// Render produces the human-readable text for a check result in the given
// mode. digits is the zero-padding width for sequence numbers (from
// configuration — never read from process-wide state). Silent mode and a
// clean result both render as the empty string.
func Render(res CheckResult, mode Mode, digits int) string {
	if mode == ModeSilent || !res.Conflicts {
		return ""
	}

	total := 0
	for _, g := range res.Groups {
		total += len(g.Members)
	}

	if mode == ModeQuiet {
		return fmt.Sprintf("warning: %d sequence conflict(s) across %d spec(s) — run check in full mode for details\n",
			len(res.Groups), total)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d sequence conflict(s):\n\n", len(res.Groups))
	for _, g := range res.Groups {
		fmt.Fprintf(&sb, "  sequence %0*d claimed by %d specs:\n", digits, g.Number, len(g.Members))
		for _, id := range g.Members {
			fmt.Fprintf(&sb, "    - %s\n", id)
		}
	}
	sb.WriteString("\nRenumber all but one folder in each group so every spec keeps a unique sequence.\n")
	sb.WriteString("Conflicts are advisory: nothing is blocked, but cross-references stay ambiguous until resolved.\n")
	return sb.String()
}
