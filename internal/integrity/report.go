// Package integrity holds the shared validation report types and the
// structural corruption validator for spec document bodies.
//
// Two severities run through the whole system. Errors are structural
// defects that make a document or the derived graph unreliable:
// unterminated code fences, unbalanced emphasis, unresolved mutation
// targets, self-references. Warnings are advisory signals that never
// block progress: sequence collisions, dependency cycles, dangling
// references, prose/metadata mismatches.
package integrity

// Severity classifies a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one validation result entry.
type Finding struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	// Line is 1-based within the document body; 0 when not line-scoped.
	Line int `json:"line,omitempty"`
	// Hint is optional remediation guidance.
	Hint string `json:"hint,omitempty"`
}

// Report accumulates every finding for one validation pass. Validators
// never stop at the first problem — authors want the complete picture
// before editing.
type Report struct {
	Passed   bool      `json:"passed"`
	Errors   []Finding `json:"errors"`
	Warnings []Finding `json:"warnings"`
}

// NewReport returns an empty, passing report.
func NewReport() *Report {
	return &Report{Passed: true}
}

// AddError records an error finding and fails the report.
func (r *Report) AddError(f Finding) {
	f.Severity = SeverityError
	r.Errors = append(r.Errors, f)
	r.Passed = false
}

// AddWarning records a warning finding. Warnings never flip Passed.
func (r *Report) AddWarning(f Finding) {
	f.Severity = SeverityWarning
	r.Warnings = append(r.Warnings, f)
}

// Merge folds another report into this one.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	if !other.Passed {
		r.Passed = false
	}
}
