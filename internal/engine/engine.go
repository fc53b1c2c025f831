// Package engine composes the integrity primitives — graph builder,
// cycle detector, sequence indexer, corruption validator — into corpus
// and single-record validation reports.
//
// Every function here is pure: it takes an immutable snapshot of records
// plus explicit options and returns a freshly computed result. Callers
// running a batch build the graph and sequence index once for the whole
// corpus; rebuilding them per record turns an O(N) pass into O(N²).
package engine

import (
	"fmt"
	"strings"

	"github.com/codervisor/leanspec/internal/graph"
	"github.com/codervisor/leanspec/internal/integrity"
	"github.com/codervisor/leanspec/internal/sequence"
	"github.com/codervisor/leanspec/internal/spec"
)

// Options configures a validation pass.
type Options struct {
	// CheckCrossReferences enables the best-effort prose scan that
	// cross-checks identifier mentions against declared dependencies.
	CheckCrossReferences bool
}

// RecordReport pairs one record with its validation findings.
type RecordReport struct {
	ID     string            `json:"id"`
	Report *integrity.Report `json:"report"`
}

// CorpusReport is the merged result of validating a whole snapshot.
// Corpus carries findings that belong to no single record: sequence
// collisions and unreadable folders.
type CorpusReport struct {
	Passed  bool              `json:"passed"`
	Records []RecordReport    `json:"records"`
	Corpus  *integrity.Report `json:"corpus"`
}

// ValidateCorpus validates every record in the snapshot. The relationship
// graph and sequence index are built once and shared across records.
// Unreadable folders degrade to a corpus-level warning — a partial result
// is preferred to none.
func ValidateCorpus(records []spec.Record, failures []spec.LoadFailure, opts Options) *CorpusReport {
	g := graph.Build(records)

	out := &CorpusReport{Passed: true, Corpus: integrity.NewReport()}

	for i := range records {
		rep := ValidateRecord(&records[i], g, opts)
		out.Records = append(out.Records, RecordReport{ID: records[i].ID, Report: rep})
		if !rep.Passed {
			out.Passed = false
		}
	}

	for _, f := range failures {
		out.Corpus.AddWarning(integrity.Finding{
			Message: fmt.Sprintf("spec %q: no data available (%v)", f.ID, f.Err),
			Hint:    "fix or remove the unreadable document and rerun",
		})
	}

	ids := make([]string, 0, len(records)+len(failures))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}
	for _, f := range failures {
		ids = append(ids, f.ID)
	}
	for _, c := range sequence.Check(ids).Groups {
		out.Corpus.AddWarning(integrity.Finding{
			Message: fmt.Sprintf("sequence %d claimed by %s", c.Number, strings.Join(c.Members, ", ")),
			Hint:    "renumber all but one of the folders",
		})
	}

	if !out.Corpus.Passed {
		out.Passed = false
	}
	return out
}

// ValidateRecord validates one record against a prebuilt corpus graph.
// All findings for the record accumulate into a single report rather than
// stopping at the first problem.
func ValidateRecord(rec *spec.Record, g *graph.Graph, opts Options) *integrity.Report {
	rep := integrity.ValidateBody(rec.Body)

	if err := spec.ValidateStatus(rec.Status); err != nil {
		rep.AddWarning(integrity.Finding{Message: err.Error()})
	}
	if err := spec.ValidatePriority(rec.Priority); err != nil {
		rep.AddWarning(integrity.Finding{Message: err.Error()})
	}

	seen := make(map[string]bool, len(rec.DependsOn))
	for _, dep := range rec.DependsOn {
		if dep == rec.ID {
			rep.AddError(integrity.Finding{
				Message: fmt.Sprintf("spec %q depends on itself", rec.ID),
				Hint:    "remove the self-reference from depends_on",
			})
			continue
		}
		if seen[dep] {
			rep.AddWarning(integrity.Finding{
				Message: fmt.Sprintf("dependency %q declared more than once", dep),
				Hint:    "drop the repeated entry; it inflates requiredBy listings",
			})
		}
		seen[dep] = true
		if !g.Has(dep) {
			rep.AddWarning(integrity.Finding{
				Message: fmt.Sprintf("depends on %q, which matches no spec folder", dep),
				Hint:    "create the spec or correct the identifier",
			})
		}
	}

	if opts.CheckCrossReferences {
		for _, f := range crossReferenceFindings(rec, g) {
			rep.AddWarning(f)
		}
	}

	return rep
}

// crossReferenceFindings scans prose for mentions of known spec
// identifiers and flags mentions with no matching depends_on entry.
// The scan is a heuristic over whitespace-delimited tokens, skipping
// fenced code; its findings are advisory only.
func crossReferenceFindings(rec *spec.Record, g *graph.Graph) []integrity.Finding {
	mentioned := make(map[string]bool)

	inFence := false
	for _, line := range strings.Split(rec.Body, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		for _, token := range strings.Fields(line) {
			token = strings.Trim(token, ".,;:!?()[]{}<>\"'`*_")
			if token == "" || token == rec.ID {
				continue
			}
			if g.Has(token) {
				mentioned[token] = true
			}
		}
	}

	var out []integrity.Finding
	for _, id := range g.IDs() {
		if mentioned[id] && !rec.DeclaresDependency(id) {
			out = append(out, integrity.Finding{
				Message: fmt.Sprintf("mentions %q in prose but does not declare it as a dependency", id),
				Hint:    "add it to depends_on, or reword the mention",
			})
		}
	}
	return out
}
