// Package ops implements the mutation and query operations over a spec
// corpus: link, unlink, check, and validate. Both the CLI commands and
// the MCP tools call through here, so every operation returns a
// structured result independent of how it is rendered.
//
// Failure policy: a mutation target that resolves to no known record is a
// hard failure that aborts before any write. A detected cycle or sequence
// collision is a soft warning — the operation proceeds. Self-reference is
// always a hard failure regardless of cycle policy.
package ops

import (
	"fmt"

	"github.com/codervisor/leanspec/internal/config"
	"github.com/codervisor/leanspec/internal/engine"
	"github.com/codervisor/leanspec/internal/graph"
	"github.com/codervisor/leanspec/internal/integrity"
	"github.com/codervisor/leanspec/internal/sequence"
	"github.com/codervisor/leanspec/internal/spec"
)

// LinkResult is the structured outcome of a link operation.
type LinkResult struct {
	Spec string `json:"spec"`
	// Added lists the dependencies recorded by this call, in input order.
	Added []string `json:"added"`
	// Skipped lists dependencies that were already declared.
	Skipped []string `json:"skipped,omitempty"`
	// Cycles holds one diagnostic path per new edge that closes a loop.
	// Cycles are reported, never blocked — the edges are recorded anyway.
	Cycles   [][]string          `json:"cycles,omitempty"`
	Warnings []integrity.Finding `json:"warnings,omitempty"`
}

// Link declares new dependencies on a spec. The target spec and every
// dependency must resolve to a known record; otherwise the operation
// aborts before any write.
func Link(st spec.Store, projectRoot, id string, deps []string, cfg config.Settings) (*LinkResult, error) {
	if len(deps) == 0 {
		return nil, fmt.Errorf("no dependencies given")
	}

	records, failures, err := st.List(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("reading corpus: %w", err)
	}

	g := graph.Build(records)
	rec := findRecord(records, id)
	if rec == nil {
		return nil, fmt.Errorf("spec %q not found", id)
	}

	// Hard failures first, before any state is touched.
	for _, dep := range deps {
		if dep == id {
			return nil, fmt.Errorf("spec %q cannot depend on itself", id)
		}
		if !g.Has(dep) {
			return nil, fmt.Errorf("dependency %q does not resolve to any known spec", dep)
		}
	}

	res := &LinkResult{Spec: id}
	for _, dep := range deps {
		if rec.DeclaresDependency(dep) {
			res.Skipped = append(res.Skipped, dep)
			res.Warnings = append(res.Warnings, integrity.Finding{
				Severity: integrity.SeverityWarning,
				Message:  fmt.Sprintf("dependency %q already declared", dep),
			})
			continue
		}
		if cycle := g.FindCycle(id, dep); cycle != nil {
			res.Cycles = append(res.Cycles, cycle)
			res.Warnings = append(res.Warnings, integrity.Finding{
				Severity: integrity.SeverityWarning,
				Message:  fmt.Sprintf("linking %q introduces a dependency cycle: %s", dep, joinPath(cycle)),
				Hint:     "cycles are advisory; the link is recorded anyway",
			})
		}
		rec.DependsOn = append(rec.DependsOn, dep)
		res.Added = append(res.Added, dep)
	}

	res.Warnings = append(res.Warnings, preflightWarnings(records, failures, cfg)...)

	if err := st.Save(projectRoot, rec); err != nil {
		return nil, fmt.Errorf("saving spec %q: %w", id, err)
	}
	return res, nil
}

// UnlinkResult is the structured outcome of an unlink operation.
type UnlinkResult struct {
	Spec     string              `json:"spec"`
	Removed  []string            `json:"removed"`
	Missing  []string            `json:"missing,omitempty"`
	Warnings []integrity.Finding `json:"warnings,omitempty"`
}

// Unlink removes declared dependencies from a spec. With all set, every
// declared dependency is removed. Removing a dependency that was never
// declared is a soft warning, not a failure.
func Unlink(st spec.Store, projectRoot, id string, deps []string, all bool, cfg config.Settings) (*UnlinkResult, error) {
	if !all && len(deps) == 0 {
		return nil, fmt.Errorf("no dependencies given (use all to clear every declared dependency)")
	}

	records, failures, err := st.List(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("reading corpus: %w", err)
	}
	rec := findRecord(records, id)
	if rec == nil {
		return nil, fmt.Errorf("spec %q not found", id)
	}

	res := &UnlinkResult{Spec: id}
	if all {
		res.Removed = rec.DependsOn
		rec.DependsOn = nil
	} else {
		remove := make(map[string]bool, len(deps))
		for _, dep := range deps {
			if !rec.DeclaresDependency(dep) {
				res.Missing = append(res.Missing, dep)
				res.Warnings = append(res.Warnings, integrity.Finding{
					Severity: integrity.SeverityWarning,
					Message:  fmt.Sprintf("dependency %q was not declared on %q", dep, id),
				})
				continue
			}
			remove[dep] = true
		}
		var kept []string
		for _, dep := range rec.DependsOn {
			if remove[dep] {
				res.Removed = append(res.Removed, dep)
				continue
			}
			kept = append(kept, dep)
		}
		rec.DependsOn = kept
	}

	res.Warnings = append(res.Warnings, preflightWarnings(records, failures, cfg)...)

	if err := st.Save(projectRoot, rec); err != nil {
		return nil, fmt.Errorf("saving spec %q: %w", id, err)
	}
	return res, nil
}

// Check runs the sequence conflict check over the whole corpus. Folder
// names of unreadable specs still participate — the check only needs the
// identifier, not the document.
func Check(st spec.Store, projectRoot string) (sequence.CheckResult, error) {
	records, failures, err := st.List(projectRoot)
	if err != nil {
		return sequence.CheckResult{}, fmt.Errorf("reading corpus: %w", err)
	}
	ids := make([]string, 0, len(records)+len(failures))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}
	for _, f := range failures {
		ids = append(ids, f.ID)
	}
	return sequence.Check(ids), nil
}

// Validate runs the full validation pass. With id empty the whole corpus
// is validated; otherwise the corpus is still loaded once (the graph and
// index need it) but only the named record's report is returned.
func Validate(st spec.Store, projectRoot, id string, crossRefs bool) (*engine.CorpusReport, error) {
	records, failures, err := st.List(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("reading corpus: %w", err)
	}
	opts := engine.Options{CheckCrossReferences: crossRefs}

	if id == "" {
		return engine.ValidateCorpus(records, failures, opts), nil
	}

	rec := findRecord(records, id)
	if rec == nil {
		return nil, fmt.Errorf("spec %q not found", id)
	}
	g := graph.Build(records)
	rep := engine.ValidateRecord(rec, g, opts)
	return &engine.CorpusReport{
		Passed:  rep.Passed,
		Records: []engine.RecordReport{{ID: id, Report: rep}},
		Corpus:  integrity.NewReport(),
	}, nil
}

// preflightWarnings runs the quiet-mode sequence check before a mutation
// when auto-check is enabled. Conflicts never abort the mutation.
func preflightWarnings(records []spec.Record, failures []spec.LoadFailure, cfg config.Settings) []integrity.Finding {
	if !cfg.AutoCheck {
		return nil
	}
	ids := make([]string, 0, len(records)+len(failures))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}
	for _, f := range failures {
		ids = append(ids, f.ID)
	}
	res := sequence.Check(ids)
	if !res.Conflicts {
		return nil
	}
	return []integrity.Finding{{
		Severity: integrity.SeverityWarning,
		Message:  fmt.Sprintf("%d sequence conflict(s) in the corpus", len(res.Groups)),
		Hint:     "run the check operation in full mode for details",
	}}
}

func findRecord(records []spec.Record, id string) *spec.Record {
	for i := range records {
		if records[i].ID == id {
			return &records[i]
		}
	}
	return nil
}

func joinPath(path []string) string {
	out := ""
	for i, p := range path {
		if i > 0 {
			out += " -> "
		}
		out += p
	}
	return out
}
