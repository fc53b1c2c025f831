package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/codervisor/leanspec/internal/graph"
	"github.com/codervisor/leanspec/internal/spec"
)

func record(id, body string, deps ...string) spec.Record {
	return spec.Record{
		ID:        id,
		Status:    spec.StatusDraft,
		Priority:  spec.PriorityMedium,
		DependsOn: deps,
		Body:      body,
	}
}

func TestValidateRecord_CleanRecordPasses(t *testing.T) {
	recs := []spec.Record{
		record("001-a", "# A\n\nclean body\n"),
		record("002-b", "# B\n", "001-a"),
	}
	g := graph.Build(recs)

	rep := ValidateRecord(&recs[1], g, Options{})
	if !rep.Passed {
		t.Errorf("Passed = false: %+v", rep.Errors)
	}
	if len(rep.Warnings) != 0 {
		t.Errorf("Warnings = %+v, want none", rep.Warnings)
	}
}

func TestValidateRecord_SelfReferenceIsError(t *testing.T) {
	recs := []spec.Record{record("001-a", "body\n", "001-a")}
	g := graph.Build(recs)

	rep := ValidateRecord(&recs[0], g, Options{})
	if rep.Passed {
		t.Fatal("Passed = true, want failure for self-reference")
	}
	if len(rep.Errors) != 1 || !strings.Contains(rep.Errors[0].Message, "depends on itself") {
		t.Errorf("Errors = %+v", rep.Errors)
	}
}

func TestValidateRecord_DanglingDependencyIsWarning(t *testing.T) {
	recs := []spec.Record{record("001-a", "body\n", "404-missing")}
	g := graph.Build(recs)

	rep := ValidateRecord(&recs[0], g, Options{})
	if !rep.Passed {
		t.Error("a dangling dependency must not fail the record")
	}
	if len(rep.Warnings) != 1 || !strings.Contains(rep.Warnings[0].Message, "404-missing") {
		t.Errorf("Warnings = %+v", rep.Warnings)
	}
}

func TestValidateRecord_DuplicateDeclarationIsWarning(t *testing.T) {
	recs := []spec.Record{
		record("001-a", "body\n"),
		record("002-b", "body\n", "001-a", "001-a"),
	}
	g := graph.Build(recs)

	rep := ValidateRecord(&recs[1], g, Options{})
	if !rep.Passed {
		t.Error("a duplicate declaration must not fail the record")
	}
	if len(rep.Warnings) != 1 || !strings.Contains(rep.Warnings[0].Message, "declared more than once") {
		t.Errorf("Warnings = %+v", rep.Warnings)
	}
}

func TestValidateRecord_UnknownStatusAndPriorityWarn(t *testing.T) {
	recs := []spec.Record{{
		ID:       "001-a",
		Status:   "wip",
		Priority: "urgent",
		Body:     "body\n",
	}}
	g := graph.Build(recs)

	rep := ValidateRecord(&recs[0], g, Options{})
	if !rep.Passed {
		t.Error("unknown enum values must warn, not fail")
	}
	if len(rep.Warnings) != 2 {
		t.Errorf("Warnings = %+v, want 2", rep.Warnings)
	}
}

func TestValidateRecord_CorruptBodyFails(t *testing.T) {
	recs := []spec.Record{record("001-a", "```\nnever closed\n")}
	g := graph.Build(recs)

	rep := ValidateRecord(&recs[0], g, Options{})
	if rep.Passed {
		t.Error("an unterminated fence must fail the record")
	}
}

func TestValidateRecord_CrossReferences(t *testing.T) {
	recs := []spec.Record{
		record("001-auth", "body\n"),
		record("002-api", "Builds on 001-auth for sessions.\n"),
	}
	g := graph.Build(recs)

	// Off by default.
	rep := ValidateRecord(&recs[1], g, Options{})
	if len(rep.Warnings) != 0 {
		t.Errorf("Warnings without opt-in = %+v", rep.Warnings)
	}

	rep = ValidateRecord(&recs[1], g, Options{CheckCrossReferences: true})
	if len(rep.Warnings) != 1 || !strings.Contains(rep.Warnings[0].Message, "001-auth") {
		t.Errorf("Warnings = %+v, want a mention of 001-auth", rep.Warnings)
	}
}

func TestValidateRecord_CrossReferenceDeclaredMentionIsFine(t *testing.T) {
	recs := []spec.Record{
		record("001-auth", "body\n"),
		record("002-api", "Builds on 001-auth.\n", "001-auth"),
	}
	g := graph.Build(recs)

	rep := ValidateRecord(&recs[1], g, Options{CheckCrossReferences: true})
	if len(rep.Warnings) != 0 {
		t.Errorf("Warnings = %+v, want none for a declared mention", rep.Warnings)
	}
}

func TestValidateRecord_CrossReferenceSkipsFences(t *testing.T) {
	recs := []spec.Record{
		record("001-auth", "body\n"),
		record("002-api", "```\nsee 001-auth\n```\n"),
	}
	g := graph.Build(recs)

	rep := ValidateRecord(&recs[1], g, Options{CheckCrossReferences: true})
	if len(rep.Warnings) != 0 {
		t.Errorf("a mention inside a fence was flagged: %+v", rep.Warnings)
	}
}

func TestValidateRecord_CrossReferenceTrimsPunctuation(t *testing.T) {
	recs := []spec.Record{
		record("001-auth", "body\n"),
		record("002-api", "See (001-auth), then continue.\n"),
	}
	g := graph.Build(recs)

	rep := ValidateRecord(&recs[1], g, Options{CheckCrossReferences: true})
	if len(rep.Warnings) != 1 {
		t.Errorf("Warnings = %+v, want the parenthesized mention flagged", rep.Warnings)
	}
}

func TestValidateCorpus_AggregatesRecordFailures(t *testing.T) {
	recs := []spec.Record{
		record("001-a", "body\n"),
		record("002-b", "```\nopen fence\n"),
	}

	out := ValidateCorpus(recs, nil, Options{})
	if out.Passed {
		t.Error("Passed = true, want corpus failure from 002-b")
	}
	if len(out.Records) != 2 {
		t.Fatalf("Records = %d, want 2", len(out.Records))
	}
	if !out.Records[0].Report.Passed || out.Records[1].Report.Passed {
		t.Errorf("per-record pass/fail wrong: %+v", out.Records)
	}
}

func TestValidateCorpus_LoadFailuresDegradeToWarnings(t *testing.T) {
	recs := []spec.Record{record("001-a", "body\n")}
	failures := []spec.LoadFailure{{ID: "002-broken", Err: errors.New("parse error")}}

	out := ValidateCorpus(recs, failures, Options{})
	if !out.Passed {
		t.Error("an unreadable folder degrades to a warning, not a failure")
	}
	if len(out.Corpus.Warnings) != 1 || !strings.Contains(out.Corpus.Warnings[0].Message, "no data available") {
		t.Errorf("Corpus.Warnings = %+v", out.Corpus.Warnings)
	}
}

func TestValidateCorpus_SequenceConflictsAreCorpusWarnings(t *testing.T) {
	recs := []spec.Record{
		record("005-foo", "body\n"),
		record("005-bar", "body\n"),
	}

	out := ValidateCorpus(recs, nil, Options{})
	if len(out.Corpus.Warnings) != 1 {
		t.Fatalf("Corpus.Warnings = %+v, want one conflict", out.Corpus.Warnings)
	}
	msg := out.Corpus.Warnings[0].Message
	if !strings.Contains(msg, "sequence 5") || !strings.Contains(msg, "005-foo") || !strings.Contains(msg, "005-bar") {
		t.Errorf("conflict message = %q", msg)
	}
}

func TestValidateCorpus_EmptySnapshot(t *testing.T) {
	out := ValidateCorpus(nil, nil, Options{})
	if !out.Passed {
		t.Error("an empty corpus must pass")
	}
}
