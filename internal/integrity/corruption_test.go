package integrity

import (
	"strings"
	"testing"
)

func TestValidateBody_CleanDocumentPasses(t *testing.T) {
	body := "# Title\n\nSome **bold** and *italic* prose.\n\n```go\nfunc main() {}\n```\n"
	r := ValidateBody(body)

	if !r.Passed {
		t.Errorf("Passed = false, errors: %+v", r.Errors)
	}
	if len(r.Errors) != 0 {
		t.Errorf("Errors = %+v, want none", r.Errors)
	}
}

func TestValidateBody_UnterminatedFenceCitesOpeningLine(t *testing.T) {
	body := "intro\n\n```go\nfunc main() {}\n"
	r := ValidateBody(body)

	if r.Passed {
		t.Fatal("Passed = true, want failure")
	}
	if len(r.Errors) != 1 {
		t.Fatalf("Errors = %+v, want exactly one", r.Errors)
	}
	f := r.Errors[0]
	if f.Line != 3 {
		t.Errorf("Line = %d, want 3 (the opening fence)", f.Line)
	}
	if !strings.Contains(f.Message, "line 3") {
		t.Errorf("Message = %q, want the opening line cited", f.Message)
	}
	if f.Hint == "" {
		t.Error("Hint is empty, want closing-fence guidance")
	}
}

func TestValidateBody_SecondUnterminatedFence(t *testing.T) {
	body := "```\nclosed\n```\ntext\n```\nstill open\n"
	r := ValidateBody(body)

	if len(r.Errors) != 1 || r.Errors[0].Line != 5 {
		t.Errorf("Errors = %+v, want one at line 5", r.Errors)
	}
}

func TestValidateBody_OddBoldMarkers(t *testing.T) {
	r := ValidateBody("a **broken bold span\n")

	if len(r.Errors) != 1 {
		t.Fatalf("Errors = %+v, want exactly one", r.Errors)
	}
	if !strings.Contains(r.Errors[0].Message, "bold") {
		t.Errorf("Message = %q, want a bold-specific error", r.Errors[0].Message)
	}
}

func TestValidateBody_OddItalicMarkers(t *testing.T) {
	r := ValidateBody("a *broken italic span\n")

	if len(r.Errors) != 1 {
		t.Fatalf("Errors = %+v, want exactly one", r.Errors)
	}
	if !strings.Contains(r.Errors[0].Message, "italic") {
		t.Errorf("Message = %q, want an italic-specific error", r.Errors[0].Message)
	}
}

func TestValidateBody_AsterisksInsideFencesIgnored(t *testing.T) {
	body := "prose\n\n```c\nint *p = &x;\nchar **argv;\n```\n"
	r := ValidateBody(body)

	if !r.Passed {
		t.Errorf("asterisks inside a fence counted as emphasis: %+v", r.Errors)
	}
}

func TestValidateBody_ListMarkersNotCounted(t *testing.T) {
	body := "* first item\n* second item\n* third item\n"
	r := ValidateBody(body)

	if !r.Passed {
		t.Errorf("bullet markers counted as emphasis: %+v", r.Errors)
	}
}

func TestValidateBody_InlineCodeSpansExcluded(t *testing.T) {
	body := "use `*ptr` to dereference, or `**ppv` for double indirection\n"
	r := ValidateBody(body)

	if !r.Passed {
		t.Errorf("inline code counted as emphasis: %+v", r.Errors)
	}
}

func TestValidateBody_AccumulatesAllFindings(t *testing.T) {
	body := "a **broken bold and a *broken italic\n\n```\nnever closed\n"
	r := ValidateBody(body)

	if len(r.Errors) != 3 {
		t.Errorf("Errors = %d, want 3 (fence + bold + italic): %+v", len(r.Errors), r.Errors)
	}
}

func TestReport_WarningsDoNotFlipPassed(t *testing.T) {
	r := NewReport()
	r.AddWarning(Finding{Message: "something advisory"})

	if !r.Passed {
		t.Error("a warning flipped Passed")
	}
	if r.Warnings[0].Severity != SeverityWarning {
		t.Errorf("Severity = %s, want warning", r.Warnings[0].Severity)
	}
}

func TestReport_Merge(t *testing.T) {
	a := NewReport()
	a.AddWarning(Finding{Message: "w"})

	b := NewReport()
	b.AddError(Finding{Message: "e"})

	a.Merge(b)
	if a.Passed {
		t.Error("merging a failed report must fail the target")
	}
	if len(a.Errors) != 1 || len(a.Warnings) != 1 {
		t.Errorf("Merge result = %d errors / %d warnings", len(a.Errors), len(a.Warnings))
	}

	a.Merge(nil)
}
