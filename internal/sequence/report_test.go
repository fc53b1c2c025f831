package sequence

import (
	"strings"
	"testing"
)

func conflictedResult() CheckResult {
	return Check([]string{"005-foo", "005-bar", "012-x", "012-y"})
}

// --- ValidateMode ---

func TestValidateMode(t *testing.T) {
	for _, m := range []Mode{ModeSilent, ModeQuiet, ModeFull} {
		if err := ValidateMode(m); err != nil {
			t.Errorf("ValidateMode(%s) = %v, want nil", m, err)
		}
	}
	if err := ValidateMode(Mode("loud")); err == nil {
		t.Error("ValidateMode(loud) = nil, want error")
	}
}

// --- Render ---

func TestRender_SilentProducesNothing(t *testing.T) {
	if got := Render(conflictedResult(), ModeSilent, 3); got != "" {
		t.Errorf("silent render = %q, want empty", got)
	}
}

func TestRender_CleanProducesNothing(t *testing.T) {
	res := Check([]string{"001-a", "002-b"})
	if got := Render(res, ModeFull, 3); got != "" {
		t.Errorf("clean full render = %q, want empty", got)
	}
}

func TestRender_QuietIsOneLine(t *testing.T) {
	got := Render(conflictedResult(), ModeQuiet, 3)
	if strings.Count(got, "\n") != 1 {
		t.Errorf("quiet render should be a single line, got %q", got)
	}
	if !strings.Contains(got, "2 sequence conflict(s)") {
		t.Errorf("quiet render should count groups, got %q", got)
	}
}

func TestRender_FullEnumeratesGroups(t *testing.T) {
	got := Render(conflictedResult(), ModeFull, 3)

	for _, want := range []string{"sequence 005", "sequence 012", "005-foo", "005-bar", "012-x", "012-y", "Renumber"} {
		if !strings.Contains(got, want) {
			t.Errorf("full render missing %q:\n%s", want, got)
		}
	}
}

func TestRender_FullPadsToConfiguredWidth(t *testing.T) {
	res := Check([]string{"5-foo", "5-bar"})

	if got := Render(res, ModeFull, 4); !strings.Contains(got, "sequence 0005") {
		t.Errorf("width 4 render missing 'sequence 0005':\n%s", got)
	}
	if got := Render(res, ModeFull, 2); !strings.Contains(got, "sequence 05") {
		t.Errorf("width 2 render missing 'sequence 05':\n%s", got)
	}
}
