package integrity

import (
	"fmt"
	"regexp"
	"strings"
)

// Structural corruption checks for document bodies. Two independent
// scans: fence balance over the whole document, and emphasis balance
// restricted to text outside fenced code blocks.
//
// Deliberately not checked: the syntax of embedded code examples (specs
// often demonstrate intentionally invalid input) and duplicated content
// blocks (too noisy to be a reliable corruption signal). The emphasis
// heuristic is approximate — a lone "*" is ambiguous between literal text
// and markup — so treat its findings as advisory-strength signals.

var (
	// listMarker matches a leading bullet ("-", "*", or "+" plus
	// whitespace) so bullets are not miscounted as emphasis.
	listMarker = regexp.MustCompile(`^\s*[-*+]\s+`)
	// inlineCode matches a single-backtick span on one line; such spans
	// may legitimately contain unmatched asterisks.
	inlineCode = regexp.MustCompile("`[^`]*`")
)

// ValidateBody runs both corruption checks over a document body and
// accumulates every finding into one report. It never fails outright:
// malformed input produces findings, not errors.
func ValidateBody(body string) *Report {
	r := NewReport()
	checkFences(body, r)
	checkEmphasis(body, r)
	return r
}

// checkFences toggles an in-fence flag on every triple-backtick marker
// line. A flag still set at end of document means an unterminated fence;
// the error cites the line where it began.
func checkFences(body string, r *Report) {
	inFence := false
	openedAt := 0

	for i, line := range strings.Split(body, "\n") {
		if !isFenceMarker(line) {
			continue
		}
		if inFence {
			inFence = false
		} else {
			inFence = true
			openedAt = i + 1
		}
	}

	if inFence {
		r.AddError(Finding{
			Message: fmt.Sprintf("unterminated code fence opened at line %d", openedAt),
			Line:    openedAt,
			Hint:    "add a closing ``` line",
		})
	}
}

// checkEmphasis counts bold and italic markers in the text outside fenced
// code blocks. Both counts must be even; each imbalance gets its own
// specifically-worded error.
func checkEmphasis(body string, r *Report) {
	var outside []string
	inFence := false
	for _, line := range strings.Split(body, "\n") {
		if isFenceMarker(line) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		line = listMarker.ReplaceAllString(line, "")
		line = inlineCode.ReplaceAllString(line, "")
		outside = append(outside, line)
	}

	text := strings.Join(outside, "\n")

	bold := strings.Count(text, "**")
	if bold%2 != 0 {
		r.AddError(Finding{
			Message: fmt.Sprintf("unbalanced bold markers: %d occurrences of \"**\" outside code blocks", bold),
			Hint:    "every bold span needs an opening and a closing **",
		})
	}

	italic := strings.Count(strings.ReplaceAll(text, "**", ""), "*")
	if italic%2 != 0 {
		r.AddError(Finding{
			Message: fmt.Sprintf("unbalanced italic markers: %d occurrences of \"*\" outside code blocks", italic),
			Hint:    "every italic span needs an opening and a closing *",
		})
	}
}

func isFenceMarker(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "```")
}
