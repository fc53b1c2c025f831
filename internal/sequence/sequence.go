// Package sequence parses spec folder names against the corpus naming
// grammar and detects sequence-number collisions across differently-named
// folders. Everything here is read-only and side-effect free: callers get
// a report, never a mutation.
package sequence

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// identifierPattern is the naming grammar:
//
//	[YYYYMMDD-] [prefix-] <sequence> - <name>
//
// An optional 8-digit date prefix, an optional non-numeric prefix token
// (e.g. "spec-"), a required numeric sequence segment, then a dash and a
// name segment. The name segment is validated separately: it must contain
// at least one non-digit rune, so "001-123" does not parse as sequence 001
// with name "123". "001test" has no separator and does not match at all.
var identifierPattern = regexp.MustCompile(`^(?:\d{8}-)?(?:\D.*?-)?(\d+)-(.+)$`)

// Parsed is the decomposition of an identifier that matched the grammar.
type Parsed struct {
	// ID is the full identifier as given.
	ID string
	// Number is the sequence number as an integer (leading zeros dropped).
	Number int
	// Digits is the sequence segment as typed, zeros included ("001").
	Digits string
	// Name is the trailing name segment.
	Name string
}

// Parse decomposes an identifier against the naming grammar.
// The second return is false when the identifier does not follow it;
// such identifiers simply do not participate in sequence indexing.
func Parse(id string) (Parsed, bool) {
	m := identifierPattern.FindStringSubmatch(id)
	if m == nil {
		return Parsed{}, false
	}
	name := m[2]
	if !strings.ContainsFunc(name, func(r rune) bool { return !unicode.IsDigit(r) }) {
		// All-digit name segments are ambiguous ("001-123") — reject.
		return Parsed{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		// Sequence segment too large for an int. Treat as non-matching.
		return Parsed{}, false
	}
	return Parsed{ID: id, Number: n, Digits: m[1], Name: name}, true
}

// Number returns just the parsed sequence number, or nil for identifiers
// outside the grammar. Convenience for record loading.
func Number(id string) *int {
	p, ok := Parse(id)
	if !ok {
		return nil
	}
	n := p.Number
	return &n
}

// Index maps a sequence number to the identifiers that parse to it,
// in insertion order.
type Index map[int][]string

// BuildIndex groups identifiers by parsed sequence number. Identifiers
// that do not follow the grammar are skipped. Build this once per batch
// operation over the corpus, not once per record queried.
func BuildIndex(ids []string) Index {
	ix := make(Index)
	for _, id := range ids {
		if p, ok := Parse(id); ok {
			ix[p.Number] = append(ix[p.Number], id)
		}
	}
	return ix
}

// Conflict is a sequence number claimed by two or more identifiers.
type Conflict struct {
	Number  int      `json:"sequence"`
	Members []string `json:"members"`
}

// Conflicts returns every group with two or more members, ordered by
// sequence number so repeated runs over the same corpus render identically.
func (ix Index) Conflicts() []Conflict {
	var out []Conflict
	for n, members := range ix {
		if len(members) >= 2 {
			out = append(out, Conflict{Number: n, Members: members})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}
