package splice

import (
	"context"
	"strings"
)

// SpreadFixToken requests booklet spread reordering for a single source.
const SpreadFixToken = "spreadfix"

// Prober reports whether a command-line token names an existing source
// document. It is the only impure step of sectioning.
type Prober interface {
	Exists(ctx context.Context, ref string) bool
}

// RawSection is one source reference with the tokens that follow it.
type RawSection struct {
	Source string
	Tokens []string
}

// SplitSections divides tokens into sections. The first token must name an
// existing source; every later token that does starts a new section.
func SplitSections(ctx context.Context, tokens []string, p Prober) ([]RawSection, error) {
	if len(tokens) == 0 {
		return nil, usagef("no input file given")
	}
	if !p.Exists(ctx, tokens[0]) {
		return nil, missingInput(tokens[0])
	}

	var sections []RawSection
	for _, tok := range tokens {
		if len(sections) == 0 || p.Exists(ctx, tok) {
			sections = append(sections, RawSection{Source: tok})
			continue
		}
		cur := &sections[len(sections)-1]
		cur.Tokens = append(cur.Tokens, tok)
	}
	return sections, nil
}

// wantsSpreadFix reports whether the sections request spread-fix mode, which
// is only valid as the sole page token of a single-source invocation.
func wantsSpreadFix(sections []RawSection) (bool, error) {
	found := false
	for _, s := range sections {
		for _, t := range s.Tokens {
			if strings.EqualFold(t, SpreadFixToken) {
				found = true
			}
		}
	}
	if !found {
		return false, nil
	}
	if len(sections) != 1 || len(sections[0].Tokens) != 1 {
		return false, usagef("%s must be the only page token of a single input file", SpreadFixToken)
	}
	return true, nil
}
