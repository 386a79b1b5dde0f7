package pagespec

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Kind identifies what a command-line token means inside a source section.
type Kind int

const (
	KindOther Kind = iota
	KindMixOp
	KindRotation
	KindSinglePage
	KindPageRange
)

func (k Kind) String() string {
	switch k {
	case KindMixOp:
		return "mix"
	case KindRotation:
		return "rotation"
	case KindSinglePage:
		return "page"
	case KindPageRange:
		return "range"
	}
	return "other"
}

// Term is one comma-separated part of a page range token. A Single term
// names exactly one page; otherwise a missing bound is open.
type Term struct {
	Single   bool
	Start    int
	End      int
	HasStart bool
	HasEnd   bool
}

// Token is a classified command-line token. Only the fields matching Kind
// are set.
type Token struct {
	Kind    Kind
	Raw     string
	Mode    Mode
	Degrees int
	Page    int
	Terms   []Term
}

var (
	rotationRe = regexp.MustCompile(`^R([+-]?\d*)$`)
	pageRe     = regexp.MustCompile(`^\d+$`)
	rangeRe    = regexp.MustCompile(`^(\d*)-(\d*)$`)
)

// Classify tries, in order, mix op, rotation, single page and page range;
// the first match wins and anything else is KindOther. The only failure is a
// rotation directive without a usable number.
func Classify(raw string) (Token, error) {
	tok := Token{Kind: KindOther, Raw: raw}

	switch raw {
	case "=":
		tok.Kind, tok.Mode = KindMixOp, Interleave
		return tok, nil
	case "+":
		tok.Kind, tok.Mode = KindMixOp, Append
		return tok, nil
	}

	if m := rotationRe.FindStringSubmatch(raw); m != nil {
		digits := strings.TrimLeft(m[1], "+-")
		if digits == "" {
			return tok, invalidRotation(raw, "missing degrees in %q", raw)
		}
		deg, err := strconv.Atoi(m[1])
		if err != nil {
			return tok, invalidRotation(raw, "%q is not an integer", m[1])
		}
		tok.Kind, tok.Degrees = KindRotation, deg
		return tok, nil
	}

	if pageRe.MatchString(raw) {
		tok.Kind, tok.Page = KindSinglePage, atoiSat(raw)
		return tok, nil
	}

	if terms, ok := parseTerms(raw); ok {
		tok.Kind, tok.Terms = KindPageRange, terms
		return tok, nil
	}

	return tok, nil
}

func parseTerms(raw string) ([]Term, bool) {
	parts := strings.Split(raw, ",")
	terms := make([]Term, 0, len(parts))
	for _, p := range parts {
		if pageRe.MatchString(p) {
			n := atoiSat(p)
			terms = append(terms, Term{Single: true, Start: n, End: n, HasStart: true, HasEnd: true})
			continue
		}
		m := rangeRe.FindStringSubmatch(p)
		if m == nil {
			return nil, false
		}
		t := Term{}
		if m[1] != "" {
			t.Start, t.HasStart = atoiSat(m[1]), true
		}
		if m[2] != "" {
			t.End, t.HasEnd = atoiSat(m[2]), true
		}
		terms = append(terms, t)
	}
	return terms, true
}

// atoiSat converts a digit string, saturating at math.MaxInt so that huge
// page numbers are reported as out of range rather than malformed.
func atoiSat(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return math.MaxInt
		}
		return 0
	}
	return n
}
