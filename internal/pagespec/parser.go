package pagespec

// state is the parser state carried from one token to the next.
type state struct {
	rotation Rotation
	mode     Mode
	requests []PageRequest
}

type parser struct {
	sourceID  int
	pageCount int
}

// ParseSection resolves the page-spec tokens given for one source into a
// Section. Page numbers in tokens are 1-based; pageCount is the number of
// pages in the source. If no page is requested, every page is used in order
// at the rotation in effect after the last token.
func ParseSection(sourceID int, tokens []string, pageCount int) (Section, error) {
	p := parser{sourceID: sourceID, pageCount: pageCount}

	st := state{}
	for _, raw := range tokens {
		tok, err := Classify(raw)
		if err != nil {
			return Section{}, err
		}
		st, err = p.step(st, tok)
		if err != nil {
			return Section{}, err
		}
	}

	if len(st.requests) == 0 {
		st.requests = p.appendAscending(nil, 1, pageCount, st.rotation)
	}
	return Section{SourceID: sourceID, Mode: st.mode, Requests: st.requests}, nil
}

func (p parser) step(st state, tok Token) (state, error) {
	switch tok.Kind {
	case KindMixOp:
		st.mode = tok.Mode
	case KindRotation:
		rot, err := NormalizeRotation(tok.Degrees)
		if err != nil {
			return st, invalidRotation(tok.Raw, "%d is not a multiple of 90 degrees", tok.Degrees)
		}
		st.rotation = rot
	case KindSinglePage:
		if err := p.check(tok.Raw, tok.Page); err != nil {
			return st, err
		}
		st.requests = append(st.requests, p.request(tok.Page, st.rotation))
	case KindPageRange:
		for _, t := range tok.Terms {
			var err error
			st.requests, err = p.expand(st.requests, tok.Raw, t, st.rotation)
			if err != nil {
				return st, err
			}
		}
	default:
		return st, unexpected(tok.Raw)
	}
	return st, nil
}

// expand appends the pages named by one range term. Bounds are clamped to
// the document; a start after the end walks the range backwards.
func (p parser) expand(reqs []PageRequest, raw string, t Term, rot Rotation) ([]PageRequest, error) {
	if t.Single {
		if err := p.check(raw, t.Start); err != nil {
			return reqs, err
		}
		return append(reqs, p.request(t.Start, rot)), nil
	}

	start, end := 1, p.pageCount
	if t.HasStart {
		start = max(1, t.Start)
	}
	if t.HasEnd {
		end = min(p.pageCount, t.End)
	}

	if err := p.check(raw, start); err != nil {
		return reqs, err
	}
	if err := p.check(raw, end); err != nil {
		return reqs, err
	}

	if end < start {
		for n := start; n >= end; n-- {
			reqs = append(reqs, p.request(n, rot))
		}
		return reqs, nil
	}
	return p.appendAscending(reqs, start, end, rot), nil
}

func (p parser) appendAscending(reqs []PageRequest, start, end int, rot Rotation) []PageRequest {
	for n := start; n <= end; n++ {
		reqs = append(reqs, p.request(n, rot))
	}
	return reqs
}

func (p parser) check(raw string, page int) error {
	if page < 1 || page > p.pageCount {
		return outOfRange(raw, page, p.pageCount)
	}
	return nil
}

func (p parser) request(page int, rot Rotation) PageRequest {
	return PageRequest{SourceID: p.sourceID, Index: page - 1, Rotation: rot}
}
