package pagespec

// Sequence merges sections, in order, into the final page order.
//
// An Append section is added to the end. An Interleave section has its i-th
// page inserted at position 1+2i of the output built so far, which pairs a
// back-side scan with the front-side pages already present. Positions past
// the end of the output append instead.
func Sequence(sections []Section) []PageRequest {
	total := 0
	for _, s := range sections {
		total += len(s.Requests)
	}

	out := make([]PageRequest, 0, total)
	for _, s := range sections {
		switch s.Mode {
		case Interleave:
			out = interleave(out, s.Requests)
		default:
			out = append(out, s.Requests...)
		}
	}
	return out
}

func interleave(out, reqs []PageRequest) []PageRequest {
	pos := 1
	for _, r := range reqs {
		if pos >= len(out) {
			out = append(out, r)
		} else {
			out = append(out, PageRequest{})
			copy(out[pos+1:], out[pos:])
			out[pos] = r
		}
		pos += 2
	}
	return out
}
