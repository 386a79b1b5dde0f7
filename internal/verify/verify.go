package verify

import (
	"errors"
	"fmt"
	"image"
	"sort"
	"time"
)

// ErrMismatch is returned when a written document does not look like the
// one that was requested.
var ErrMismatch = errors.New("output verification failed")

// PageProbe captures the result of probing a single output page.
type PageProbe struct {
	PageIndex int    `json:"page_index"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Err       string `json:"err,omitempty"`
}

// Report describes one verification run.
type Report struct {
	FilePath   string      `json:"file_path"`
	TotalPages int         `json:"total_pages"`
	WantPages  int         `json:"want_pages"`
	Probes     []PageProbe `json:"probes"`
	DurationMs int64       `json:"duration_ms"`
}

// Doc abstracts an opened PDF for verification.
type Doc interface {
	NumPage() int
	Bound(i int) (image.Rectangle, error)
	Close() error
}

// Opener abstracts opening a PDF path into a Doc.
type Opener interface {
	Open(path string) (Doc, error)
}

// defaultOpener is provided in doc_open_fitz.go using go-fitz.
var defaultOpener Opener

func setDefaultOpener(o Opener) { defaultOpener = o }

// Verifier reopens written documents with an independent PDF engine.
type Verifier struct {
	opener Opener
}

// New returns a Verifier using the default MuPDF opener.
func New() *Verifier { return &Verifier{opener: defaultOpener} }

// NewWithOpener returns a Verifier using o.
func NewWithOpener(o Opener) *Verifier { return &Verifier{opener: o} }

// Check opens path, requires exactly wantPages pages and probes a sample of
// them for a non-empty page box.
func (v *Verifier) Check(path string, wantPages int) (*Report, error) {
	if v.opener == nil {
		return nil, errors.New("no PDF opener configured")
	}

	start := time.Now()
	d, err := v.opener.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reopen %s: %v", ErrMismatch, path, err)
	}
	defer d.Close()

	rep := &Report{FilePath: path, TotalPages: d.NumPage(), WantPages: wantPages}
	defer func() { rep.DurationMs = time.Since(start).Milliseconds() }()

	if rep.TotalPages != wantPages {
		return rep, fmt.Errorf("%w: %s has %d pages, want %d", ErrMismatch, path, rep.TotalPages, wantPages)
	}

	for _, idx := range sampleIndices(rep.TotalPages) {
		probe := PageProbe{PageIndex: idx}
		r, err := d.Bound(idx)
		if err != nil {
			probe.Err = err.Error()
		} else {
			probe.Width, probe.Height = r.Dx(), r.Dy()
		}
		rep.Probes = append(rep.Probes, probe)
		if err != nil || r.Empty() {
			return rep, fmt.Errorf("%w: page %d of %s is unreadable", ErrMismatch, idx+1, path)
		}
	}
	return rep, nil
}

// sampleIndices picks up to five pages: all of them for short documents,
// else first, last and three evenly spaced ones in between.
func sampleIndices(total int) []int {
	if total <= 0 {
		return []int{}
	}
	if total <= 5 {
		idx := make([]int, total)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}

	base := map[int]struct{}{}
	for i := 0; i < 5; i++ {
		base[i*(total-1)/4] = struct{}{}
	}
	out := make([]int, 0, len(base))
	for i := range base {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
