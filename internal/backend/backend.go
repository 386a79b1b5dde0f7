package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrIO marks failures reading or writing files.
	ErrIO = errors.New("i/o error")
	// ErrFormat marks documents that cannot be parsed as PDF.
	ErrFormat = errors.New("format error")
)

// Error is returned by every Backend operation.
type Error struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the underlying cause to errors.Is/As.
func (e *Error) Unwrap() []error { return []error{e.Kind, e.Err} }

func ioErr(op, path string, err error) error {
	return &Error{Op: op, Path: path, Kind: ErrIO, Err: err}
}

func formatErr(op, path string, err error) error {
	return &Error{Op: op, Path: path, Kind: ErrFormat, Err: err}
}

// Document is an opened source document.
type Document interface {
	Path() string
	PageCount() int
	Close() error
}

// Page selects one page of an opened Document for output. Index is 0-based;
// Rotation is clockwise degrees added to the page's existing rotation.
type Page struct {
	Doc      Document
	Index    int
	Rotation int
}

// Backend reads source documents and writes assembled ones.
type Backend interface {
	Open(path string) (Document, error)
	Write(outPath string, pages []Page) error
}

// Run is a stretch of consecutive output pages taken from one document.
type Run struct {
	Doc   Document
	Pages []Page
}

// Runs splits pages into maximal runs from the same document. A page that
// already occurs in the current run starts a new one, so a run never holds
// the same source page twice.
func Runs(pages []Page) []Run {
	var runs []Run
	var seen map[int]bool
	for _, p := range pages {
		if n := len(runs); n > 0 && runs[n-1].Doc == p.Doc && !seen[p.Index] {
			runs[n-1].Pages = append(runs[n-1].Pages, p)
			seen[p.Index] = true
			continue
		}
		runs = append(runs, Run{Doc: p.Doc, Pages: []Page{p}})
		seen = map[int]bool{p.Index: true}
	}
	return runs
}

// PageNumbers returns the 1-based source page numbers of the run.
func (r Run) PageNumbers() []int {
	nrs := make([]int, len(r.Pages))
	for i, p := range r.Pages {
		nrs[i] = p.Index + 1
	}
	return nrs
}

// Rotations groups the run's positions (1-based, within the run) by the
// rotation to apply. Unrotated pages are left out.
func (r Run) Rotations() map[int][]int {
	out := map[int][]int{}
	for i, p := range r.Pages {
		if p.Rotation%360 == 0 {
			continue
		}
		out[p.Rotation] = append(out[p.Rotation], i+1)
	}
	return out
}
