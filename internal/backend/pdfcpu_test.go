package backend

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// testPage describes one page of a generated source document. Width tags
// the page so it can be recognised in the output.
type testPage struct {
	Width  int
	Rotate int
}

// writeTestPDF writes a minimal uncompressed PDF with one empty page per
// entry of pages.
func writeTestPDF(t *testing.T, path string, pages []testPage) {
	t.Helper()
	var objs []string
	objs = append(objs, "<< /Type /Catalog /Pages 2 0 R >>")
	kids := ""
	for i := range pages {
		kids += fmt.Sprintf("%d 0 R ", i+3)
	}
	objs = append(objs, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids, len(pages)))
	for _, p := range pages {
		rot := ""
		if p.Rotate != 0 {
			rot = fmt.Sprintf(" /Rotate %d", p.Rotate)
		}
		objs = append(objs, fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d 200] /Resources << >>%s >>", p.Width, rot))
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func widths(from, n int) []testPage {
	pages := make([]testPage, n)
	for i := range pages {
		pages[i] = testPage{Width: from + i}
	}
	return pages
}

// describe reopens path and returns "w<width> r<rotate>" for every page.
func describe(t *testing.T, b *PDFCPU, path string) []string {
	t.Helper()
	doc, err := b.Open(path)
	if err != nil {
		t.Fatalf("reopen %s: %v", path, err)
	}
	defer doc.Close()
	d := doc.(*pdfDoc)

	var out []string
	for nr := 1; nr <= d.PageCount(); nr++ {
		pd, _, inh, err := d.ctx.PageDict(nr, false)
		if err != nil {
			t.Fatalf("page %d: %v", nr, err)
		}
		if inh == nil || inh.MediaBox == nil {
			t.Fatalf("page %d has no media box", nr)
		}
		rot := 0
		if r := pd.IntEntry("Rotate"); r != nil {
			rot = *r
		}
		out = append(out, fmt.Sprintf("w%d r%d", int(inh.MediaBox.Width()), rot))
	}
	return out
}

func TestPDFCPUWrite(t *testing.T) {
	dir := t.TempDir()
	b := NewPDFCPU(Options{WorkDir: dir})

	aPath := filepath.Join(dir, "a.pdf")
	writeTestPDF(t, aPath, widths(101, 5))
	cPages := widths(301, 3)
	cPages[1].Rotate = 90
	cPath := filepath.Join(dir, "c.pdf")
	writeTestPDF(t, cPath, cPages)

	a, err := b.Open(aPath)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	c, err := b.Open(cPath)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	if a.PageCount() != 5 || c.PageCount() != 3 {
		t.Fatalf("page counts = %d, %d", a.PageCount(), c.PageCount())
	}

	tests := []struct {
		name  string
		pages []Page
		want  []string
	}{
		{
			name: "reversed run with mixed rotations",
			pages: []Page{
				{Doc: a, Index: 4, Rotation: 90},
				{Doc: a, Index: 3},
				{Doc: a, Index: 2, Rotation: 270},
				{Doc: a, Index: 1},
				{Doc: a, Index: 0, Rotation: 180},
			},
			want: []string{"w105 r90", "w104 r0", "w103 r270", "w102 r0", "w101 r180"},
		},
		{
			name: "interleaved sources",
			pages: []Page{
				{Doc: a, Index: 0}, {Doc: c, Index: 0, Rotation: 90},
				{Doc: a, Index: 1}, {Doc: c, Index: 2, Rotation: 90},
				{Doc: a, Index: 2}, {Doc: c, Index: 0, Rotation: 270},
			},
			want: []string{"w101 r0", "w301 r90", "w102 r0", "w303 r90", "w103 r0", "w301 r270"},
		},
		{
			name: "rotation adds to existing rotation",
			pages: []Page{
				{Doc: c, Index: 1, Rotation: 90},
				{Doc: c, Index: 1},
			},
			want: []string{"w302 r180", "w302 r90"},
		},
		{
			name: "repeated page",
			pages: []Page{
				{Doc: a, Index: 0},
				{Doc: a, Index: 0, Rotation: 90},
			},
			want: []string{"w101 r0", "w101 r90"},
		},
	}
	for i, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := filepath.Join(dir, fmt.Sprintf("out-%d.pdf", i))
			if err := b.Write(out, tc.pages); err != nil {
				t.Fatalf("Write: %v", err)
			}
			if diff := cmp.Diff(tc.want, describe(t, b, out)); diff != "" {
				t.Errorf("output pages mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPDFCPUWriteLeavesNoWorkFiles(t *testing.T) {
	dir := t.TempDir()
	work := t.TempDir()
	b := NewPDFCPU(Options{WorkDir: work})

	src := filepath.Join(dir, "a.pdf")
	writeTestPDF(t, src, widths(101, 2))
	a, err := b.Open(src)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	pages := []Page{{Doc: a, Index: 1}, {Doc: a, Index: 0}, {Doc: a, Index: 0}}
	if err := b.Write(filepath.Join(dir, "out.pdf"), pages); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(work)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("work dir not cleaned: %v", entries)
	}
}
