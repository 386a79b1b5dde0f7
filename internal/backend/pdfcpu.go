package backend

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rs/zerolog/log"
)

// Options configures the pdfcpu backend.
type Options struct {
	// WorkDir holds intermediate files while a multi-run output is merged.
	WorkDir string
	// Strict enables pdfcpu's strict validation mode.
	Strict bool
}

// PDFCPU implements Backend with github.com/pdfcpu/pdfcpu.
type PDFCPU struct {
	workDir string
	strict  bool
}

// NewPDFCPU creates the pdfcpu backend. pdfcpu's user config directory is
// disabled so runs never write outside the work dir.
func NewPDFCPU(opts Options) *PDFCPU {
	api.DisableConfigDir()
	dir := opts.WorkDir
	if dir == "" {
		dir = os.TempDir()
	}
	return &PDFCPU{workDir: dir, strict: opts.Strict}
}

func (b *PDFCPU) conf() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if b.strict {
		conf.ValidationMode = model.ValidationStrict
	}
	return conf
}

type pdfDoc struct {
	path string
	f    *os.File
	ctx  *model.Context
}

func (d *pdfDoc) Path() string   { return d.path }
func (d *pdfDoc) PageCount() int { return d.ctx.PageCount }
func (d *pdfDoc) Close() error   { return d.f.Close() }

// Open reads and validates the document at path.
func (b *PDFCPU) Open(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioErr("open", path, err)
	}
	ctx, err := api.ReadContext(f, b.conf())
	if err != nil {
		f.Close()
		return nil, formatErr("read", path, err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		f.Close()
		return nil, formatErr("validate", path, err)
	}
	log.Debug().Str("file", path).Int("pages", ctx.PageCount).Msg("opened source")
	return &pdfDoc{path: path, f: f, ctx: ctx}, nil
}

// Write assembles pages into a new document at outPath. Each run of pages
// from one source is extracted into its own file and rotated there; several
// runs are then merged in order.
func (b *PDFCPU) Write(outPath string, pages []Page) error {
	if len(pages) == 0 {
		return ioErr("write", outPath, errors.New("no pages to write"))
	}
	runs := Runs(pages)
	if len(runs) == 1 {
		return b.writeRun(runs[0], outPath)
	}

	work := filepath.Join(b.workDir, "pdfsplice-"+uuid.NewString())
	if err := os.Mkdir(work, 0o700); err != nil {
		return ioErr("mkdir", work, err)
	}
	defer os.RemoveAll(work)

	files := make([]string, 0, len(runs))
	for i, r := range runs {
		p := filepath.Join(work, fmt.Sprintf("run-%04d.pdf", i))
		if err := b.writeRun(r, p); err != nil {
			return err
		}
		files = append(files, p)
	}
	if err := api.MergeCreateFile(files, outPath, false, b.conf()); err != nil {
		return ioErr("merge", outPath, err)
	}
	log.Debug().Int("runs", len(runs)).Int("pages", len(pages)).Str("file", outPath).Msg("merged output")
	return nil
}

func (b *PDFCPU) writeRun(r Run, path string) error {
	d, ok := r.Doc.(*pdfDoc)
	if !ok {
		return formatErr("extract", r.Doc.Path(), fmt.Errorf("document %T was not opened by this backend", r.Doc))
	}
	ctx, err := pdfcpu.ExtractPages(d.ctx, r.PageNumbers(), false)
	if err != nil {
		return formatErr("extract", d.path, err)
	}
	if err := api.WriteContextFile(ctx, path); err != nil {
		return ioErr("write", path, err)
	}
	for rot, positions := range r.Rotations() {
		sel := make([]string, len(positions))
		for i, n := range positions {
			sel[i] = strconv.Itoa(n)
		}
		if err := api.RotateFile(path, "", rot, sel, b.conf()); err != nil {
			return formatErr("rotate", path, err)
		}
	}
	log.Debug().Str("source", d.path).Ints("pages", r.PageNumbers()).Msg("extracted run")
	return nil
}
