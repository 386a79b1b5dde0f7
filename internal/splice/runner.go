package splice

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/local/pdfsplice/internal/backend"
	"github.com/local/pdfsplice/internal/pagespec"
	"github.com/local/pdfsplice/internal/verify"
)

// Resolver locates sources and publishes the output. See source.Resolver.
type Resolver interface {
	Prober
	Fetch(ctx context.Context, ref string) (string, error)
	CheckOutput(ref string) error
	OutputTemp(ref string) (string, error)
	Publish(ctx context.Context, tmpPath, ref string) error
	Cleanup()
}

// Sniffer rejects files that are not PDFs before the backend parses them.
type Sniffer interface {
	RequirePDF(path string) error
}

// Verifier checks a written document before it is published.
type Verifier interface {
	Check(path string, wantPages int) (*verify.Report, error)
}

// Runner executes invocations. Sniffer and Verifier are optional.
type Runner struct {
	Resolver Resolver
	Backend  backend.Backend
	Sniffer  Sniffer
	Verifier Verifier
	// Out receives the dry-run plan.
	Out io.Writer
}

// Result summarises a run, including a failed one as far as it got.
type Result struct {
	Output  string
	Sources int
	Pages   int
	DryRun  bool
}

// Run assembles the output described by inv. Nothing is written to
// inv.Output unless every source parses and the backend succeeds.
func (r *Runner) Run(ctx context.Context, inv Invocation) (Result, error) {
	res := Result{Output: inv.Output, DryRun: inv.DryRun}
	defer r.Resolver.Cleanup()

	log.Info().Str("output", inv.Output).Bool("dry_run", inv.DryRun).Msg("generating")
	if !inv.DryRun {
		if err := r.Resolver.CheckOutput(inv.Output); err != nil {
			return res, err
		}
	}

	raw, err := SplitSections(ctx, inv.Tokens, r.Resolver)
	if err != nil {
		return res, err
	}
	spread, err := wantsSpreadFix(raw)
	if err != nil {
		return res, err
	}
	res.Sources = len(raw)

	var docs []backend.Document
	defer func() {
		for _, d := range docs {
			if err := d.Close(); err != nil {
				log.Warn().Err(err).Str("file", d.Path()).Msg("close source failed")
			}
		}
	}()

	sections := make([]pagespec.Section, 0, len(raw))
	for i, s := range raw {
		doc, err := r.open(ctx, s.Source)
		if err != nil {
			return res, err
		}
		docs = append(docs, doc)

		tokens := s.Tokens
		if spread {
			tokens, err = pagespec.SpreadFix(doc.PageCount())
			if err != nil {
				return res, fmt.Errorf("%s: %w", s.Source, err)
			}
			log.Info().Str("source", s.Source).Strs("tokens", tokens).Msg("spread fix")
		}

		sec, err := pagespec.ParseSection(i, tokens, doc.PageCount())
		if err != nil {
			return res, fmt.Errorf("%s: %w", s.Source, err)
		}
		ev := log.Info().Str("source", s.Source).Int("pages", doc.PageCount()).
			Stringer("mode", sec.Mode).Int("selected", len(sec.Requests))
		if len(s.Tokens) == 0 {
			ev.Msg("input file, no pages specified, using all pages")
		} else {
			ev.Msg("input file")
		}
		sections = append(sections, sec)
	}

	seq := pagespec.Sequence(sections)
	res.Pages = len(seq)

	if inv.DryRun {
		return res, r.printPlan(raw, seq)
	}
	return res, r.write(ctx, inv.Output, docs, seq)
}

func (r *Runner) open(ctx context.Context, ref string) (backend.Document, error) {
	path, err := r.Resolver.Fetch(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", ref, err)
	}
	if r.Sniffer != nil {
		if err := r.Sniffer.RequirePDF(path); err != nil {
			return nil, fmt.Errorf("%s: %w", ref, err)
		}
	}
	return r.Backend.Open(path)
}

func (r *Runner) write(ctx context.Context, output string, docs []backend.Document, seq []pagespec.PageRequest) error {
	pages := make([]backend.Page, len(seq))
	for i, req := range seq {
		pages[i] = backend.Page{Doc: docs[req.SourceID], Index: req.Index, Rotation: int(req.Rotation)}
	}

	tmp, err := r.Resolver.OutputTemp(output)
	if err != nil {
		return err
	}
	if err := r.Backend.Write(tmp, pages); err != nil {
		return err
	}
	if r.Verifier != nil {
		rep, err := r.Verifier.Check(tmp, len(pages))
		if err != nil {
			return err
		}
		log.Debug().Int("pages", rep.TotalPages).Int("probes", len(rep.Probes)).Msg("output verified")
	}
	if err := r.Resolver.Publish(ctx, tmp, output); err != nil {
		return err
	}
	log.Info().Str("output", output).Int("pages", len(pages)).Int("sources", len(docs)).Msg("written")
	return nil
}

func (r *Runner) printPlan(raw []RawSection, seq []pagespec.PageRequest) error {
	w := r.Out
	if w == nil {
		w = os.Stdout
	}
	for i, req := range seq {
		if _, err := fmt.Fprintf(w, "%d %s page %d rot %d\n", i+1, raw[req.SourceID].Source, req.Index+1, req.Rotation); err != nil {
			return err
		}
	}
	return nil
}
