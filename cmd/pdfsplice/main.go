package main

import (
    "context"
    "errors"
    "fmt"
    "net/http"
    "os"
    "os/signal"
    "path/filepath"
    "strings"
    "syscall"
    "time"

    "github.com/google/uuid"
    "github.com/rs/zerolog/log"

    "github.com/local/pdfsplice/internal/backend"
    cfgpkg "github.com/local/pdfsplice/internal/config"
    "github.com/local/pdfsplice/internal/filetype"
    logpkg "github.com/local/pdfsplice/internal/logger"
    "github.com/local/pdfsplice/internal/metrics"
    "github.com/local/pdfsplice/internal/source"
    "github.com/local/pdfsplice/internal/splice"
    "github.com/local/pdfsplice/internal/storage"
    "github.com/local/pdfsplice/internal/verify"
)

// staleTempAge is how old a leftover temp file must be before startup removes it.
const staleTempAge = 24 * time.Hour

func main() {
    os.Exit(run())
}

func run() int {
    prog := filepath.Base(os.Args[0])
    inv, err := splice.ParseInvocation(os.Args[1:])
    if err != nil {
        var usage *splice.UsageError
        if errors.As(err, &usage) && usage.Message != "" {
            fmt.Fprintf(os.Stderr, "%s: %s\n\n", prog, usage.Message)
        }
        fmt.Fprint(os.Stderr, splice.Usage(prog))
        return splice.ExitCode(err)
    }

    if err := cfgpkg.LoadDotEnv(); err != nil {
        fmt.Fprintf(os.Stderr, "%s: %v\n", prog, err)
    }
    cfg := cfgpkg.FromEnv()
    if inv.Verbose {
        cfg.Logging.Level = "debug"
    }

    // Init logging
    _ = logpkg.Init(logpkg.Options{
        Level:        cfg.Logging.Level,
        Pretty:       cfg.Logging.Pretty,
        File:         cfg.Logging.File,
        MaxSizeMB:    cfg.Logging.MaxSizeMB,
        MaxBackups:   cfg.Logging.MaxBackups,
        MaxAgeDays:   cfg.Logging.MaxAgeDays,
        Compress:     cfg.Logging.Compress,
        RunID:        uuid.NewString(),
        SendToAxiom:  cfg.Axiom.Send && cfg.Axiom.APIKey != "",
        AxiomAPIKey:  cfg.Axiom.APIKey,
        AxiomOrgID:   cfg.Axiom.OrgID,
        AxiomDataset: cfg.Axiom.Dataset,
        AxiomFlush:   cfg.Axiom.FlushInterval,
    })
    defer logpkg.Close()

    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()

    if n := source.CleanupStale(cfg.Splice.TempDir, staleTempAge); n > 0 {
        log.Info().Int("files", n).Str("dir", cfg.Splice.TempDir).Msg("removed stale temp files")
    }

    opts := source.Options{
        HTTPClient: &http.Client{Timeout: cfg.Splice.HTTPTimeout},
        TempDir:    cfg.Splice.TempDir,
    }
    // S3 client only when a reference needs it
    if usesS3(inv) {
        s3c, err := storage.NewS3Client(ctx, cfg.S3)
        if err != nil {
            log.Warn().Err(err).Msg("s3 unavailable, s3:// references will not resolve")
        } else {
            opts.Store = s3c
        }
    }

    runner := &splice.Runner{
        Resolver: source.NewResolver(opts),
        Backend:  backend.NewPDFCPU(backend.Options{WorkDir: cfg.Splice.TempDir, Strict: cfg.Splice.StrictPDF}),
        Sniffer:  filetype.New(),
        Out:      os.Stdout,
    }
    if cfg.Splice.VerifyOutput {
        runner.Verifier = verify.New()
    }

    start := time.Now()
    res, err := runner.Run(ctx, inv)
    code := splice.ExitCode(err)

    written := 0
    if err == nil && !res.DryRun {
        written = res.Pages
    }
    rec := metrics.New()
    rec.ObserveRun(splice.Outcome(err), res.Sources, written, time.Since(start))
    if werr := rec.WriteTextfile(cfg.Splice.MetricsTextfile); werr != nil {
        log.Warn().Err(werr).Str("file", cfg.Splice.MetricsTextfile).Msg("metrics textfile not written")
    }

    if err != nil {
        log.Error().Err(err).Int("exit_code", code).Msg("splice failed")
        fmt.Fprintf(os.Stderr, "%s: %v\n", prog, err)
        return code
    }
    log.Info().Str("output", res.Output).Int("pages", res.Pages).Dur("took", time.Since(start)).Msg("done")
    return splice.ExitSuccess
}

func usesS3(inv splice.Invocation) bool {
    if strings.HasPrefix(inv.Output, "s3://") {
        return true
    }
    for _, t := range inv.Tokens {
        if strings.HasPrefix(t, "s3://") {
            return true
        }
    }
    return false
}
