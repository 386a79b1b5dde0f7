package source

import (
    "context"
    "errors"
    "fmt"
    "io"
    "net/http"
    "os"
    "path/filepath"
    "strings"
    "time"

    "github.com/rs/zerolog/log"

    "github.com/local/pdfsplice/internal/storage"
)

// TempPrefix marks temp files created by pdfsplice.
const TempPrefix = "pdfsplice-"

// ErrUnsupportedOutput is returned for output references that cannot be written.
var ErrUnsupportedOutput = errors.New("unsupported output location")

// ObjectStore is the subset of the S3 client the resolver needs.
type ObjectStore interface {
    Exists(ctx context.Context, bucket, key string) (bool, error)
    Download(ctx context.Context, bucket, key string, w io.WriterAt) (int64, error)
    Upload(ctx context.Context, bucket, key string, body io.Reader) error
}

// Options configures a Resolver.
type Options struct {
    // Store serves s3:// references; nil disables them.
    Store      ObjectStore
    HTTPClient *http.Client
    TempDir    string
}

// Resolver turns source and output references into local files.
// Supported references:
// - file://path or plain filesystem paths
// - http(s):// URLs (downloaded to temp)
// - s3://bucket/key (downloaded to temp, outputs uploaded)
type Resolver struct {
    store   ObjectStore
    http    *http.Client
    tempDir string
    temps   []string
}

// NewResolver creates a Resolver.
func NewResolver(opts Options) *Resolver {
    client := opts.HTTPClient
    if client == nil { client = &http.Client{Timeout: 60 * time.Second} }
    dir := opts.TempDir
    if dir == "" { dir = os.TempDir() }
    return &Resolver{store: opts.Store, http: client, tempDir: dir}
}

type refKind int

const (
    kindLocal refKind = iota
    kindHTTP
    kindS3
)

func classify(ref string) (refKind, string) {
    switch {
    case strings.HasPrefix(ref, "s3://"):
        return kindS3, ref
    case strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://"):
        return kindHTTP, ref
    case strings.HasPrefix(ref, "file://"):
        return kindLocal, strings.TrimPrefix(ref, "file://")
    default:
        return kindLocal, ref
    }
}

// Exists reports whether ref names an existing source document. It is the
// only place where command-line tokens touch the filesystem or network.
func (r *Resolver) Exists(ctx context.Context, ref string) bool {
    kind, target := classify(ref)
    switch kind {
    case kindS3:
        if r.store == nil { return false }
        bucket, key, err := storage.ParseURL(target)
        if err != nil { return false }
        ok, err := r.store.Exists(ctx, bucket, key)
        if err != nil {
            log.Warn().Err(err).Str("ref", ref).Msg("s3 probe failed")
            return false
        }
        return ok
    case kindHTTP:
        req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
        if err != nil { return false }
        resp, err := r.http.Do(req)
        if err != nil {
            log.Warn().Err(err).Str("ref", ref).Msg("http probe failed")
            return false
        }
        resp.Body.Close()
        return resp.StatusCode == http.StatusOK
    default:
        fi, err := os.Stat(target)
        return err == nil && fi.Mode().IsRegular()
    }
}

// Fetch returns a local path for ref, downloading remote documents to
// temp files that are removed by Cleanup.
func (r *Resolver) Fetch(ctx context.Context, ref string) (string, error) {
    kind, target := classify(ref)
    switch kind {
    case kindS3:
        return r.fetchS3(ctx, target)
    case kindHTTP:
        return r.fetchHTTP(ctx, target)
    default:
        return target, nil
    }
}

func (r *Resolver) fetchHTTP(ctx context.Context, url string) (string, error) {
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
    if err != nil { return "", err }
    resp, err := r.http.Do(req)
    if err != nil { return "", err }
    defer resp.Body.Close()
    if resp.StatusCode != http.StatusOK { return "", fmt.Errorf("GET %s: http %d", url, resp.StatusCode) }
    f, err := r.createTemp(r.tempDir)
    if err != nil { return "", err }
    defer f.Close()
    if _, err := io.Copy(f, resp.Body); err != nil { return "", fmt.Errorf("download %s: %w", url, err) }
    log.Debug().Str("url", url).Str("file", filepath.Base(f.Name())).Msg("downloaded http source to temp")
    return f.Name(), nil
}

func (r *Resolver) fetchS3(ctx context.Context, s3url string) (string, error) {
    if r.store == nil { return "", fmt.Errorf("s3 sources are not configured: %s", s3url) }
    bucket, key, err := storage.ParseURL(s3url)
    if err != nil { return "", err }
    f, err := r.createTemp(r.tempDir)
    if err != nil { return "", err }
    defer f.Close()
    if _, err := r.store.Download(ctx, bucket, key, f); err != nil { return "", err }
    return f.Name(), nil
}

// CheckOutput rejects output references that Publish cannot handle.
func (r *Resolver) CheckOutput(ref string) error {
    kind, target := classify(ref)
    switch kind {
    case kindHTTP:
        return fmt.Errorf("%w: %s", ErrUnsupportedOutput, ref)
    case kindS3:
        if r.store == nil { return fmt.Errorf("%w: s3 is not configured", ErrUnsupportedOutput) }
        _, _, err := storage.ParseURL(target)
        return err
    }
    if fi, err := os.Stat(target); err == nil && fi.IsDir() {
        return fmt.Errorf("%w: %s is a directory", ErrUnsupportedOutput, target)
    }
    return nil
}

// OutputTemp returns an empty temp file to build the output in. For local
// outputs it lives next to the destination so Publish can rename it.
func (r *Resolver) OutputTemp(ref string) (string, error) {
    dir := r.tempDir
    if kind, target := classify(ref); kind == kindLocal {
        dir = filepath.Dir(target)
    }
    f, err := r.createTemp(dir)
    if err != nil { return "", err }
    name := f.Name()
    if err := f.Close(); err != nil { return "", err }
    return name, nil
}

// Publish moves the finished document at tmpPath to ref.
func (r *Resolver) Publish(ctx context.Context, tmpPath, ref string) error {
    kind, target := classify(ref)
    switch kind {
    case kindS3:
        bucket, key, err := storage.ParseURL(target)
        if err != nil { return err }
        f, err := os.Open(tmpPath)
        if err != nil { return err }
        defer f.Close()
        return r.store.Upload(ctx, bucket, key, f)
    case kindLocal:
        if err := os.Rename(tmpPath, target); err != nil {
            return fmt.Errorf("publish %s: %w", target, err)
        }
        log.Debug().Str("file", target).Msg("output renamed into place")
        return nil
    }
    return fmt.Errorf("%w: %s", ErrUnsupportedOutput, ref)
}

// Cleanup removes every temp file created by this resolver. Files already
// renamed away by Publish are skipped.
func (r *Resolver) Cleanup() {
    for _, p := range r.temps {
        if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
            log.Warn().Err(err).Str("file", p).Msg("temp cleanup failed")
        }
    }
    r.temps = nil
}

func (r *Resolver) createTemp(dir string) (*os.File, error) {
    f, err := os.CreateTemp(dir, TempPrefix+"*.pdf")
    if err != nil { return nil, fmt.Errorf("create temp file: %w", err) }
    r.temps = append(r.temps, f.Name())
    return f, nil
}
