package config

import (
    "os"
    "path/filepath"
    "testing"
    "time"
)

func TestFromEnvDefaults(t *testing.T) {
    for _, k := range []string{"LOG_LEVEL", "LOG_FILE", "VERIFY_OUTPUT", "HTTP_TIMEOUT", "METRICS_TEXTFILE", "PDF_VALIDATION", "AXIOM_DATASET", "S3_USE_PATH_STYLE"} {
        t.Setenv(k, "")
    }

    cfg := FromEnv()
    if cfg.Logging.Level != "info" {
        t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
    }
    if cfg.Logging.File != "" {
        t.Errorf("Logging.File = %q, want empty", cfg.Logging.File)
    }
    if !cfg.Splice.VerifyOutput {
        t.Error("Splice.VerifyOutput = false, want true")
    }
    if cfg.Splice.HTTPTimeout != 60*time.Second {
        t.Errorf("Splice.HTTPTimeout = %v, want 60s", cfg.Splice.HTTPTimeout)
    }
    if cfg.Splice.StrictPDF {
        t.Error("Splice.StrictPDF = true, want false")
    }
    if cfg.Axiom.Dataset != "dev_pdfsplice" {
        t.Errorf("Axiom.Dataset = %q", cfg.Axiom.Dataset)
    }
    if cfg.S3.UsePathStyle {
        t.Error("S3.UsePathStyle = true, want false")
    }
}

func TestFromEnvOverrides(t *testing.T) {
    t.Setenv("LOG_LEVEL", "debug")
    t.Setenv("LOG_PRETTY", "yes")
    t.Setenv("LOG_MAX_SIZE_MB", "not-a-number")
    t.Setenv("VERIFY_OUTPUT", "0")
    t.Setenv("HTTP_TIMEOUT", "5s")
    t.Setenv("PDF_VALIDATION", "STRICT")
    t.Setenv("S3_ENDPOINT", "http://localhost:9000")
    t.Setenv("S3_USE_PATH_STYLE", "on")

    cfg := FromEnv()
    if cfg.Logging.Level != "debug" || !cfg.Logging.Pretty {
        t.Errorf("logging overrides not applied: %+v", cfg.Logging)
    }
    if cfg.Logging.MaxSizeMB != 100 {
        t.Errorf("invalid int should fall back to default, got %d", cfg.Logging.MaxSizeMB)
    }
    if cfg.Splice.VerifyOutput {
        t.Error("VERIFY_OUTPUT=0 not applied")
    }
    if cfg.Splice.HTTPTimeout != 5*time.Second {
        t.Errorf("HTTPTimeout = %v", cfg.Splice.HTTPTimeout)
    }
    if !cfg.Splice.StrictPDF {
        t.Error("PDF_VALIDATION=STRICT not applied")
    }
    if cfg.S3.Endpoint != "http://localhost:9000" || !cfg.S3.UsePathStyle {
        t.Errorf("s3 overrides not applied: %+v", cfg.S3)
    }
}

func TestLoadDotEnv(t *testing.T) {
    dir := t.TempDir()
    f := filepath.Join(dir, "test.env")
    if err := os.WriteFile(f, []byte("PDFSPLICE_TEST_DOTENV=from-file\n"), 0o644); err != nil {
        t.Fatal(err)
    }
    t.Setenv("PDFSPLICE_TEST_DOTENV", "")
    os.Unsetenv("PDFSPLICE_TEST_DOTENV")

    if err := LoadDotEnv(f); err != nil {
        t.Fatalf("LoadDotEnv: %v", err)
    }
    if got := os.Getenv("PDFSPLICE_TEST_DOTENV"); got != "from-file" {
        t.Errorf("PDFSPLICE_TEST_DOTENV = %q, want from-file", got)
    }

    if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
        t.Errorf("missing file should be ignored, got %v", err)
    }
}
