package config

import (
    "os"
    "strconv"
    "strings"
    "time"

    "github.com/joho/godotenv"
    "golang.org/x/term"
)

// LoggingConfig holds logging-related configuration.
type LoggingConfig struct {
    Level        string
    Pretty       bool
    File         string
    MaxSizeMB    int
    MaxBackups   int
    MaxAgeDays   int
    Compress     bool
}

// AxiomConfig holds Axiom logging configuration.
type AxiomConfig struct {
    Send          bool
    APIKey        string
    OrgID         string
    Dataset       string
    FlushInterval time.Duration
}

// S3Config configures access to s3:// sources and outputs.
// Empty keys fall back to the default AWS credential chain.
type S3Config struct {
    Region       string
    Endpoint     string
    AccessKey    string
    SecretKey    string
    UsePathStyle bool
}

// SpliceConfig holds the behaviour of a splice run.
type SpliceConfig struct {
    TempDir         string
    VerifyOutput    bool
    HTTPTimeout     time.Duration
    MetricsTextfile string
    StrictPDF       bool
}

// Config is the top-level configuration.
type Config struct {
    Logging LoggingConfig
    Axiom   AxiomConfig
    S3      S3Config
    Splice  SpliceConfig
}

// LoadDotEnv loads variables from files (default ".env") without
// overriding the environment. A missing file is not an error.
func LoadDotEnv(files ...string) error {
    if len(files) == 0 { files = []string{".env"} }
    var present []string
    for _, f := range files {
        if _, err := os.Stat(f); err == nil { present = append(present, f) }
    }
    if len(present) == 0 { return nil }
    return godotenv.Load(present...)
}

// FromEnv loads configuration from environment with sensible defaults.
func FromEnv() Config {
    cfg := Config{}

    // Logging defaults; a CLI logs to stderr only unless LOG_FILE is set
    cfg.Logging = LoggingConfig{
        Level:      getEnv("LOG_LEVEL", "info"),
        Pretty:     parseBool(getEnv("LOG_PRETTY", defaultPretty())),
        File:       getEnv("LOG_FILE", ""),
        MaxSizeMB:  parseInt(getEnv("LOG_MAX_SIZE_MB", "100"), 100),
        MaxBackups: parseInt(getEnv("LOG_MAX_BACKUPS", "10"), 10),
        MaxAgeDays: parseInt(getEnv("LOG_MAX_AGE_DAYS", "30"), 30),
        Compress:   parseBool(getEnv("LOG_COMPRESS", "true")),
    }

    // Axiom defaults
    baseDataset := getEnv("AXIOM_DATASET", "dev")
    cfg.Axiom = AxiomConfig{
        Send:          parseBool(getEnv("SEND_LOGS_TO_AXIOM", "0")),
        APIKey:        getEnv("AXIOM_API_KEY", ""),
        OrgID:         getEnv("AXIOM_ORG_ID", ""),
        Dataset:       baseDataset + "_pdfsplice",
        FlushInterval: parseDuration(getEnv("AXIOM_FLUSH_INTERVAL", "10s"), 10*time.Second),
    }

    cfg.S3 = S3Config{
        Region:       getEnv("AWS_REGION", ""),
        Endpoint:     getEnv("S3_ENDPOINT", ""),
        AccessKey:    getEnv("S3_ACCESS_KEY", ""),
        SecretKey:    getEnv("S3_SECRET_KEY", ""),
        UsePathStyle: parseBool(getEnv("S3_USE_PATH_STYLE", "false")),
    }

    cfg.Splice = SpliceConfig{
        TempDir:         getEnv("TEMP_DIR", os.TempDir()),
        VerifyOutput:    parseBool(getEnv("VERIFY_OUTPUT", "true")),
        HTTPTimeout:     parseDuration(getEnv("HTTP_TIMEOUT", "60s"), 60*time.Second),
        MetricsTextfile: getEnv("METRICS_TEXTFILE", ""),
        StrictPDF:       strings.EqualFold(getEnv("PDF_VALIDATION", "relaxed"), "strict"),
    }

    return cfg
}

// Helpers
func getEnv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

func parseInt(s string, def int) int {
    if s == "" { return def }
    if n, err := strconv.Atoi(s); err == nil { return n }
    return def
}

func parseBool(s string) bool {
    v := strings.ToLower(strings.TrimSpace(s))
    return v == "1" || v == "true" || v == "yes" || v == "on"
}

func parseDuration(s string, def time.Duration) time.Duration {
    if s == "" { return def }
    if d, err := time.ParseDuration(s); err == nil { return d }
    return def
}

// defaultPretty enables console logs when a human is watching stderr.
func defaultPretty() string {
    env := strings.ToLower(os.Getenv("ENVIRONMENT"))
    if env == "dev" || env == "development" || env == "local" { return "true" }
    if term.IsTerminal(int(os.Stderr.Fd())) { return "true" }
    return "false"
}
