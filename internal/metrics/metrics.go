package metrics

import (
    "fmt"
    "time"

    "github.com/prometheus/client_golang/prometheus"
)

// Recorder collects the metrics of a single run on its own registry so the
// textfile contains pdfsplice series only.
type Recorder struct {
    reg         *prometheus.Registry
    runs        *prometheus.CounterVec
    pages       prometheus.Counter
    sources     prometheus.Counter
    duration    prometheus.Histogram
    lastSuccess prometheus.Gauge
}

// New creates a Recorder with all collectors registered.
func New() *Recorder {
    r := &Recorder{
        reg: prometheus.NewRegistry(),
        runs: prometheus.NewCounterVec(
            prometheus.CounterOpts{
                Namespace: "pdfsplice",
                Name:      "runs_total",
                Help:      "Splice runs by result (success, usage, invalid_input, backend_error)",
            },
            []string{"result"},
        ),
        pages: prometheus.NewCounter(prometheus.CounterOpts{
            Namespace: "pdfsplice",
            Name:      "pages_written_total",
            Help:      "Pages written to output documents",
        }),
        sources: prometheus.NewCounter(prometheus.CounterOpts{
            Namespace: "pdfsplice",
            Name:      "sources_total",
            Help:      "Source sections read",
        }),
        duration: prometheus.NewHistogram(prometheus.HistogramOpts{
            Namespace: "pdfsplice",
            Name:      "run_duration_seconds",
            Help:      "Wall time of splice runs",
            Buckets:   prometheus.DefBuckets,
        }),
        lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
            Namespace: "pdfsplice",
            Name:      "last_success_timestamp_seconds",
            Help:      "Unix time of the last successful run",
        }),
    }
    r.reg.MustRegister(r.runs, r.pages, r.sources, r.duration, r.lastSuccess)
    return r
}

// ObserveRun records the outcome of a run.
func (r *Recorder) ObserveRun(result string, sources, pages int, dur time.Duration) {
    r.runs.WithLabelValues(result).Inc()
    r.sources.Add(float64(sources))
    r.pages.Add(float64(pages))
    r.duration.Observe(dur.Seconds())
    if result == "success" {
        r.lastSuccess.SetToCurrentTime()
    }
}

// Gatherer exposes the registry.
func (r *Recorder) Gatherer() prometheus.Gatherer { return r.reg }

// WriteTextfile writes the metrics in the node exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
    if path == "" { return nil }
    if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
        return fmt.Errorf("write metrics textfile: %w", err)
    }
    return nil
}
