package source

import (
    "os"
    "path/filepath"
    "strings"
    "time"
)

// CleanupStale removes pdfsplice temp files in dir older than maxAge, left
// behind by runs that were killed before they could clean up. Only the top
// level of dir is scanned.
func CleanupStale(dir string, maxAge time.Duration) int {
    entries, err := os.ReadDir(dir)
    if err != nil { return 0 }
    now := time.Now()
    removed := 0
    for _, e := range entries {
        if e.IsDir() || !strings.HasPrefix(e.Name(), TempPrefix) { continue }
        info, err := e.Info()
        if err != nil { continue }
        if now.Sub(info.ModTime()) >= maxAge {
            if os.Remove(filepath.Join(dir, e.Name())) == nil { removed++ }
        }
    }
    return removed
}
