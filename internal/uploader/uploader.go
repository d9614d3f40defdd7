// Package uploader pushes local JSON documents into the object store with a
// bounded worker pool. One file's failure never affects another's upload.
package uploader

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/jonboulle/clockwork"

	"github.com/manojclinton/cricket-analytics-etl/internal/blob"
	"github.com/manojclinton/cricket-analytics-etl/internal/observability"
)

const jsonContentType = "application/json"

// Report summarizes one upload run.
type Report struct {
	Local    int // JSON files found locally
	Skipped  int // files already present in the store
	Uploaded int // files uploaded this run
	Failed   int // files whose upload failed
}

// Summary renders the run outcome as a single human-readable line.
func (r *Report) Summary() string {
	return fmt.Sprintf("uploaded %d files (%d local, %d already present, %d failed)",
		r.Uploaded, r.Local, r.Skipped, r.Failed)
}

// Uploader copies local *.json files into the store under a prefix.
type Uploader struct {
	store   blob.Store
	prefix  string
	workers int
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates an Uploader with the given pool size.
func New(store blob.Store, prefix string, workers int, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Uploader {
	if workers < 1 {
		workers = 1
	}
	return &Uploader{
		store:   store,
		prefix:  prefix,
		workers: workers,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
	}
}

// Run uploads every local JSON file not already present in the store.
// Failures are collected per file and aggregated into the returned error;
// the report is valid either way.
func (u *Uploader) Run(ctx context.Context, dir string) (*Report, error) {
	start := u.clock.Now()
	defer func() {
		u.metrics.RunDuration.WithLabelValues("upload").Observe(u.clock.Since(start).Seconds())
	}()

	local, err := listLocalJSON(dir)
	if err != nil {
		return nil, err
	}

	existingObjects, err := u.store.List(ctx, u.prefix)
	if err != nil {
		return nil, fmt.Errorf("list existing objects: %w", err)
	}
	existing := make(map[string]struct{}, len(existingObjects))
	for _, object := range existingObjects {
		existing[strings.TrimPrefix(object, u.prefix)] = struct{}{}
	}

	report := &Report{Local: len(local)}
	var toUpload []string
	for _, name := range local {
		if _, ok := existing[name]; ok {
			report.Skipped++
			continue
		}
		toUpload = append(toUpload, name)
	}
	u.logger.Info("upload scan complete", "local", report.Local, "existing", report.Skipped, "to_upload", len(toUpload))

	if len(toUpload) == 0 {
		return report, nil
	}

	var (
		mu   sync.Mutex
		merr *multierror.Error
	)
	jobs := make(chan string)
	var wg sync.WaitGroup
	for w := 0; w < u.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range jobs {
				if err := u.uploadOne(ctx, dir, name); err != nil {
					u.logger.Error("upload failed", "file", name, "error", err)
					u.metrics.UploadsFailed.Inc()
					mu.Lock()
					report.Failed++
					merr = multierror.Append(merr, err)
					mu.Unlock()
					continue
				}
				u.logger.Info("uploaded", "file", name)
				u.metrics.UploadsSucceeded.Inc()
				mu.Lock()
				report.Uploaded++
				mu.Unlock()
			}
		}()
	}
	for _, name := range toUpload {
		jobs <- name
	}
	close(jobs)
	wg.Wait()

	return report, merr.ErrorOrNil()
}

func (u *Uploader) uploadOne(ctx context.Context, dir, name string) error {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := u.store.Upload(ctx, u.prefix+name, data, jsonContentType); err != nil {
		return fmt.Errorf("upload %s: %w", name, err)
	}
	return nil
}

func listLocalJSON(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read local dir %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
