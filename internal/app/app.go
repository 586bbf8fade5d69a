package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/deusflow/thumbfill/internal/audit"
	"github.com/deusflow/thumbfill/internal/config"
	"github.com/deusflow/thumbfill/internal/index"
	"github.com/deusflow/thumbfill/internal/logger"
	"github.com/deusflow/thumbfill/internal/metrics"
	"github.com/deusflow/thumbfill/internal/report"
	"github.com/deusflow/thumbfill/internal/storage"
	"github.com/deusflow/thumbfill/internal/thumbnail"
)

// FileResult is the outcome for one report file. Err is set when the file
// could not be read, parsed or written; the rest of the batch still runs.
type FileResult struct {
	Path   string
	Result thumbnail.Result
	Saved  bool
	Err    error
}

// FileAudit holds audit findings for one report file.
type FileAudit struct {
	Path     string
	Findings []audit.Finding
	Err      error
}

// Runner drives the resolver over a batch of report files.
type Runner struct {
	cfg     *config.Config
	ledger  Ledger
	metrics *metrics.Metrics
	extra   []report.Article
}

// NewRunner loads the extra candidate articles named by cfg. ledger may be nil.
func NewRunner(cfg *config.Config, ledger Ledger) (*Runner, error) {
	extra, err := index.LoadDocumentNews(cfg.NewsFiles)
	if err != nil {
		return nil, err
	}

	if cfg.FeedsConfigPath != "" {
		feeds, err := index.LoadFeeds(cfg.FeedsConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load feeds config: %w", err)
		}
		extra = append(extra, index.FeedArticles(feeds)...)
	}

	if len(extra) > 0 {
		logger.Info("extra candidate articles loaded", "articles", len(extra))
	}

	return &Runner{
		cfg:     cfg,
		ledger:  ledger,
		metrics: metrics.New(),
		extra:   extra,
	}, nil
}

// Metrics exposes the batch counters.
func (r *Runner) Metrics() *metrics.Metrics {
	return r.metrics
}

// Fix backfills every file and returns per-file results in input order plus
// their folded summary. Only context cancellation is returned as an error.
func (r *Runner) Fix(ctx context.Context, paths []string) ([]FileResult, thumbnail.Summary, error) {
	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Jobs)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = FileResult{Path: path, Err: err}
				return err
			}
			results[i] = r.fixFile(gctx, path)
			return nil
		})
	}
	err := g.Wait()

	var sum thumbnail.Summary
	for _, fr := range results {
		if fr.Err == nil {
			sum = sum.Add(fr.Result)
		}
	}

	logger.Info("batch finished", "files", len(paths), "fixed", sum.Fixed(), "stats", r.metrics.GetStats())
	return results, sum, err
}

func (r *Runner) fixFile(ctx context.Context, path string) (fr FileResult) {
	start := time.Now()
	defer func() {
		r.metrics.RecordProcessingTime(time.Since(start))
		if fr.Err != nil {
			r.metrics.RecordFailure(fr.Err)
			logger.Error("report failed", "path", path, "error", fr.Err)
		}
	}()

	fr.Path = path
	info, err := os.Stat(path)
	if err != nil {
		fr.Err = fmt.Errorf("file not found: %w", err)
		return fr
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fr.Err = fmt.Errorf("failed to read report: %w", err)
		return fr
	}
	doc, err := report.Decode(data)
	if err != nil {
		fr.Err = err
		return fr
	}

	rep := doc.Report()
	pool := index.FromReport(rep).With(r.extra)
	fr.Result = thumbnail.Resolve(rep, pool.Articles())
	for _, d := range fr.Result.Decisions {
		logger.Debug("decision", "path", path, "detail", d.String())
	}

	written := data
	if fr.Result.Modified() && !r.cfg.DryRun {
		out, err := doc.Encode()
		if err != nil {
			fr.Err = fmt.Errorf("failed to encode report: %w", err)
			return fr
		}
		if err := writeFileAtomic(path, out, info.Mode().Perm()); err != nil {
			fr.Err = err
			return fr
		}
		fr.Saved = true
		written = out
	}

	r.metrics.RecordDocument(fr.Result.Checked(), fr.Result.Fixed(), fr.Result.EmptyToNull, fr.Saved)
	r.record(ctx, storage.RunRecord{
		File:        path,
		Digest:      storage.Digest(written),
		Checked:     fr.Result.Checked(),
		Fixed:       fr.Result.Fixed(),
		EmptyToNull: fr.Result.EmptyToNull,
		Saved:       fr.Saved,
		DryRun:      r.cfg.DryRun,
	})

	logger.Info("report processed", "path", path, "checked", fr.Result.Checked(),
		"fixed", fr.Result.Fixed(), "empty_to_null", fr.Result.EmptyToNull, "saved", fr.Saved)
	return fr
}

func (r *Runner) record(ctx context.Context, rec storage.RunRecord) {
	if r.ledger == nil {
		return
	}
	if err := r.ledger.Record(ctx, rec); err != nil {
		logger.Warn("failed to record run", "path", rec.File, "error", err)
	}
}

// Audit grades existing thumbnails of every file without modifying anything.
func (r *Runner) Audit(ctx context.Context, paths []string) ([]FileAudit, error) {
	out := make([]FileAudit, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		doc, err := report.Load(path)
		if err != nil {
			out = append(out, FileAudit{Path: path, Err: err})
			continue
		}
		rep := doc.Report()
		pool := index.FromReport(rep).With(r.extra)
		out = append(out, FileAudit{Path: path, Findings: audit.Check(rep, pool)})
	}
	return out, nil
}

// writeFileAtomic replaces path via a temp file in the same directory.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set report mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace report: %w", err)
	}
	return nil
}
