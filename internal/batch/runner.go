// Package batch drives the audit engine over a folder of saved HTML
// documents, writing one JSON report per input file.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jgx02c/web-anlysis-scraper/internal/model"
	"github.com/jgx02c/web-anlysis-scraper/internal/platform/errs"
	"github.com/jgx02c/web-anlysis-scraper/internal/seo"
)

// Result records the outcome for a single input file.
type Result struct {
	Name      string
	Output    string
	Err       error
	Immediate int
	Attention int
	Good      int
}

// Summary aggregates a batch run.
type Summary struct {
	RunID     string
	Processed int
	Failed    int
	Results   []Result
}

// Runner processes HTML files concurrently. Documents are independent, so
// each worker holds only a read-only reference to the shared rule set.
type Runner struct {
	auditor     *seo.Auditor
	logger      *slog.Logger
	concurrency int
}

// NewRunner returns a Runner with the given worker pool size.
func NewRunner(auditor *seo.Auditor, logger *slog.Logger, concurrency int) *Runner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Runner{
		auditor:     auditor,
		logger:      logger,
		concurrency: concurrency,
	}
}

// Run audits every .html file in inputDir and writes an indented JSON report
// per file into outputDir. A failure on one document is recorded and skipped;
// the rest of the batch continues. The returned error covers batch-level
// problems only (unreadable input dir, uncreatable output dir, cancellation).
func (r *Runner) Run(ctx context.Context, inputDir, outputDir string) (*Summary, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, &errs.AppError{
			Kind:    errs.ReadFailed,
			Message: fmt.Sprintf("Cannot read input folder %q.", inputDir),
			Cause:   err,
		}
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, &errs.AppError{
			Kind:    errs.ReadFailed,
			Message: fmt.Sprintf("Cannot create output folder %q.", outputDir),
			Cause:   err,
		}
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".html") {
			continue
		}
		names = append(names, entry.Name())
	}

	summary := &Summary{
		RunID:   uuid.New().String(),
		Results: make([]Result, len(names)),
	}
	logger := r.logger.With("run_id", summary.RunID)
	logger.Info("batch started", "input", inputDir, "output", outputDir, "files", len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			summary.Results[i] = r.processFile(inputDir, outputDir, name, logger)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, res := range summary.Results {
		if res.Err != nil {
			summary.Failed++
		} else {
			summary.Processed++
		}
	}

	logger.Info("batch finished", "processed", summary.Processed, "failed", summary.Failed)
	return summary, nil
}

func (r *Runner) processFile(inputDir, outputDir, name string, logger *slog.Logger) Result {
	res := Result{Name: name}

	data, err := os.ReadFile(filepath.Join(inputDir, name))
	if err != nil {
		res.Err = &errs.AppError{
			Kind:    errs.ReadFailed,
			Message: fmt.Sprintf("Cannot read %q.", name),
			Cause:   err,
		}
		logger.Error("document skipped", "file", name, "error", err)
		return res
	}

	page, err := r.auditor.Audit(string(data), name)
	if err != nil {
		res.Err = err
		logger.Error("document skipped", "file", name, "error", err)
		return res
	}

	outName := strings.TrimSuffix(name, filepath.Ext(name)) + ".json"
	outPath := filepath.Join(outputDir, outName)
	if err := writeReport(outPath, page); err != nil {
		res.Err = err
		logger.Error("report not written", "file", name, "error", err)
		return res
	}

	res.Output = outName
	res.Immediate = len(page.Insights.ImmediateActionRequired)
	res.Attention = len(page.Insights.NeedsAttention)
	res.Good = len(page.Insights.GoodPractice)
	logger.Info("document processed",
		"file", name,
		"url", page.WebsiteURL,
		"immediate", res.Immediate,
		"attention", res.Attention,
		"good", res.Good,
	)
	return res
}

func writeReport(path string, page *model.PageFeatures) error {
	data, err := json.MarshalIndent(page, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
