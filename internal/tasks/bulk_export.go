package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/desertthunder/moodboard/internal/formatter"
	"github.com/desertthunder/moodboard/internal/models"
)

// BulkExportOpts contains configuration for per-category exports.
type BulkExportOpts struct {
	Format     string // Export format: json, csv, markdown, txt
	OutputDir  string // Base output directory (default: moodboard_export_{epoch})
	NumWorkers int    // Concurrent workers (default: 4)
}

// CategoryExportResult is the outcome of exporting one category.
type CategoryExportResult struct {
	Category string
	Items    int
	File     string
	Success  bool
	Error    error
}

// BulkExportResult summarizes a bulk export.
type BulkExportResult struct {
	TotalCategories   int
	SuccessfulExports int
	FailedExports     int
	OutputDirectory   string
	ManifestPath      string
	Results           []CategoryExportResult
}

type categoryExportJob struct {
	category string
	board    *models.Board
}

// BulkExport writes one file per non-empty category concurrently and a manifest summarizing the run.
func (e *BoardEngine) BulkExport(ctx context.Context, prog chan<- ProgressUpdate, opts BulkExportOpts) (*BulkExportResult, error) {
	if opts.Format == "" {
		opts.Format = "json"
	}
	if _, err := formatter.Export(&models.Board{}, opts.Format); err != nil {
		return nil, err
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("moodboard_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}

	board, err := e.Board()
	if err != nil {
		return nil, err
	}
	jobsList := splitByCategory(board)

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalCategories: len(jobsList),
		OutputDirectory: opts.OutputDir,
		Results:         make([]CategoryExportResult, 0, len(jobsList)),
	}

	jobs := make(chan categoryExportJob, len(jobsList))
	results := make(chan CategoryExportResult, len(jobsList))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		defer close(jobs)
		for i, job := range jobsList {
			select {
			case <-ctx.Done():
				return
			case jobs <- job:
			}
			e.sendProgress(prog, exportingCategoryUpdate(i+1, len(jobsList), job.category))
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(jobsList), res.Category, res.Items))
		} else {
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(completed, len(jobsList), res.Category, res.Error))
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	manifest := &formatter.Manifest{
		Format:     opts.Format,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Successful: result.SuccessfulExports,
		Failed:     result.FailedExports,
	}
	for _, res := range result.Results {
		entry := formatter.ManifestEntry{Category: res.Category, Items: res.Items, File: res.File}
		if res.Error != nil {
			entry.Error = res.Error.Error()
		}
		manifest.Entries = append(manifest.Entries, entry)
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := formatter.WriteManifest(manifest, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// exportWorker is a worker goroutine that writes categories from the jobs channel.
func (e *BoardEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan categoryExportJob,
	results chan<- CategoryExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res := CategoryExportResult{Category: job.category, Items: len(job.board.Items)}
		path := filepath.Join(opts.OutputDir, slugify(job.category)+formatter.Extension(opts.Format))
		written, err := formatter.WriteExport(job.board, opts.Format, path)
		if err != nil {
			res.Error = fmt.Errorf("%s export failed: %w", opts.Format, err)
		} else {
			res.File = written
			res.Success = true
		}
		results <- res
	}
}

// splitByCategory builds one single-category board per category that has items.
func splitByCategory(board *models.Board) []categoryExportJob {
	byName := make(map[string][]models.BoardItem)
	var order []string
	for _, name := range board.Categories {
		if _, ok := byName[name]; !ok {
			byName[name] = nil
			order = append(order, name)
		}
	}
	for _, item := range board.Items {
		if _, ok := byName[item.Category]; !ok {
			order = append(order, item.Category)
		}
		byName[item.Category] = append(byName[item.Category], item)
	}

	var jobs []categoryExportJob
	for _, name := range order {
		items := byName[name]
		if len(items) == 0 {
			continue
		}
		jobs = append(jobs, categoryExportJob{
			category: name,
			board:    &models.Board{Categories: []string{name}, Items: items},
		})
	}
	return jobs
}

// slugify turns a category name into a file name: "Living Room" -> "living-room".
func slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "uncategorized"
	}
	return slug
}
