package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/moodboard/internal/formatter"
	"github.com/desertthunder/moodboard/internal/shared"
	"github.com/desertthunder/moodboard/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Export writes the board to stdout, a file, or one file per category with --bulk.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	output := cmd.String("output")

	engine, err := r.boardEngine()
	if err != nil {
		return err
	}

	if cmd.Bool("bulk") {
		return r.bulkExport(ctx, engine, format, output, int(cmd.Int("workers")))
	}

	if output == "" {
		data, err := engine.Export(format)
		if err != nil {
			return err
		}
		if _, err := r.output.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	board, err := engine.Board()
	if err != nil {
		return err
	}
	path, err := formatter.WriteExport(board, format, output)
	if err != nil {
		return err
	}

	r.logger.Info("board exported", "path", path, "items", len(board.Items))
	r.writePlain("✓ Exported %d items to %s\n", len(board.Items), path)
	return nil
}

func (r *Runner) bulkExport(ctx context.Context, engine *tasks.BoardEngine, format, dir string, workers int) error {
	r.writePlain("Exporting categories...\n\n")

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			if update.Phase == tasks.ExportCategory {
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	result, err := engine.BulkExport(ctx, progressCh, tasks.BulkExportOpts{
		Format:     format,
		OutputDir:  dir,
		NumWorkers: workers,
	})
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlainln("")
	r.writePlainHeader("Export Complete!")
	r.writePlain("Categories: %d/%d exported\n", result.SuccessfulExports, result.TotalCategories)
	r.writePlain("Directory:  %s\n", result.OutputDirectory)
	if result.ManifestPath != "" {
		r.writePlain("Manifest:   %s\n", result.ManifestPath)
	}

	if result.FailedExports > 0 {
		r.writePlain("\nFailed to export %d categories:\n", result.FailedExports)
		for _, res := range result.Results {
			if !res.Success {
				r.writePlain("  - %s: %v\n", res.Category, res.Error)
			}
		}
	}
	return nil
}

// Import replaces the board with an exported JSON file.
func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("file")
	if path == "" {
		return fmt.Errorf("%w: file", shared.ErrMissingArgument)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	engine, err := r.boardEngine()
	if err != nil {
		return err
	}

	r.logger.Info("starting import", "path", path)
	r.writePlain("Importing %s...\n", path)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.ParseBoard:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.ReplaceBoard:
				r.writePlain("📝 %s\n", update.Message)
			case tasks.ImportItems:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	result, err := engine.Import(ctx, progressCh, data)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlainln("")
	r.writePlainHeader("Import Complete!")
	r.writePlain("Items:      %d imported, %d skipped\n", result.Imported, result.Skipped)
	r.writePlain("Categories: %d\n", result.Categories)

	if len(result.Reasons) > 0 {
		r.writePlain("\nSkipped:\n")
		for _, reason := range result.Reasons {
			r.writePlain("  - %s\n", reason)
		}
	}
	return nil
}

// Reset clears the board and restores the default categories.
func (r *Runner) Reset(ctx context.Context, cmd *cli.Command) error {
	if !cmd.Bool("yes") {
		return fmt.Errorf("%w: reset deletes every item, pass --yes to confirm", shared.ErrMissingArgument)
	}

	engine, err := r.boardEngine()
	if err != nil {
		return err
	}
	if err := engine.Reset(); err != nil {
		return err
	}
	r.writePlain("✓ Board reset\n")
	return nil
}
