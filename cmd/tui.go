package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/moodboard/internal/shared"
	"github.com/desertthunder/moodboard/internal/ui"
	"github.com/urfave/cli/v3"
)

// Simulated provider timings for terminal previews.
const (
	previewLoadDelay  = 300 * time.Millisecond
	previewReadyDelay = 150 * time.Millisecond
)

// Browse launches the interactive terminal board.
func (r *Runner) Browse(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/moodboard-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	engine, err := r.boardEngine()
	if err != nil {
		return err
	}

	playback := r.config.Playback
	model := ui.NewModel(ctx, engine, ui.Config{
		FrameInterval: playback.FrameInterval(),
		PollInterval:  playback.PollInterval(),
		PollAttempts:  playback.PollAttempts,
		LoadDelay:     previewLoadDelay,
		ReadyDelay:    previewReadyDelay,
		Logger:        fileLogger,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
