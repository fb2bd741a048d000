package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/moodboard/internal/classify"
	"github.com/desertthunder/moodboard/internal/models"
	"github.com/desertthunder/moodboard/internal/services"
	"github.com/desertthunder/moodboard/internal/shared"
	"github.com/desertthunder/moodboard/internal/tasks"
	"github.com/urfave/cli/v3"
)

// classification is the printable result of [classify.Classify].
type classification struct {
	URL          string `json:"url"`
	Provider     string `json:"provider"`
	Label        string `json:"label"`
	MediaID      string `json:"mediaId,omitempty"`
	Embeddable   bool   `json:"embeddable"`
	FacebookKind string `json:"facebookKind,omitempty"`
}

// ItemAdd classifies a URL and saves it as a new item.
func (r *Runner) ItemAdd(ctx context.Context, cmd *cli.Command) error {
	url := cmd.StringArg("url")
	if strings.TrimSpace(url) == "" {
		return fmt.Errorf("%w: url", shared.ErrMissingArgument)
	}

	engine, err := r.boardEngine()
	if err != nil {
		return err
	}

	title := cmd.String("title")
	if title == "" && cmd.Bool("lookup") {
		title = r.lookupTitle(ctx, url)
	}

	item, err := engine.AddItem(tasks.AddItemParams{
		URL:      url,
		Title:    title,
		Notes:    cmd.String("notes"),
		Category: cmd.String("category"),
	})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(item.BoardItem(), true)
	}
	r.writePlain("✓ Added %s (%s) to %s\n", item.DisplayTitle(), item.Provider().Label(), item.Category())
	r.writePlain("  id: %s\n", item.ID())
	if item.MediaID() != "" {
		r.writePlain("  media id: %s\n", item.MediaID())
	}
	return nil
}

// lookupTitle returns the fetched title of url, or "" when no source answers.
func (r *Runner) lookupTitle(ctx context.Context, url string) string {
	p := classify.Classify(url).Provider
	meta, err := services.Lookup(ctx, r.metadata, p, url)
	if err != nil {
		r.logger.Warn("title lookup failed", "url", url, "error", err)
		return ""
	}
	r.logger.Debug("title found", "source", meta.Source, "title", meta.Title)
	return meta.Title
}

// ItemList prints items matching the filters, newest first.
func (r *Runner) ItemList(ctx context.Context, cmd *cli.Command) error {
	provider := cmd.String("provider")
	if provider != "" {
		if _, err := models.ParseProvider(provider); err != nil {
			return fmt.Errorf("%w: --provider: %v", shared.ErrInvalidFlag, err)
		}
	}

	engine, err := r.boardEngine()
	if err != nil {
		return err
	}

	items, err := engine.ListItems(tasks.ListOptions{
		Category: cmd.String("category"),
		Query:    cmd.String("query"),
		Provider: provider,
	})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		out := make([]models.BoardItem, 0, len(items))
		for _, item := range items {
			out = append(out, item.BoardItem())
		}
		return r.writeJSON(out, cmd.Bool("pretty"))
	}

	if len(items) == 0 {
		r.writePlain("No items yet. Add one with 'moodboard item add <url>'.\n")
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("Items (%d)", len(items)))
	for i, item := range items {
		r.writePlain("%d. [%s] %s (%s)\n", i+1, item.Category(), item.DisplayTitle(), item.Provider().Label())
		r.writePlain("   %s\n", item.URL())
		if item.Notes() != "" {
			r.writePlain("   %s\n", item.Notes())
		}
		r.writePlain("   id: %s  added: %s\n", item.ID(), item.AddedAt().Local().Format("2006-01-02 15:04"))
	}
	return nil
}

// ItemRemove deletes an item by id.
func (r *Runner) ItemRemove(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}

	engine, err := r.boardEngine()
	if err != nil {
		return err
	}
	if err := engine.RemoveItem(id); err != nil {
		return err
	}
	r.writePlain("✓ Removed %s\n", id)
	return nil
}

// CategoryAdd stores a new category.
func (r *Runner) CategoryAdd(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name", shared.ErrMissingArgument)
	}

	engine, err := r.boardEngine()
	if err != nil {
		return err
	}
	c, err := engine.AddCategory(name)
	if err != nil {
		return err
	}
	r.writePlain("✓ Added category %s\n", c.Name())
	return nil
}

// CategoryList prints every category in board order.
func (r *Runner) CategoryList(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.boardEngine()
	if err != nil {
		return err
	}
	names, err := engine.Categories()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(names, false)
	}
	for _, name := range names {
		r.writePlain("%s\n", name)
	}
	return nil
}

// Classify prints how a URL would be embedded without saving it.
func (r *Runner) Classify(ctx context.Context, cmd *cli.Command) error {
	url := strings.TrimSpace(cmd.StringArg("url"))
	if url == "" {
		return fmt.Errorf("%w: url", shared.ErrMissingArgument)
	}

	res := classify.Classify(url)
	out := classification{
		URL:        url,
		Provider:   res.Provider.String(),
		Label:      res.Provider.Label(),
		MediaID:    res.MediaID,
		Embeddable: res.Embeddable(),
	}
	if res.Facebook != nil {
		out.FacebookKind = string(res.Facebook.Kind)
	}

	if cmd.Bool("json") {
		return r.writeJSON(out, true)
	}
	r.writePlain("Provider:   %s\n", out.Label)
	if out.MediaID != "" {
		r.writePlain("Media ID:   %s\n", out.MediaID)
	}
	if out.FacebookKind != "" {
		r.writePlain("Facebook:   %s\n", out.FacebookKind)
	}
	r.writePlain("Embeddable: %t\n", out.Embeddable)
	return nil
}
