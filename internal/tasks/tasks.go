package tasks

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodboard/internal/classify"
	"github.com/desertthunder/moodboard/internal/formatter"
	"github.com/desertthunder/moodboard/internal/models"
	"github.com/desertthunder/moodboard/internal/shared"
)

// ItemStore persists board items. Implemented by repositories.ItemRepository.
type ItemStore interface {
	Create(item *models.Item) error
	Get(id string) (*models.Item, error)
	Delete(id string) error
	List(criteria map[string]any) ([]*models.Item, error)
	Clear() error
}

// CategoryStore persists category names. Implemented by repositories.CategoryRepository.
type CategoryStore interface {
	Create(c *models.Category) error
	Names() ([]string, error)
	Clear() error
}

// AddItemParams are the user-supplied fields of a new item.
type AddItemParams struct {
	URL      string
	Title    string
	Notes    string
	Category string
}

// ListOptions filter [BoardEngine.ListItems].
type ListOptions struct {
	Category string // "" or "All" for every category
	Query    string // matched against title and notes
	Provider string
}

// ImportResult summarizes an import.
type ImportResult struct {
	Imported   int
	Skipped    int
	Categories int
	Reasons    []string // why each skipped item was skipped
}

// BoardEngine implements board operations on top of the item and category stores.
type BoardEngine struct {
	items      ItemStore
	categories CategoryStore
	defaults   []string
	logger     *log.Logger
}

// NewBoardEngine creates a BoardEngine. defaults are the categories restored on setup and reset;
// an empty list means [models.DefaultCategories].
func NewBoardEngine(items ItemStore, categories CategoryStore, defaults []string, logger *log.Logger) *BoardEngine {
	if len(defaults) == 0 {
		defaults = models.DefaultCategories
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &BoardEngine{
		items:      items,
		categories: categories,
		defaults:   slices.Clone(defaults),
		logger:     shared.WithLogger(logger, "component", "board"),
	}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *BoardEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// AddItem classifies p.URL and saves a new item.
//
// The category defaults to the first board category and is created when missing.
func (e *BoardEngine) AddItem(p AddItemParams) (*models.Item, error) {
	url := strings.TrimSpace(p.URL)
	if url == "" {
		return nil, fmt.Errorf("%w: url is required", shared.ErrMissingArgument)
	}

	category := strings.TrimSpace(p.Category)
	if category == "" || category == models.AllCategories {
		names, err := e.Categories()
		if err != nil {
			return nil, err
		}
		category = e.defaults[0]
		if len(names) > 0 {
			category = names[0]
		}
	}
	if err := e.ensureCategory(category); err != nil {
		return nil, err
	}

	res := classify.Classify(url)
	item := models.NewItem(0, models.ItemParams{
		URL:      url,
		Provider: res.Provider,
		MediaID:  res.MediaID,
		Title:    p.Title,
		Notes:    p.Notes,
		Category: category,
	})
	if err := e.items.Create(item); err != nil {
		return nil, err
	}

	e.logger.Info("item added", "id", item.ID(), "provider", item.Provider(), "category", category)
	return item, nil
}

// ListItems returns items matching opts, newest first.
func (e *BoardEngine) ListItems(opts ListOptions) ([]*models.Item, error) {
	return e.items.List(map[string]any{
		"category": opts.Category,
		"query":    opts.Query,
		"provider": opts.Provider,
	})
}

// GetItem returns one item.
func (e *BoardEngine) GetItem(id string) (*models.Item, error) {
	return e.items.Get(id)
}

// RemoveItem deletes the item with id.
func (e *BoardEngine) RemoveItem(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: item id is required", shared.ErrMissingArgument)
	}
	if err := e.items.Delete(id); err != nil {
		return err
	}
	e.logger.Info("item removed", "id", id)
	return nil
}

// Categories returns stored categories followed by any category only items mention.
func (e *BoardEngine) Categories() ([]string, error) {
	names, err := e.categories.Names()
	if err != nil {
		return nil, err
	}

	items, err := e.items.List(nil)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if c := item.Category(); c != "" && !slices.Contains(names, c) {
			names = append(names, c)
		}
	}
	return names, nil
}

// AddCategory stores a new category.
func (e *BoardEngine) AddCategory(name string) (*models.Category, error) {
	c := models.NewCategory(0, name)
	if err := e.categories.Create(c); err != nil {
		return nil, err
	}
	e.logger.Info("category added", "name", c.Name())
	return c, nil
}

// EnsureDefaults stores the default categories when none exist.
func (e *BoardEngine) EnsureDefaults() error {
	names, err := e.categories.Names()
	if err != nil {
		return err
	}
	if len(names) > 0 {
		return nil
	}
	for _, name := range e.defaults {
		if err := e.categories.Create(models.NewCategory(0, name)); err != nil {
			return err
		}
	}
	return nil
}

func (e *BoardEngine) ensureCategory(name string) error {
	names, err := e.categories.Names()
	if err != nil {
		return err
	}
	if slices.Contains(names, name) {
		return nil
	}
	return e.categories.Create(models.NewCategory(0, name))
}

// Board snapshots the whole board: categories plus every item, newest first.
func (e *BoardEngine) Board() (*models.Board, error) {
	categories, err := e.Categories()
	if err != nil {
		return nil, err
	}
	items, err := e.items.List(nil)
	if err != nil {
		return nil, err
	}

	board := &models.Board{Categories: categories, Items: make([]models.BoardItem, 0, len(items))}
	for _, item := range items {
		board.Items = append(board.Items, item.BoardItem())
	}
	return board, nil
}

// Export renders the board in format (json, csv, markdown or txt).
func (e *BoardEngine) Export(format string) ([]byte, error) {
	board, err := e.Board()
	if err != nil {
		return nil, err
	}
	return formatter.Export(board, format)
}

// Import replaces the board with the export in data.
//
// Categories fall back to the defaults when the export has none. Every item is
// re-classified from its URL; items without a URL or repeating an earlier id are skipped.
func (e *BoardEngine) Import(ctx context.Context, progress chan<- ProgressUpdate, data []byte) (*ImportResult, error) {
	e.sendProgress(progress, parseBoardUpdate())
	board, err := formatter.ParseBoard(data)
	if err != nil {
		return nil, err
	}

	categories := cleanCategories(board.Categories)
	if len(categories) == 0 {
		categories = e.defaults
	}

	e.sendProgress(progress, replaceBoardUpdate(len(categories)))
	if err := e.items.Clear(); err != nil {
		return nil, err
	}
	if err := e.categories.Clear(); err != nil {
		return nil, err
	}
	for _, name := range categories {
		if err := e.categories.Create(models.NewCategory(0, name)); err != nil {
			return nil, err
		}
	}

	result := &ImportResult{Categories: len(categories)}
	seen := make(map[string]bool, len(board.Items))
	total := len(board.Items)

	for i, raw := range board.Items {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		url := strings.TrimSpace(raw.URL)
		switch {
		case url == "":
			result.skip(fmt.Sprintf("item %d: missing url", i+1))
			e.sendProgress(progress, importItemUpdate(i+1, total, raw, false))
			continue
		case raw.ID != "" && seen[raw.ID]:
			result.skip(fmt.Sprintf("item %d: duplicate id %s", i+1, raw.ID))
			e.sendProgress(progress, importItemUpdate(i+1, total, raw, false))
			continue
		}
		seen[raw.ID] = true

		category := strings.TrimSpace(raw.Category)
		if category == "" {
			category = categories[0]
		}

		res := classify.Classify(url)
		item := models.NewItem(0, models.ItemParams{
			URL:      url,
			Provider: res.Provider,
			MediaID:  res.MediaID,
			Title:    raw.Title,
			Notes:    raw.Notes,
			Category: category,
			AddedAt:  raw.AddedTime(),
		})
		item.SetID(raw.ID)

		if err := e.items.Create(item); err != nil {
			result.skip(fmt.Sprintf("item %d: %v", i+1, err))
			e.sendProgress(progress, importItemUpdate(i+1, total, raw, false))
			continue
		}
		result.Imported++
		e.sendProgress(progress, importItemUpdate(i+1, total, raw, true))
	}

	e.logger.Info("board imported", "items", result.Imported, "skipped", result.Skipped, "categories", result.Categories)
	return result, nil
}

// Reset removes every item and category and restores the defaults.
func (e *BoardEngine) Reset() error {
	if err := e.items.Clear(); err != nil {
		return err
	}
	if err := e.categories.Clear(); err != nil {
		return err
	}
	if err := e.EnsureDefaults(); err != nil {
		return err
	}
	e.logger.Info("board reset")
	return nil
}

func (r *ImportResult) skip(reason string) {
	r.Skipped++
	r.Reasons = append(r.Reasons, reason)
}

// cleanCategories trims names and drops blanks, duplicates and the reserved filter value.
func cleanCategories(names []string) []string {
	var out []string
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || strings.EqualFold(name, models.AllCategories) || slices.Contains(out, name) {
			continue
		}
		out = append(out, name)
	}
	return out
}
