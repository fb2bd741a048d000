// package formatter provides functions to export board data to various formats (JSON, CSV, Markdown, plain text)
// and to parse board exports back in.
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/desertthunder/moodboard/internal/models"
	"github.com/desertthunder/moodboard/internal/shared"
)

// Formats lists the supported export formats.
var Formats = []string{"json", "csv", "markdown", "txt"}

// Extension returns the file extension for format.
func Extension(format string) string {
	switch format {
	case "markdown", "md":
		return ".md"
	case "txt", "text":
		return ".txt"
	case "csv":
		return ".csv"
	default:
		return ".json"
	}
}

// Export renders board in format. An empty format means JSON.
func Export(board *models.Board, format string) ([]byte, error) {
	switch format {
	case "", "json":
		return ExportToJSON(board)
	case "csv":
		return ExportToCSV(board)
	case "markdown", "md":
		return ExportToMarkdown(board)
	case "txt", "text":
		return ExportToText(board)
	default:
		return nil, fmt.Errorf("%w: %s", shared.ErrUnsupportedFormat, format)
	}
}

// ExportToJSON encodes board in the import-compatible `{categories, items}` shape.
func ExportToJSON(board *models.Board) ([]byte, error) {
	out := *board
	if out.Categories == nil {
		out.Categories = []string{}
	}
	if out.Items == nil {
		out.Items = []models.BoardItem{}
	}
	return shared.MarshalJSON(out, true)
}

// ExportToCSV converts a Board to CSV format with columns: ID, URL, Provider, MediaID, Title, Notes, Category, AddedAt
func ExportToCSV(board *models.Board) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "URL", "Provider", "MediaID", "Title", "Notes", "Category", "AddedAt"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, item := range board.Items {
		record := []string{
			item.ID,
			item.URL,
			item.Provider,
			item.MediaID,
			item.Title,
			item.Notes,
			item.Category,
			item.AddedTime().UTC().Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a Board to Markdown with one section per category.
//
// Image items are inlined; everything else is a link.
func ExportToMarkdown(board *models.Board) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Moodboard\n\n")
	buf.WriteString(fmt.Sprintf("**Items**: %d\n\n", len(board.Items)))

	for _, group := range groupByCategory(board) {
		buf.WriteString(fmt.Sprintf("## %s\n\n", group.name))
		for _, item := range group.items {
			title := displayTitle(item)
			if item.Provider == string(models.ProviderImage) {
				buf.WriteString(fmt.Sprintf("- ![%s](%s)", title, item.URL))
			} else {
				buf.WriteString(fmt.Sprintf("- [%s](%s) _%s_", title, item.URL, providerLabel(item.Provider)))
			}
			if item.Notes != "" {
				buf.WriteString(fmt.Sprintf(": %s", item.Notes))
			}
			buf.WriteString("\n")
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts a Board to plain text format
func ExportToText(board *models.Board) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Categories: %s\n", strings.Join(board.Categories, ", ")))
	buf.WriteString(fmt.Sprintf("Items: %d\n\n", len(board.Items)))

	for i, item := range board.Items {
		buf.WriteString(fmt.Sprintf("%d. [%s] %s - %s\n", i+1, item.Category, displayTitle(item), item.URL))
	}

	return buf.Bytes(), nil
}

// ParseBoard decodes a board export.
//
// Both the `{categories, items}` object and a bare array of items are accepted,
// as are items in the older shape carrying `note` and an ISO `createdAt`.
// Missing categories and items decode as empty.
func ParseBoard(data []byte) (*models.Board, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty document", shared.ErrInvalidBoard)
	}

	var doc struct {
		Categories []string  `json:"categories"`
		Items      []rawItem `json:"items"`
	}
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &doc.Items); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrInvalidBoard, err)
		}
	} else if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidBoard, err)
	}

	board := &models.Board{Categories: doc.Categories, Items: make([]models.BoardItem, 0, len(doc.Items))}
	for _, raw := range doc.Items {
		board.Items = append(board.Items, raw.boardItem())
	}
	return board, nil
}

type rawItem struct {
	models.BoardItem
	Note      string `json:"note"`
	CreatedAt string `json:"createdAt"`
}

func (r rawItem) boardItem() models.BoardItem {
	item := r.BoardItem
	if item.Notes == "" {
		item.Notes = r.Note
	}
	if item.AddedAt == 0 && r.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, r.CreatedAt); err == nil {
			item.AddedAt = t.UnixMilli()
		}
	}
	return item
}

// WriteExport writes board in format to path and returns the path written.
//
// Defaults to moodboard{ext} in the working directory.
func WriteExport(board *models.Board, format, path string) (string, error) {
	if path == "" {
		path = "moodboard" + Extension(format)
	}

	data, err := Export(board, format)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

type categoryGroup struct {
	name  string
	items []models.BoardItem
}

// groupByCategory groups items in board category order, followed by any
// categories only the items mention.
func groupByCategory(board *models.Board) []categoryGroup {
	byName := make(map[string][]models.BoardItem)
	for _, item := range board.Items {
		byName[item.Category] = append(byName[item.Category], item)
	}

	order := slices.Clone(board.Categories)
	for _, item := range board.Items {
		if !slices.Contains(order, item.Category) {
			order = append(order, item.Category)
		}
	}

	var groups []categoryGroup
	for _, name := range order {
		items, ok := byName[name]
		if !ok {
			continue
		}
		if name == "" {
			name = "Uncategorized"
		}
		groups = append(groups, categoryGroup{name: name, items: items})
	}
	return groups
}

func displayTitle(item models.BoardItem) string {
	if item.Title == "" {
		return "Untitled"
	}
	return item.Title
}

func providerLabel(p string) string {
	if provider, err := models.ParseProvider(p); err == nil {
		return provider.Label()
	}
	return p
}
