package tasks

import (
	"fmt"

	"github.com/desertthunder/moodboard/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ParseBoard Phase = iota
	ReplaceBoard
	ImportItems
	ExportCategory
)

func (p Phase) String() string {
	switch p {
	case ParseBoard:
		return "parse_board"
	case ReplaceBoard:
		return "replace_board"
	case ImportItems:
		return "import_items"
	case ExportCategory:
		return "export_category"
	default:
		return ""
	}
}

func parseBoardUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   ParseBoard,
		Step:    1,
		Total:   1,
		Message: "Reading board export...",
	}
}

func replaceBoardUpdate(categories int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ReplaceBoard,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Replacing board (%d categories)...", categories),
	}
}

func importItemUpdate(step, total int, item models.BoardItem, ok bool) ProgressUpdate {
	mark := "✓"
	if !ok {
		mark = "✗"
	}
	return ProgressUpdate{
		Phase:   ImportItems,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s %s", step, total, mark, item.URL),
		Data:    item,
	}
}

func exportingCategoryUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportCategory,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting: %s...", step, total, name),
	}
}

func exportCompletedUpdate(step, total int, name string, items int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportCategory,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d items)", step, total, name, items),
	}
}

func exportFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportCategory,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}
