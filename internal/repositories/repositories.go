package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/moodboard/internal/models"
	"github.com/desertthunder/moodboard/internal/shared"
)

var (
	_ models.Repository[*models.Item]     = (*ItemRepository)(nil)
	_ models.Repository[*models.Category] = (*CategoryRepository)(nil)
)

// sequenced lists the tables with a companion {table}_sequence counter.
var sequenced = map[string]bool{"items": true, "categories": true}

// NextSequence increments and returns the counter for table.
//
// Sequence numbers order categories and break ties between items added in the
// same millisecond. They are never shown to users.
func NextSequence(db *sql.DB, table string) (int, error) {
	if !sequenced[table] {
		return 0, fmt.Errorf("%w: no sequence for table %q", shared.ErrInvalidArgument, table)
	}

	var sequence int
	query := fmt.Sprintf("UPDATE %s_sequence SET value = value + 1 WHERE id = 1 RETURNING value", table)
	if err := db.QueryRow(query).Scan(&sequence); err != nil {
		return 0, fmt.Errorf("failed to increment sequence: %w", err)
	}
	return sequence, nil
}
