package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/moodboard/internal/models"
	"github.com/desertthunder/moodboard/internal/shared"
)

const itemColumns = `id, sequence, url, provider, media_id, title, notes, category, added_at, created_at, updated_at, deleted_at`

// ItemRepository implements models.Repository[*models.Item] for saved links.
//
// Items are immutable once saved: Update always fails with [shared.ErrImmutable].
// Deleting an item soft-deletes it; [ItemRepository.Clear] removes every row for board resets.
type ItemRepository struct {
	db *sql.DB
}

// NewItemRepository creates a new ItemRepository with the given database connection
func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Create inserts a new [models.Item] with a generated sequence.
//
// An ID is generated unless the item already carries one, which is how imported boards keep their ids.
func (r *ItemRepository) Create(item *models.Item) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "items")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}
	item.SetSequence(sequence)

	if item.ID() == "" {
		item.SetID(shared.GenerateID())
	}

	query := `
		INSERT INTO items (id, sequence, url, provider, media_id, title, notes, category, added_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		item.ID(),
		sequence,
		item.URL(),
		item.Provider().String(),
		item.MediaID(),
		item.Title(),
		item.Notes(),
		item.Category(),
		item.AddedAt().UnixMilli(),
		item.CreatedAt(),
		item.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}

	return nil
}

// Get retrieves an item by ID, excluding soft-deleted items
func (r *ItemRepository) Get(id string) (*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = ? AND deleted_at IS NULL`

	item, err := scanItem(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrItemNotFound, id)
	}
	return item, err
}

// Update always fails: saved items cannot be edited, only removed and added again.
func (r *ItemRepository) Update(item *models.Item) error {
	return fmt.Errorf("%w: item %s", shared.ErrImmutable, item.ID())
}

// Delete soft-deletes an item by ID
func (r *ItemRepository) Delete(id string) error {
	query := `
		UPDATE items
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrItemNotFound, id)
	}

	return nil
}

// List retrieves items matching the given criteria, newest first, excluding soft-deleted items.
//
// Supported criteria:
//   - "category": exact category name; "" or [models.AllCategories] match everything
//   - "query": case-insensitive substring of title or notes
//   - "provider": provider name
func (r *ItemRepository) List(criteria map[string]any) ([]*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE deleted_at IS NULL`
	args := []any{}

	if category, ok := criteria["category"].(string); ok && category != "" && category != models.AllCategories {
		query += " AND category = ?"
		args = append(args, category)
	}

	if q, ok := criteria["query"].(string); ok {
		if q = shared.NormalizeQuery(q); q != "" {
			query += " AND (LOWER(title) LIKE ? OR LOWER(notes) LIKE ?)"
			pattern := "%" + q + "%"
			args = append(args, pattern, pattern)
		}
	}

	if provider, ok := criteria["provider"].(string); ok && provider != "" {
		query += " AND provider = ?"
		args = append(args, provider)
	}

	query += " ORDER BY added_at DESC, sequence DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return items, nil
}

// Clear permanently removes every item, deleted or not.
func (r *ItemRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM items"); err != nil {
		return fmt.Errorf("failed to clear items: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanItem scans a single row from either [sql.Row] or [sql.Rows] into a [models.Item]
func scanItem(s scanner) (*models.Item, error) {
	var (
		id        string
		sequence  int
		url       string
		provider  string
		mediaID   string
		title     string
		notes     string
		category  string
		addedAt   int64
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := s.Scan(&id, &sequence, &url, &provider, &mediaID, &title, &notes, &category, &addedAt, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan item: %w", err)
	}

	item := models.NewItem(sequence, models.ItemParams{
		URL:      url,
		Provider: models.Provider(provider),
		MediaID:  mediaID,
		Title:    title,
		Notes:    notes,
		Category: category,
		AddedAt:  time.UnixMilli(addedAt),
	})
	item.SetID(id)
	item.SetCreatedAt(createdAt)
	item.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		item.SetDeletedAt(&deletedAt.Time)
	}

	return item, nil
}
