package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/moodboard/internal/models"
	"github.com/desertthunder/moodboard/internal/shared"
)

// CategoryRepository implements models.Repository[*models.Category].
type CategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new CategoryRepository with the given database connection
func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts a category. Names are unique; a duplicate fails with [shared.ErrCategoryExists].
func (r *CategoryRepository) Create(c *models.Category) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if _, err := r.GetByName(c.Name()); err == nil {
		return fmt.Errorf("%w: %s", shared.ErrCategoryExists, c.Name())
	} else if !errors.Is(err, shared.ErrCategoryNotFound) {
		return err
	}

	sequence, err := NextSequence(r.db, "categories")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}
	c.SetSequence(sequence)
	c.SetID(shared.GenerateID())

	query := `
		INSERT INTO categories (id, sequence, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`
	if _, err := r.db.Exec(query, c.ID(), sequence, c.Name(), c.CreatedAt(), c.UpdatedAt()); err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

// Get retrieves a category by ID
func (r *CategoryRepository) Get(id string) (*models.Category, error) {
	query := `SELECT id, sequence, name, created_at, updated_at FROM categories WHERE id = ?`
	c, err := scanCategory(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrCategoryNotFound, id)
	}
	return c, err
}

// GetByName retrieves a category by its exact name
func (r *CategoryRepository) GetByName(name string) (*models.Category, error) {
	query := `SELECT id, sequence, name, created_at, updated_at FROM categories WHERE name = ?`
	c, err := scanCategory(r.db.QueryRow(query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrCategoryNotFound, name)
	}
	return c, err
}

// Update renames a category. Items keep the category name they were saved with.
func (r *CategoryRepository) Update(c *models.Category) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	c.SetUpdatedAt(now)

	result, err := r.db.Exec(`UPDATE categories SET name = ?, updated_at = ? WHERE id = ?`, c.Name(), now, c.ID())
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrCategoryNotFound, c.ID())
	}
	return nil
}

// Delete removes a category by ID
func (r *CategoryRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrCategoryNotFound, id)
	}
	return nil
}

// List returns every category in creation order. Criteria are not used.
func (r *CategoryRepository) List(map[string]any) ([]*models.Category, error) {
	rows, err := r.db.Query(`SELECT id, sequence, name, created_at, updated_at FROM categories ORDER BY sequence ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return categories, nil
}

// Names returns category names in creation order.
func (r *CategoryRepository) Names() ([]string, error) {
	categories, err := r.List(nil)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name())
	}
	return names, nil
}

// Clear removes every category.
func (r *CategoryRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM categories"); err != nil {
		return fmt.Errorf("failed to clear categories: %w", err)
	}
	return nil
}

func scanCategory(s scanner) (*models.Category, error) {
	var (
		id        string
		sequence  int
		name      string
		createdAt time.Time
		updatedAt time.Time
	)

	err := s.Scan(&id, &sequence, &name, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan category: %w", err)
	}

	c := models.NewCategory(sequence, name)
	c.SetID(id)
	c.SetCreatedAt(createdAt)
	c.SetUpdatedAt(updatedAt)
	return c, nil
}
