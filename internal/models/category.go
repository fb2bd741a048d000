package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/moodboard/internal/shared"
)

// AllCategories is the filter value that matches every category.
const AllCategories = "All"

// DefaultCategories are restored on setup and reset when the config does not override them.
var DefaultCategories = []string{"Living Room", "Kitchen", "Bathroom", "Bedroom", "Backyard", "Other"}

// Category is a named grouping of items, usually a room.
type Category struct {
	id        string
	sequence  int
	name      string
	createdAt time.Time
	updatedAt time.Time
}

// NewCategory creates a [Category] with a trimmed name.
func NewCategory(sequence int, name string) *Category {
	now := time.Now()
	return &Category{
		sequence:  sequence,
		name:      strings.TrimSpace(name),
		createdAt: now,
		updatedAt: now,
	}
}

func (c *Category) ID() string           { return c.id }
func (c *Category) Sequence() int        { return c.sequence }
func (c *Category) Name() string         { return c.name }
func (c *Category) CreatedAt() time.Time { return c.createdAt }
func (c *Category) UpdatedAt() time.Time { return c.updatedAt }

func (c *Category) SetID(id string)          { c.id = id }
func (c *Category) SetSequence(seq int)      { c.sequence = seq }
func (c *Category) SetName(name string)      { c.name = strings.TrimSpace(name) }
func (c *Category) SetCreatedAt(t time.Time) { c.createdAt = t }
func (c *Category) SetUpdatedAt(t time.Time) { c.updatedAt = t }

// Validate rejects empty names and the reserved "All" filter value.
func (c *Category) Validate() error {
	if c.name == "" {
		return fmt.Errorf("%w: category name is required", shared.ErrInvalidInput)
	}
	if strings.EqualFold(c.name, AllCategories) {
		return fmt.Errorf("%w: %q is reserved", shared.ErrInvalidInput, AllCategories)
	}
	return nil
}
