package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/moodboard/internal/shared"
)

// Item is a saved link on the board.
//
// Items are immutable once created; the only lifecycle change is deletion.
type Item struct {
	id        string
	sequence  int
	url       string
	provider  Provider
	mediaID   string
	title     string
	notes     string
	category  string
	addedAt   time.Time
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// ItemParams carries the user-supplied and classified fields of a new [Item].
type ItemParams struct {
	URL      string
	Provider Provider
	MediaID  string
	Title    string
	Notes    string
	Category string
	AddedAt  time.Time
}

// NewItem creates an [Item] from params. AddedAt defaults to now.
func NewItem(sequence int, p ItemParams) *Item {
	now := time.Now()
	addedAt := p.AddedAt
	if addedAt.IsZero() {
		addedAt = now
	}

	return &Item{
		sequence:  sequence,
		url:       strings.TrimSpace(p.URL),
		provider:  p.Provider,
		mediaID:   p.MediaID,
		title:     strings.TrimSpace(p.Title),
		notes:     strings.TrimSpace(p.Notes),
		category:  strings.TrimSpace(p.Category),
		addedAt:   addedAt,
		createdAt: now,
		updatedAt: now,
	}
}

func (i *Item) ID() string            { return i.id }
func (i *Item) Sequence() int         { return i.sequence }
func (i *Item) URL() string           { return i.url }
func (i *Item) Provider() Provider    { return i.provider }
func (i *Item) MediaID() string       { return i.mediaID }
func (i *Item) Title() string         { return i.title }
func (i *Item) Notes() string         { return i.notes }
func (i *Item) Category() string      { return i.category }
func (i *Item) AddedAt() time.Time    { return i.addedAt }
func (i *Item) CreatedAt() time.Time  { return i.createdAt }
func (i *Item) UpdatedAt() time.Time  { return i.updatedAt }
func (i *Item) DeletedAt() *time.Time { return i.deletedAt }

func (i *Item) SetID(id string)           { i.id = id }
func (i *Item) SetSequence(seq int)       { i.sequence = seq }
func (i *Item) SetCreatedAt(t time.Time)  { i.createdAt = t }
func (i *Item) SetUpdatedAt(t time.Time)  { i.updatedAt = t }
func (i *Item) SetDeletedAt(t *time.Time) { i.deletedAt = t }

// DisplayTitle returns the title, or "Untitled" when none was given.
func (i *Item) DisplayTitle() string {
	if i.title == "" {
		return "Untitled"
	}
	return i.title
}

// Matches reports whether the item passes a category filter ("" or "All" match everything)
// and a normalized search query over title and notes.
func (i *Item) Matches(category, query string) bool {
	if category != "" && category != AllCategories && i.category != category {
		return false
	}
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(i.title), query) || strings.Contains(strings.ToLower(i.notes), query)
}

// Validate checks the item has a URL and a known provider.
func (i *Item) Validate() error {
	if i.url == "" {
		return fmt.Errorf("%w: url is required", shared.ErrInvalidInput)
	}
	if !i.provider.Valid() {
		return fmt.Errorf("%w: unknown provider %q", shared.ErrInvalidInput, i.provider)
	}
	return nil
}

// BoardItem converts the item into its export representation.
func (i *Item) BoardItem() BoardItem {
	return BoardItem{
		ID:       i.id,
		URL:      i.url,
		Provider: string(i.provider),
		MediaID:  i.mediaID,
		Title:    i.title,
		Notes:    i.notes,
		Category: i.category,
		AddedAt:  i.addedAt.UnixMilli(),
	}
}
