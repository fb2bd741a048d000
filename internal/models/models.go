package models

import "time"

// Model is a persisted board record.
type Model interface {
	ID() string
	CreatedAt() time.Time
	UpdatedAt() time.Time
	Validate() error
}

// Repository is the storage contract for board records.
//
// List criteria are repository specific; unknown keys are ignored. Clear
// removes every record and is used when an import replaces the board.
type Repository[T Model] interface {
	Create(model T) error
	Get(id string) (T, error)
	Update(model T) error
	Delete(id string) error
	List(criteria map[string]any) ([]T, error)
	Clear() error
}
