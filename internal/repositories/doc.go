// Package repositories implements SQLite persistence for board items and categories.
//
// Each repository handles CRUD operations with atomic sequence generation for stable ordering.
// Items are soft deleted via deleted_at timestamps and excluded from queries by default;
// categories are plain rows removed outright.
//
// Key Implementations:
//   - [ItemRepository] : Saved links with category, search and provider filters
//   - [CategoryRepository] : Ordered category names
//
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
