package repositories

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/moodboard/internal/models"
	"github.com/desertthunder/moodboard/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func newTestItem(url, title, category string, addedAt time.Time) *models.Item {
	return models.NewItem(0, models.ItemParams{
		URL:      url,
		Provider: models.ProviderLink,
		Title:    title,
		Category: category,
		AddedAt:  addedAt,
	})
}

func TestItemRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewItemRepository(db)
		item := newTestItem("https://example.com", "Example", "Kitchen", time.Time{})

		if err := repo.Create(item); err != nil {
			t.Fatalf("failed to create item: %v", err)
		}

		if item.ID() == "" {
			t.Error("item ID should be set after creation")
		}
		if item.Sequence() != 1 {
			t.Errorf("expected sequence 1, got %d", item.Sequence())
		}
	})

	t.Run("Create keeps an existing ID", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewItemRepository(db)
		item := newTestItem("https://example.com", "Example", "Kitchen", time.Time{})
		item.SetID("imported-id")

		if err := repo.Create(item); err != nil {
			t.Fatalf("failed to create item: %v", err)
		}
		if item.ID() != "imported-id" {
			t.Errorf("expected imported-id, got %s", item.ID())
		}
	})

	t.Run("Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewItemRepository(db)
		added := time.UnixMilli(1_700_000_000_123)
		item := models.NewItem(0, models.ItemParams{
			URL:      "https://youtu.be/dQw4w9WgXcQ",
			Provider: models.ProviderYouTube,
			MediaID:  "dQw4w9WgXcQ",
			Title:    "Tour",
			Notes:    "great tile",
			Category: "Bathroom",
			AddedAt:  added,
		})
		if err := repo.Create(item); err != nil {
			t.Fatalf("failed to create item: %v", err)
		}

		retrieved, err := repo.Get(item.ID())
		if err != nil {
			t.Fatalf("failed to get item: %v", err)
		}

		if retrieved.URL() != item.URL() || retrieved.Provider() != models.ProviderYouTube || retrieved.MediaID() != "dQw4w9WgXcQ" {
			t.Errorf("unexpected item: %+v", retrieved.BoardItem())
		}
		if retrieved.Notes() != "great tile" || retrieved.Category() != "Bathroom" {
			t.Errorf("unexpected notes or category: %+v", retrieved.BoardItem())
		}
		if !retrieved.AddedAt().Equal(added) {
			t.Errorf("expected addedAt %v, got %v", added, retrieved.AddedAt())
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewItemRepository(db)
		item := newTestItem("https://example.com", "", "", time.Time{})
		if err := repo.Create(item); err != nil {
			t.Fatalf("failed to create item: %v", err)
		}

		if err := repo.Delete(item.ID()); err != nil {
			t.Fatalf("failed to delete item: %v", err)
		}

		if _, err := repo.Get(item.ID()); err == nil {
			t.Error("expected error when getting deleted item")
		}
	})

	t.Run("List orders newest first", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewItemRepository(db)
		base := time.UnixMilli(1_700_000_000_000)
		for i, title := range []string{"oldest", "middle", "newest"} {
			item := newTestItem("https://example.com/"+title, title, "Kitchen", base.Add(time.Duration(i)*time.Minute))
			if err := repo.Create(item); err != nil {
				t.Fatalf("failed to create item: %v", err)
			}
		}

		items, err := repo.List(nil)
		if err != nil {
			t.Fatalf("failed to list items: %v", err)
		}
		if len(items) != 3 {
			t.Fatalf("expected 3 items, got %d", len(items))
		}
		if items[0].Title() != "newest" || items[2].Title() != "oldest" {
			t.Errorf("unexpected order: %s, %s, %s", items[0].Title(), items[1].Title(), items[2].Title())
		}
	})

	t.Run("List filters", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewItemRepository(db)
		seed := []*models.Item{
			newTestItem("https://example.com/1", "Green Tile", "Kitchen", time.Time{}),
			newTestItem("https://example.com/2", "Walnut bench", "Backyard", time.Time{}),
			models.NewItem(0, models.ItemParams{URL: "https://vimeo.com/1", Provider: models.ProviderVimeo, Notes: "tile grout", Category: "Bathroom"}),
		}
		for _, item := range seed {
			if err := repo.Create(item); err != nil {
				t.Fatalf("failed to create item: %v", err)
			}
		}

		tests := []struct {
			name     string
			criteria map[string]any
			want     int
		}{
			{"no criteria", map[string]any{}, 3},
			{"all categories", map[string]any{"category": models.AllCategories}, 3},
			{"category", map[string]any{"category": "Kitchen"}, 1},
			{"query matches title and notes", map[string]any{"query": "  TILE "}, 2},
			{"query and category", map[string]any{"query": "tile", "category": "Bathroom"}, 1},
			{"provider", map[string]any{"provider": "vimeo"}, 1},
			{"no match", map[string]any{"query": "marble"}, 0},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				items, err := repo.List(tt.criteria)
				if err != nil {
					t.Fatalf("failed to list items: %v", err)
				}
				if len(items) != tt.want {
					t.Errorf("expected %d items, got %d", tt.want, len(items))
				}
			})
		}
	})

	t.Run("Clear", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewItemRepository(db)
		for range 2 {
			if err := repo.Create(newTestItem("https://example.com", "", "", time.Time{})); err != nil {
				t.Fatalf("failed to create item: %v", err)
			}
		}

		if err := repo.Clear(); err != nil {
			t.Fatalf("failed to clear items: %v", err)
		}
		items, err := repo.List(nil)
		if err != nil {
			t.Fatalf("failed to list items: %v", err)
		}
		if len(items) != 0 {
			t.Errorf("expected no items, got %d", len(items))
		}
	})
}

func TestCategoryRepository(t *testing.T) {
	t.Run("Create and List", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCategoryRepository(db)
		for _, name := range []string{"Kitchen", "Bathroom", "Other"} {
			if err := repo.Create(models.NewCategory(0, name)); err != nil {
				t.Fatalf("failed to create category: %v", err)
			}
		}

		names, err := repo.Names()
		if err != nil {
			t.Fatalf("failed to list categories: %v", err)
		}
		if len(names) != 3 || names[0] != "Kitchen" || names[2] != "Other" {
			t.Errorf("unexpected names: %v", names)
		}
	})

	t.Run("GetByName", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCategoryRepository(db)
		c := models.NewCategory(0, " Kitchen ")
		if err := repo.Create(c); err != nil {
			t.Fatalf("failed to create category: %v", err)
		}

		found, err := repo.GetByName("Kitchen")
		if err != nil {
			t.Fatalf("failed to get category: %v", err)
		}
		if found.ID() != c.ID() {
			t.Errorf("expected ID %s, got %s", c.ID(), found.ID())
		}
	})

	t.Run("Update", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCategoryRepository(db)
		c := models.NewCategory(0, "Kitchen")
		if err := repo.Create(c); err != nil {
			t.Fatalf("failed to create category: %v", err)
		}

		c.SetName("Pantry")
		if err := repo.Update(c); err != nil {
			t.Fatalf("failed to update category: %v", err)
		}

		got, err := repo.Get(c.ID())
		if err != nil {
			t.Fatalf("failed to get category: %v", err)
		}
		if got.Name() != "Pantry" {
			t.Errorf("expected Pantry, got %s", got.Name())
		}
	})

	t.Run("Delete and Clear", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCategoryRepository(db)
		a := models.NewCategory(0, "A")
		b := models.NewCategory(0, "B")
		for _, c := range []*models.Category{a, b} {
			if err := repo.Create(c); err != nil {
				t.Fatalf("failed to create category: %v", err)
			}
		}

		if err := repo.Delete(a.ID()); err != nil {
			t.Fatalf("failed to delete category: %v", err)
		}
		if names, _ := repo.Names(); len(names) != 1 || names[0] != "B" {
			t.Errorf("expected [B], got %v", names)
		}

		if err := repo.Clear(); err != nil {
			t.Fatalf("failed to clear categories: %v", err)
		}
		if names, _ := repo.Names(); len(names) != 0 {
			t.Errorf("expected no categories, got %v", names)
		}
	})
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	seq1, err := NextSequence(db, "items")
	if err != nil {
		t.Fatalf("failed to get first sequence: %v", err)
	}

	if seq1 != 1 {
		t.Errorf("expected first sequence to be 1, got %d", seq1)
	}

	seq2, err := NextSequence(db, "items")
	if err != nil {
		t.Fatalf("failed to get second sequence: %v", err)
	}

	if seq2 != 2 {
		t.Errorf("expected second sequence to be 2, got %d", seq2)
	}

	categorySeq, err := NextSequence(db, "categories")
	if err != nil {
		t.Fatalf("failed to get category sequence: %v", err)
	}

	if categorySeq != 1 {
		t.Errorf("expected first category sequence to be 1, got %d", categorySeq)
	}

	if _, err := NextSequence(db, "items; DROP TABLE items"); !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for unknown table, got %v", err)
	}
}
