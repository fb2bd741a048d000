package shared

import (
	"testing"
)

func TestMigrationRunner(t *testing.T) {
	t.Run("loadMigrations", func(t *testing.T) {
		migrations, err := loadMigrations()
		if err != nil {
			t.Fatalf("failed to load migrations: %v", err)
		}

		if len(migrations) == 0 {
			t.Fatal("expected at least one migration")
		}

		for i := 1; i < len(migrations); i++ {
			if migrations[i].Version <= migrations[i-1].Version {
				t.Errorf("migrations not sorted: version %d comes after %d", migrations[i].Version, migrations[i-1].Version)
			}
		}

		if migrations[0].Name != "create_board" {
			t.Errorf("expected first migration create_board, got %s", migrations[0].Name)
		}
	})

	t.Run("parseMigrationName", func(t *testing.T) {
		version, label, direction, ok := parseMigrationName("0012_add_tags_down.sql")
		if !ok || version != 12 || label != "add_tags" || direction != "down" {
			t.Errorf("unexpected parse: %d %q %q %v", version, label, direction, ok)
		}

		if _, _, _, ok := parseMigrationName("readme.sql"); ok {
			t.Error("expected names without direction to be rejected")
		}
	})

	t.Run("splitStatements", func(t *testing.T) {
		stmts := splitStatements("-- comment\nCREATE TABLE a (x INT);\n\nINSERT INTO a VALUES (1); -- trailing\n")
		if len(stmts) != 2 {
			t.Fatalf("expected 2 statements, got %d: %v", len(stmts), stmts)
		}
	})

	t.Run("RunMigrations And Rollback", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		if err := RunMigrations(db); err != nil {
			t.Fatalf("running migrations twice should be a no-op: %v", err)
		}

		if _, err := db.Exec("SELECT 1 FROM items LIMIT 1"); err != nil {
			t.Errorf("items table should exist after migrations: %v", err)
		}
		if _, err := db.Exec("SELECT 1 FROM categories LIMIT 1"); err != nil {
			t.Errorf("categories table should exist after migrations: %v", err)
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("failed to rollback migration: %v", err)
		}

		if _, err := db.Exec("SELECT 1 FROM items LIMIT 1"); err == nil {
			t.Error("items table should be dropped after rollback")
		}

		if err := RollbackMigration(db); err == nil {
			t.Error("expected error when nothing is left to roll back")
		}
	})
}
