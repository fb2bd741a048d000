package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/moodboard/internal/models"
	"github.com/desertthunder/moodboard/internal/services"
	"github.com/desertthunder/moodboard/internal/shared"
	"github.com/desertthunder/moodboard/internal/tasks"
	tu "github.com/desertthunder/moodboard/internal/testing"
	"github.com/urfave/cli/v3"
)

func mustRun(t *testing.T, engine *tasks.BoardEngine, args ...string) string {
	t.Helper()
	out, err := run(t, engine, args...)
	if err != nil {
		t.Fatalf("%s: expected no error, got %v", strings.Join(args, " "), err)
	}
	return out
}

func TestItemCommands(t *testing.T) {
	t.Run("add classifies and stores the item", func(t *testing.T) {
		engine := newTestEngine(t)

		out := mustRun(t, engine, "item", "add", "--title", "Lamp", "--category", "Kitchen", "https://youtu.be/dQw4w9WgXcQ")
		if !strings.Contains(out, "✓ Added Lamp (YouTube) to Kitchen") {
			t.Errorf("unexpected output: %q", out)
		}
		if !strings.Contains(out, "media id: dQw4w9WgXcQ") {
			t.Errorf("expected media id in output, got %q", out)
		}

		items, err := engine.ListItems(tasks.ListOptions{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(items) != 1 || items[0].Provider() != models.ProviderYouTube {
			t.Fatalf("expected one youtube item, got %v", items)
		}
	})

	t.Run("add with json prints the stored item", func(t *testing.T) {
		engine := newTestEngine(t)

		out := mustRun(t, engine, "item", "add", "--json", "https://vimeo.com/76979871")

		var item models.BoardItem
		if err := json.Unmarshal([]byte(out), &item); err != nil {
			t.Fatalf("expected JSON output, got %q: %v", out, err)
		}
		if item.Provider != "vimeo" || item.MediaID != "76979871" {
			t.Errorf("unexpected item: %+v", item)
		}
		if item.Category != models.DefaultCategories[0] {
			t.Errorf("expected first default category, got %q", item.Category)
		}
	})

	t.Run("add with lookup fetches the title", func(t *testing.T) {
		oembed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"title": "Living room tour"})
		}))
		defer oembed.Close()

		engine := newTestEngine(t)
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{
			Logger: shared.NewLogger(io.Discard),
			Output: output,
			Engine: engine,
			Services: []services.Service{
				services.NewOEmbedService(map[models.Provider]string{models.ProviderYouTube: oembed.URL}, oembed.Client()),
			},
		})
		root := &cli.Command{Name: "moodboard", Commands: runner.register(), Writer: io.Discard}

		args := []string{"moodboard", "item", "add", "--lookup", "https://youtu.be/dQw4w9WgXcQ"}
		if err := root.Run(context.Background(), args); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "✓ Added Living room tour (YouTube)") {
			t.Errorf("expected fetched title, got %q", output.String())
		}

		// a failed lookup still adds the item
		args = []string{"moodboard", "item", "add", "--lookup", "https://vimeo.com/76979871"}
		if err := root.Run(context.Background(), args); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if items, _ := engine.ListItems(tasks.ListOptions{}); len(items) != 2 {
			t.Errorf("expected two items, got %d", len(items))
		}
	})

	t.Run("add without url fails", func(t *testing.T) {
		_, err := run(t, newTestEngine(t), "item", "add")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("list filters by category and query", func(t *testing.T) {
		engine := newTestEngine(t)
		mustRun(t, engine, "item", "add", "--title", "Oak table", "--category", "Kitchen", "https://example.com/table.jpg")
		mustRun(t, engine, "item", "add", "--title", "Rug", "--notes", "wool", "--category", "Bedroom", "https://example.com/rug.png")

		out := mustRun(t, engine, "item", "list", "--category", "Kitchen")
		if !strings.Contains(out, "Items (1)") || !strings.Contains(out, "Oak table") {
			t.Errorf("expected only the kitchen item, got %q", out)
		}
		if strings.Contains(out, "Rug") {
			t.Errorf("did not expect bedroom item, got %q", out)
		}

		out = mustRun(t, engine, "item", "list", "--query", "WOOL")
		if !strings.Contains(out, "Rug") || strings.Contains(out, "Oak table") {
			t.Errorf("expected query to match notes, got %q", out)
		}
	})

	t.Run("list json", func(t *testing.T) {
		engine := newTestEngine(t)
		mustRun(t, engine, "item", "add", "https://www.tiktok.com/@user/video/7234567890123456789")

		out := mustRun(t, engine, "item", "list", "--json", "--pretty=false")

		var items []models.BoardItem
		if err := json.Unmarshal([]byte(out), &items); err != nil {
			t.Fatalf("expected JSON output, got %q: %v", out, err)
		}
		if len(items) != 1 || items[0].Provider != "tiktok" {
			t.Errorf("unexpected items: %+v", items)
		}
	})

	t.Run("list empty board", func(t *testing.T) {
		out := mustRun(t, newTestEngine(t), "item", "list")
		if !strings.Contains(out, "No items yet") {
			t.Errorf("expected empty message, got %q", out)
		}
	})

	t.Run("list rejects unknown provider", func(t *testing.T) {
		_, err := run(t, newTestEngine(t), "item", "list", "--provider", "myspace")
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})

	t.Run("remove", func(t *testing.T) {
		engine := newTestEngine(t)
		item, err := engine.AddItem(tasks.AddItemParams{URL: "https://example.com/a.png"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := mustRun(t, engine, "item", "remove", item.ID())
		if !strings.Contains(out, "✓ Removed "+item.ID()) {
			t.Errorf("unexpected output: %q", out)
		}

		_, err = run(t, engine, "item", "remove", item.ID())
		if !errors.Is(err, shared.ErrItemNotFound) {
			t.Errorf("expected ErrItemNotFound on second remove, got %v", err)
		}
	})
}

func TestCategoryCommands(t *testing.T) {
	engine := newTestEngine(t)

	out := mustRun(t, engine, "category", "add", "Garage")
	if !strings.Contains(out, "✓ Added category Garage") {
		t.Errorf("unexpected output: %q", out)
	}

	_, err := run(t, engine, "category", "add", "Garage")
	if !errors.Is(err, shared.ErrCategoryExists) {
		t.Errorf("expected ErrCategoryExists, got %v", err)
	}

	out = mustRun(t, engine, "category", "list", "--json")
	var names []string
	if err := json.Unmarshal([]byte(out), &names); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", out, err)
	}
	if len(names) != len(models.DefaultCategories)+1 || names[len(names)-1] != "Garage" {
		t.Errorf("expected defaults followed by Garage, got %v", names)
	}

	out = mustRun(t, engine, "category", "list")
	if !strings.HasPrefix(out, models.DefaultCategories[0]+"\n") {
		t.Errorf("expected board order, got %q", out)
	}
}

func TestClassifyCommand(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		provider   string
		mediaID    string
		embeddable bool
		fbKind     string
	}{
		{name: "youtube short link", url: "https://youtu.be/dQw4w9WgXcQ", provider: "youtube", mediaID: "dQw4w9WgXcQ", embeddable: true},
		{name: "youtube without scheme", url: "youtu.be/dQw4w9WgXcQ", provider: "youtube", mediaID: "dQw4w9WgXcQ", embeddable: true},
		{name: "tiktok without scheme", url: "www.tiktok.com/@user/video/7234567890123456789", provider: "tiktok", mediaID: "7234567890123456789", embeddable: true},
		{name: "facebook video", url: "https://www.facebook.com/page/videos/123456/", provider: "facebook", embeddable: true, fbKind: "video"},
		{name: "facebook short link", url: "https://fb.watch/abc123/", provider: "facebook", fbKind: "short"},
		{name: "plain link", url: "https://example.com/article", provider: "link"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := mustRun(t, nil, "classify", "--json", tt.url)

			var got classification
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("expected JSON output, got %q: %v", out, err)
			}
			if got.Provider != tt.provider {
				t.Errorf("expected provider %q, got %q", tt.provider, got.Provider)
			}
			if got.MediaID != tt.mediaID && tt.fbKind == "" {
				t.Errorf("expected media id %q, got %q", tt.mediaID, got.MediaID)
			}
			if got.Embeddable != tt.embeddable {
				t.Errorf("expected embeddable %t, got %t", tt.embeddable, got.Embeddable)
			}
			if got.FacebookKind != tt.fbKind {
				t.Errorf("expected facebook kind %q, got %q", tt.fbKind, got.FacebookKind)
			}
		})
	}

	t.Run("plain output", func(t *testing.T) {
		out := mustRun(t, nil, "classify", "https://vimeo.com/76979871")
		for _, want := range []string{"Provider:   Vimeo", "Media ID:   76979871", "Embeddable: true"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in %q", want, out)
			}
		}
	})
}

func TestExportCommand(t *testing.T) {
	seed := func(t *testing.T) *tasks.BoardEngine {
		engine := newTestEngine(t)
		for _, p := range []tasks.AddItemParams{
			{URL: "https://youtu.be/dQw4w9WgXcQ", Title: "Tour", Category: "Living Room"},
			{URL: "https://example.com/tiles.jpg", Title: "Tiles", Category: "Bathroom"},
		} {
			if _, err := engine.AddItem(p); err != nil {
				t.Fatalf("failed to seed item: %v", err)
			}
		}
		return engine
	}

	t.Run("json to stdout", func(t *testing.T) {
		out := mustRun(t, seed(t), "export")

		var board models.Board
		if err := json.Unmarshal([]byte(out), &board); err != nil {
			t.Fatalf("expected board JSON, got %q: %v", out, err)
		}
		if len(board.Items) != 2 || len(board.Categories) != len(models.DefaultCategories) {
			t.Errorf("unexpected board: %+v", board)
		}
	})

	t.Run("markdown to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out", "board.md")

		out := mustRun(t, seed(t), "export", "--format", "markdown", "--output", path)
		if !strings.Contains(out, "✓ Exported 2 items to "+path) {
			t.Errorf("unexpected output: %q", out)
		}
		if content := tu.MustReadFile(t, path); !strings.Contains(content, "Tiles") {
			t.Errorf("expected item in markdown export, got %q", content)
		}
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := run(t, seed(t), "export", "--format", "xml")
		if !errors.Is(err, shared.ErrUnsupportedFormat) {
			t.Errorf("expected ErrUnsupportedFormat, got %v", err)
		}
	})

	t.Run("bulk writes one file per category", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "bulk")

		out := mustRun(t, seed(t), "export", "--bulk", "--format", "csv", "--output", dir, "--workers", "2")
		if !strings.Contains(out, "Categories: 2/2 exported") {
			t.Errorf("unexpected output: %q", out)
		}
		tu.AssertFileExists(t, filepath.Join(dir, "living-room.csv"))
		tu.AssertFileExists(t, filepath.Join(dir, "bathroom.csv"))
		tu.AssertFileExists(t, filepath.Join(dir, "export_manifest.json"))
	})
}

func TestImportCommand(t *testing.T) {
	t.Run("replaces the board and reports skips", func(t *testing.T) {
		engine := newTestEngine(t)
		if _, err := engine.AddItem(tasks.AddItemParams{URL: "https://example.com/old.png"}); err != nil {
			t.Fatalf("failed to seed item: %v", err)
		}

		path := filepath.Join(t.TempDir(), "board.json")
		doc := `{
			"categories": ["Studio", "Porch"],
			"items": [
				{"id": "a", "url": "https://youtu.be/dQw4w9WgXcQ", "title": "Tour", "category": "Studio", "addedAt": 1700000000000},
				{"id": "b", "url": "", "title": "Broken"},
				{"id": "a", "url": "https://example.com/dup.png"},
				{"id": "c", "url": "https://example.com/chair.png", "note": "old shape", "category": "Porch"}
			]
		}`
		if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
			t.Fatalf("failed to write import file: %v", err)
		}

		out := mustRun(t, engine, "import", path)
		for _, want := range []string{"Import Complete!", "2 imported, 2 skipped", "Categories: 2", "missing url", "duplicate id a"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in %q", want, out)
			}
		}

		names, err := engine.Categories()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if strings.Join(names, ",") != "Studio,Porch" {
			t.Errorf("expected imported categories, got %v", names)
		}

		item, err := engine.GetItem("c")
		if err != nil {
			t.Fatalf("expected imported item, got %v", err)
		}
		if item.Notes() != "old shape" {
			t.Errorf("expected legacy note to import, got %q", item.Notes())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := run(t, newTestEngine(t), "import", filepath.Join(t.TempDir(), "nope.json"))
		if err == nil || !strings.Contains(err.Error(), "failed to read") {
			t.Errorf("expected read error, got %v", err)
		}
	})

	t.Run("invalid document", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
			t.Fatalf("failed to write import file: %v", err)
		}
		_, err := run(t, newTestEngine(t), "import", path)
		if !errors.Is(err, shared.ErrInvalidBoard) {
			t.Errorf("expected ErrInvalidBoard, got %v", err)
		}
	})
}

func TestResetCommand(t *testing.T) {
	engine := newTestEngine(t)
	if _, err := engine.AddItem(tasks.AddItemParams{URL: "https://example.com/a.png", Category: "Garage"}); err != nil {
		t.Fatalf("failed to seed item: %v", err)
	}

	_, err := run(t, engine, "reset")
	if !errors.Is(err, shared.ErrMissingArgument) {
		t.Errorf("expected confirmation error, got %v", err)
	}
	if items, _ := engine.ListItems(tasks.ListOptions{}); len(items) != 1 {
		t.Fatalf("expected board untouched without --yes, got %d items", len(items))
	}

	out := mustRun(t, engine, "reset", "--yes")
	if !strings.Contains(out, "✓ Board reset") {
		t.Errorf("unexpected output: %q", out)
	}

	items, err := engine.ListItems(tasks.ListOptions{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty board, got %d items", len(items))
	}
	names, _ := engine.Categories()
	if len(names) != len(models.DefaultCategories) {
		t.Errorf("expected default categories restored, got %v", names)
	}
}
