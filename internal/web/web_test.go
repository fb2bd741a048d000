package web

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/desertthunder/moodboard/internal/models"
	"github.com/desertthunder/moodboard/internal/players"
)

func newItem(id, rawURL string) *models.Item {
	item := models.NewItem(1, models.ItemParams{URL: rawURL, Title: "Title " + id, Category: "Kitchen", Notes: "note " + id})
	item.SetID(id)
	return item
}

func renderDoc(t *testing.T, item *models.Item) *goquery.Document {
	t.Helper()
	html, err := RenderCard(item, "mp-1")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(html)))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return doc
}

func TestRenderCard(t *testing.T) {
	t.Run("youtube iframe starts muted with the JS API", func(t *testing.T) {
		doc := renderDoc(t, newItem("yt", "https://youtu.be/dQw4w9WgXcQ"))
		src := doc.Find(".media iframe").AttrOr("src", "")
		if src != "https://www.youtube.com/embed/dQw4w9WgXcQ?enablejsapi=1&rel=0&mute=1&playsinline=1" {
			t.Errorf("unexpected src %q", src)
		}
		if doc.Find("article").AttrOr("data-mount", "") != "mp-1" {
			t.Error("expected mount point on the card")
		}
	})

	t.Run("vimeo iframe", func(t *testing.T) {
		doc := renderDoc(t, newItem("vm", "https://vimeo.com/76979871"))
		src := doc.Find(".media iframe").AttrOr("src", "")
		if src != "https://player.vimeo.com/video/76979871?muted=1&pip=1&playsinline=1" {
			t.Errorf("unexpected src %q", src)
		}
	})

	t.Run("tiktok iframe", func(t *testing.T) {
		doc := renderDoc(t, newItem("tt", "https://www.tiktok.com/@someone/video/7234567890123456789"))
		src := doc.Find(".media iframe").AttrOr("src", "")
		if src != "https://www.tiktok.com/embed/v2/video/7234567890123456789" {
			t.Errorf("unexpected src %q", src)
		}
		if !strings.Contains(doc.Find(".media iframe").AttrOr("allow", ""), "clipboard-write") {
			t.Error("expected clipboard-write permission")
		}
	})

	t.Run("instagram blockquote", func(t *testing.T) {
		doc := renderDoc(t, newItem("ig", "https://www.instagram.com/p/Cabc123/"))
		bq := doc.Find("blockquote.instagram-media")
		if bq.Length() != 1 {
			t.Fatal("expected instagram blockquote")
		}
		if bq.AttrOr("data-instgrm-permalink", "") != "https://www.instagram.com/p/Cabc123/" {
			t.Errorf("unexpected permalink %q", bq.AttrOr("data-instgrm-permalink", ""))
		}
		if bq.AttrOr("data-instgrm-version", "") != "14" {
			t.Error("expected embed version 14")
		}
	})

	t.Run("facebook video uses the video plugin", func(t *testing.T) {
		doc := renderDoc(t, newItem("fb", "https://m.facebook.com/somepage/videos/1234567890/"))
		src := doc.Find(".media iframe").AttrOr("src", "")
		if !strings.HasPrefix(src, "https://www.facebook.com/plugins/video.php?href=") {
			t.Errorf("unexpected src %q", src)
		}
		if !strings.Contains(src, "www.facebook.com%2Fsomepage%2Fvideos%2F1234567890") {
			t.Errorf("expected canonical href in %q", src)
		}
		if !strings.HasSuffix(src, "&show_text=false&width=560") {
			t.Errorf("expected plugin options in %q", src)
		}
	})

	t.Run("facebook post uses the post plugin", func(t *testing.T) {
		doc := renderDoc(t, newItem("fp", "https://www.facebook.com/somepage/posts/42"))
		src := doc.Find(".media iframe").AttrOr("src", "")
		if !strings.HasPrefix(src, "https://www.facebook.com/plugins/post.php?href=") {
			t.Errorf("unexpected src %q", src)
		}
	})

	t.Run("fb.watch short link explains itself", func(t *testing.T) {
		doc := renderDoc(t, newItem("fw", "https://fb.watch/abc123/"))
		if doc.Find(".media iframe").Length() != 0 {
			t.Error("short links must not embed")
		}
		if !strings.Contains(doc.Find(".fallback .note").Text(), "fb.watch short link") {
			t.Errorf("unexpected note %q", doc.Find(".fallback .note").Text())
		}
		if doc.Find(".fallback a").Text() != "Open on Facebook" {
			t.Error("expected open on facebook link")
		}
	})

	t.Run("image and file video", func(t *testing.T) {
		doc := renderDoc(t, newItem("im", "https://cdn.example.com/pic.jpg"))
		img := doc.Find(".media img")
		if img.AttrOr("src", "") != "https://cdn.example.com/pic.jpg" || img.AttrOr("loading", "") != "lazy" {
			t.Errorf("unexpected img %v", img.Nodes)
		}

		doc = renderDoc(t, newItem("vd", "https://cdn.example.com/clip.mp4"))
		video := doc.Find(".media video")
		for _, attr := range []string{"controls", "loop", "muted", "playsinline"} {
			if _, ok := video.Attr(attr); !ok {
				t.Errorf("expected video attribute %s", attr)
			}
		}
	})

	t.Run("unparseable ids fall back with a note", func(t *testing.T) {
		tests := []struct {
			url  string
			note string
		}{
			{"https://www.youtube.com/feed/library", "Couldn't parse YouTube ID."},
			{"https://vimeo.com/", "Couldn't parse Vimeo ID."},
			{"https://www.tiktok.com/@someone", "Paste a TikTok video URL"},
		}
		for _, tt := range tests {
			doc := renderDoc(t, newItem("x", tt.url))
			if got := doc.Find(".fallback .note").Text(); got != tt.note {
				t.Errorf("%s: expected note %q, got %q", tt.url, tt.note, got)
			}
			if doc.Find(".fallback a").AttrOr("href", "") != tt.url {
				t.Errorf("%s: expected link out", tt.url)
			}
		}
	})

	t.Run("plain links render a link card", func(t *testing.T) {
		doc := renderDoc(t, newItem("ln", "https://example.com/article"))
		if doc.Find(".link-card a").AttrOr("href", "") != "https://example.com/article" {
			t.Error("expected link card")
		}
	})

	t.Run("meta shows title category notes and delete", func(t *testing.T) {
		doc := renderDoc(t, newItem("mt", "https://example.com"))
		if doc.Find(".title").Text() != "Title mt" {
			t.Errorf("unexpected title %q", doc.Find(".title").Text())
		}
		if doc.Find(".tag").Text() != "Kitchen" {
			t.Errorf("unexpected category %q", doc.Find(".tag").Text())
		}
		if doc.Find(".content .note").Text() != "note mt" {
			t.Errorf("unexpected notes %q", doc.Find(".content .note").Text())
		}
		if doc.Find("form.delete").AttrOr("action", "") != "/items/mt/delete" {
			t.Error("expected delete form")
		}
	})

	t.Run("untitled items", func(t *testing.T) {
		item := models.NewItem(1, models.ItemParams{URL: "https://example.com", Category: "Other"})
		doc := renderDoc(t, item)
		if doc.Find(".title").Text() != "Untitled" {
			t.Errorf("expected Untitled, got %q", doc.Find(".title").Text())
		}
	})

	t.Run("unsafe urls are neutralized", func(t *testing.T) {
		doc := renderDoc(t, newItem("js", "javascript:alert(1)"))
		doc.Find("a").Each(func(_ int, s *goquery.Selection) {
			if strings.HasPrefix(s.AttrOr("href", ""), "javascript:") {
				t.Errorf("unsafe href rendered: %q", s.AttrOr("href", ""))
			}
		})
	})
}

func TestRenderPage(t *testing.T) {
	render := func(t *testing.T, p Page) *goquery.Document {
		t.Helper()
		var buf bytes.Buffer
		if err := RenderPage(&buf, p); err != nil {
			t.Fatalf("render failed: %v", err)
		}
		doc, err := goquery.NewDocumentFromReader(&buf)
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		return doc
	}
	categories := []string{"Kitchen", "Living Room"}

	t.Run("empty board", func(t *testing.T) {
		doc := render(t, NewPage(categories, nil, "", "", 0))
		if !strings.Contains(doc.Find(".empty").Text(), "No items yet.") {
			t.Errorf("unexpected empty state %q", doc.Find(".empty").Text())
		}
		if doc.Find("script[src]").Length() != 0 {
			t.Error("expected no provider scripts")
		}
	})

	t.Run("filtered to nothing", func(t *testing.T) {
		doc := render(t, NewPage(categories, nil, "Kitchen", "zzz", 3))
		if doc.Find(".empty").Text() != "No items match." {
			t.Errorf("unexpected empty state %q", doc.Find(".empty").Text())
		}
	})

	t.Run("scripts are emitted once", func(t *testing.T) {
		items := []*models.Item{
			newItem("a", "https://youtu.be/dQw4w9WgXcQ"),
			newItem("b", "https://www.youtube.com/watch?v=9bZkp7q19f0"),
			newItem("c", "https://www.instagram.com/p/Cabc123/"),
			newItem("d", "https://www.instagram.com/reel/Cdef456/"),
			newItem("e", "https://www.tiktok.com/@someone/video/7234567890123456789"),
		}
		doc := render(t, NewPage(categories, items, "", "", len(items)))
		if doc.Find("article.card").Length() != 5 {
			t.Fatalf("expected 5 cards, got %d", doc.Find("article.card").Length())
		}
		var ids []string
		doc.Find("script[src]").Each(func(_ int, s *goquery.Selection) {
			ids = append(ids, s.AttrOr("id", ""))
		})
		want := []string{players.YouTubeScript.ID, players.InstagramScript.ID}
		if strings.Join(ids, ",") != strings.Join(want, ",") {
			t.Errorf("expected scripts %v, got %v", want, ids)
		}
	})

	t.Run("mount points are unique", func(t *testing.T) {
		items := []*models.Item{newItem("a", "https://example.com/1"), newItem("b", "https://example.com/2")}
		p := NewPage(categories, items, "", "", 2)
		if p.Cards[0].Mount == p.Cards[1].Mount {
			t.Error("expected distinct mount points")
		}
	})

	t.Run("filters mark the active category", func(t *testing.T) {
		doc := render(t, NewPage(categories, nil, "Living Room", "lamp", 1))
		links := doc.Find(".filters a")
		if links.Length() != 3 || links.First().Text() != models.AllCategories {
			t.Fatalf("expected All plus categories, got %d links", links.Length())
		}
		active := doc.Find(".filters a.active")
		if active.Text() != "Living Room" {
			t.Errorf("expected Living Room active, got %q", active.Text())
		}
		if href := active.AttrOr("href", ""); href != "/?category=Living%20Room&q=lamp" {
			t.Errorf("unexpected filter href %q", href)
		}
		if doc.Find(".search input[name=q]").AttrOr("value", "") != "lamp" {
			t.Error("expected query preserved in search box")
		}
	})

	t.Run("errors are shown", func(t *testing.T) {
		p := NewPage(categories, nil, "", "", 0)
		p.Error = "url is required"
		doc := render(t, p)
		if doc.Find(".error").Text() != "url is required" {
			t.Errorf("unexpected error %q", doc.Find(".error").Text())
		}
	})
}
