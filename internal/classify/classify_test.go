package classify

import (
	"testing"

	"github.com/desertthunder/moodboard/internal/models"
)

func TestClassify(t *testing.T) {
	tc := []struct {
		name     string
		url      string
		provider models.Provider
		mediaID  string
	}{
		{name: "youtube short link", url: "https://youtu.be/abc123", provider: models.ProviderYouTube, mediaID: "abc123"},
		{name: "youtube watch with extra params", url: "https://www.youtube.com/watch?v=xyz987&t=30", provider: models.ProviderYouTube, mediaID: "xyz987"},
		{name: "youtube shorts", url: "https://youtube.com/shorts/sh0rt", provider: models.ProviderYouTube, mediaID: "sh0rt"},
		{name: "youtube embed", url: "https://www.youtube-nocookie.com/embed/emb3d", provider: models.ProviderYouTube, mediaID: "emb3d"},
		{name: "youtube mobile over http", url: "http://m.youtube.com/watch?v=mob1le", provider: models.ProviderYouTube, mediaID: "mob1le"},
		{name: "youtube without id", url: "https://www.youtube.com/@channel", provider: models.ProviderYouTube, mediaID: ""},
		{name: "vimeo video path", url: "https://vimeo.com/video/55555", provider: models.ProviderVimeo, mediaID: "55555"},
		{name: "vimeo plain", url: "https://vimeo.com/76979871", provider: models.ProviderVimeo, mediaID: "76979871"},
		{name: "vimeo player", url: "https://player.vimeo.com/video/123", provider: models.ProviderVimeo, mediaID: "123"},
		{name: "vimeo root", url: "https://vimeo.com/", provider: models.ProviderVimeo, mediaID: ""},
		{name: "tiktok video", url: "https://www.tiktok.com/@user/video/12345", provider: models.ProviderTikTok, mediaID: "12345"},
		{name: "tiktok profile", url: "https://www.tiktok.com/@user", provider: models.ProviderTikTok, mediaID: ""},
		{name: "instagram post", url: "https://www.instagram.com/p/C0deX/", provider: models.ProviderInstagram, mediaID: "C0deX"},
		{name: "instagram reel", url: "https://instagram.com/reel/R33l", provider: models.ProviderInstagram, mediaID: "R33l"},
		{name: "facebook page video", url: "https://www.facebook.com/page/videos/987", provider: models.ProviderFacebook, mediaID: "https://www.facebook.com/page/videos/987"},
		{name: "facebook watch", url: "http://m.facebook.com/watch/?v=42", provider: models.ProviderFacebook, mediaID: "https://www.facebook.com/watch/?v=42"},
		{name: "facebook short link", url: "https://fb.watch/xyz/", provider: models.ProviderFacebook, mediaID: ""},
		{name: "image with query", url: "https://example.com/photo.webp?x=1", provider: models.ProviderImage, mediaID: ""},
		{name: "image uppercase", url: "https://example.com/PHOTO.JPG", provider: models.ProviderImage, mediaID: ""},
		{name: "file video", url: "https://cdn.example.com/clip.mp4", provider: models.ProviderFileVideo, mediaID: ""},
		{name: "ogg video", url: "https://cdn.example.com/clip.ogg?dl=1", provider: models.ProviderFileVideo, mediaID: ""},
		{name: "youtube without scheme", url: "youtu.be/abc123", provider: models.ProviderYouTube, mediaID: "abc123"},
		{name: "tiktok without scheme", url: "www.tiktok.com/@user/video/12345", provider: models.ProviderTikTok, mediaID: "12345"},
		{name: "facebook without scheme", url: "www.facebook.com/page/videos/987", provider: models.ProviderFacebook, mediaID: "https://www.facebook.com/page/videos/987"},
		{name: "facebook mobile without scheme", url: "m.facebook.com/watch/?v=42", provider: models.ProviderFacebook, mediaID: "https://www.facebook.com/watch/?v=42"},
		{name: "scheme relative vimeo", url: "//vimeo.com/76979871", provider: models.ProviderVimeo, mediaID: "76979871"},
		{name: "image with fragment", url: "https://example.com/photo.png#crop", provider: models.ProviderImage, mediaID: ""},
		{name: "fragment only looks like an image", url: "https://example.com/page#photo.png", provider: models.ProviderLink, mediaID: ""},
		{name: "single word", url: "moodboard", provider: models.ProviderLink, mediaID: ""},
		{name: "generic link", url: "https://example.com/article", provider: models.ProviderLink, mediaID: ""},
		{name: "domain only in query", url: "https://example.com/?ref=youtube.com", provider: models.ProviderLink, mediaID: ""},
		{name: "empty", url: "", provider: models.ProviderLink, mediaID: ""},
		{name: "not a url", url: "just some words", provider: models.ProviderLink, mediaID: ""},
		{name: "malformed escape", url: "https://youtube.com/%zz", provider: models.ProviderLink, mediaID: ""},
		{name: "unsupported scheme", url: "ftp://example.com/photo.png", provider: models.ProviderLink, mediaID: ""},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.url)
			if got.Provider != tt.provider {
				t.Errorf("Classify(%q).Provider = %v, want %v", tt.url, got.Provider, tt.provider)
			}
			if got.MediaID != tt.mediaID {
				t.Errorf("Classify(%q).MediaID = %q, want %q", tt.url, got.MediaID, tt.mediaID)
			}
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	urls := []string{
		"https://youtu.be/abc123",
		"https://fb.watch/xyz/",
		"https://www.facebook.com/page/posts/1",
		"https://example.com/photo.webp?x=1",
		"::::",
	}

	for _, u := range urls {
		a, b := Classify(u), Classify(u)
		if a.Provider != b.Provider || a.MediaID != b.MediaID {
			t.Errorf("Classify(%q) not deterministic: %+v vs %+v", u, a, b)
		}
		if (a.Facebook == nil) != (b.Facebook == nil) || (a.Facebook != nil && *a.Facebook != *b.Facebook) {
			t.Errorf("Classify(%q) facebook result not deterministic", u)
		}
	}
}

func TestNormalizeFacebook(t *testing.T) {
	tc := []struct {
		name string
		url  string
		href string
		kind FacebookKind
	}{
		{name: "short link without v", url: "https://fb.watch/xyz/", href: "https://fb.watch/xyz/", kind: FacebookShort},
		{name: "short link with v", url: "https://fb.watch/abc/?v=777", href: "https://www.facebook.com/watch/?v=777", kind: FacebookVideo},
		{name: "watch url", url: "https://www.facebook.com/watch?foo=1&v=555", href: "https://www.facebook.com/watch/?v=555", kind: FacebookVideo},
		{name: "page video keeps href", url: "https://www.facebook.com/SomePage/videos/1234/", href: "https://www.facebook.com/SomePage/videos/1234/", kind: FacebookVideo},
		{name: "mobile host folded", url: "http://m.facebook.com/SomePage/videos/99", href: "https://www.facebook.com/SomePage/videos/99", kind: FacebookVideo},
		{name: "reel is a post", url: "https://www.facebook.com/reel/321", href: "https://www.facebook.com/reel/321", kind: FacebookPost},
		{name: "permalink is a post", url: "https://www.facebook.com/permalink.php?story_fbid=1&id=2", href: "https://www.facebook.com/permalink.php?story_fbid=1&id=2", kind: FacebookPost},
		{name: "empty", url: "  ", href: "", kind: FacebookUnknown},
		{name: "other domain", url: "https://example.com/videos/1", href: "https://example.com/videos/1", kind: FacebookUnknown},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeFacebook(tt.url)
			if got.Href != tt.href || got.Kind != tt.kind {
				t.Errorf("NormalizeFacebook(%q) = %+v, want {%s %s}", tt.url, got, tt.href, tt.kind)
			}
		})
	}

	t.Run("classify surfaces short kind", func(t *testing.T) {
		res := Classify("https://fb.watch/xyz/")
		if res.Facebook == nil || res.Facebook.Kind != FacebookShort {
			t.Fatalf("expected short facebook result, got %+v", res)
		}
		if res.Embeddable() {
			t.Error("short links must not be embeddable")
		}
	})
}

func TestResultEmbeddable(t *testing.T) {
	tc := []struct {
		url  string
		want bool
	}{
		{url: "https://youtu.be/abc123", want: true},
		{url: "https://www.youtube.com/@channel", want: false},
		{url: "https://www.tiktok.com/@user", want: false},
		{url: "https://www.instagram.com/someone/", want: true},
		{url: "https://www.facebook.com/page/posts/1", want: true},
		{url: "https://example.com/a.png", want: true},
		{url: "https://example.com/a.webm", want: true},
		{url: "https://example.com/", want: false},
	}

	for _, tt := range tc {
		t.Run(tt.url, func(t *testing.T) {
			if got := Classify(tt.url).Embeddable(); got != tt.want {
				t.Errorf("Embeddable() = %v, want %v", got, tt.want)
			}
		})
	}
}
