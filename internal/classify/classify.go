package classify

import (
	"net/url"
	"path"
	"strings"

	"github.com/desertthunder/moodboard/internal/models"
)

// Result is the outcome of classifying a URL.
type Result struct {
	Provider models.Provider
	MediaID  string
	// Facebook is set only for [models.ProviderFacebook].
	Facebook *FacebookEmbed
}

// Embeddable reports whether a live embed can be rendered.
//
// Providers that embed by id need one; image, file video and Instagram embed
// straight from the URL.
func (r Result) Embeddable() bool {
	switch r.Provider {
	case models.ProviderYouTube, models.ProviderVimeo, models.ProviderTikTok:
		return r.MediaID != ""
	case models.ProviderFacebook:
		return r.Facebook != nil && (r.Facebook.Kind == FacebookVideo || r.Facebook.Kind == FacebookPost)
	case models.ProviderLink:
		return false
	default:
		return true
	}
}

var (
	imageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".webp": true, ".gif": true}
	videoExts = map[string]bool{".mp4": true, ".webm": true, ".ogg": true}

	// mobileHosts fold to their desktop equivalents before matching.
	mobileHosts = map[string]string{
		"m.youtube.com":       "www.youtube.com",
		"music.youtube.com":   "www.youtube.com",
		"m.facebook.com":      "www.facebook.com",
		"mobile.facebook.com": "www.facebook.com",
		"touch.facebook.com":  "www.facebook.com",
		"m.vimeo.com":         "vimeo.com",
		"m.tiktok.com":        "www.tiktok.com",
	}
)

// Classify returns the provider and media id for raw.
func Classify(raw string) Result {
	u, ok := Normalize(raw)
	if !ok {
		return Result{Provider: models.ProviderLink}
	}

	host := strings.ToLower(u.Hostname())
	switch {
	case hostIs(host, "youtube.com", "youtu.be", "youtube-nocookie.com"):
		return Result{Provider: models.ProviderYouTube, MediaID: youTubeID(u)}
	case hostIs(host, "vimeo.com"):
		return Result{Provider: models.ProviderVimeo, MediaID: vimeoID(u)}
	case hostIs(host, "tiktok.com"):
		return Result{Provider: models.ProviderTikTok, MediaID: tikTokID(u)}
	case hostIs(host, "instagram.com"):
		return Result{Provider: models.ProviderInstagram, MediaID: instagramCode(u)}
	case hostIs(host, "facebook.com", "fb.watch"):
		fb := NormalizeFacebook(u.String())
		res := Result{Provider: models.ProviderFacebook, Facebook: &fb}
		if fb.Kind == FacebookVideo || fb.Kind == FacebookPost {
			res.MediaID = fb.Href
		}
		return res
	}

	ext := strings.ToLower(path.Ext(u.Path))
	switch {
	case imageExts[ext]:
		return Result{Provider: models.ProviderImage}
	case videoExts[ext]:
		return Result{Provider: models.ProviderFileVideo}
	}
	return Result{Provider: models.ProviderLink}
}

// Normalize trims raw, upgrades http to https, folds mobile hosts and parses
// the result. Input without a scheme, such as "youtu.be/abc", is read as
// https. ok is false for input that is not a web URL.
func Normalize(raw string) (*url.URL, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, false
	}
	if u.Scheme == "" {
		if u, err = url.Parse("https://" + strings.TrimPrefix(raw, "//")); err != nil || !strings.Contains(u.Host, ".") {
			return nil, false
		}
	}
	if u.Host == "" {
		return nil, false
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		u.Scheme = "https"
	default:
		return nil, false
	}

	host := strings.ToLower(u.Hostname())
	if desktop, ok := mobileHosts[host]; ok {
		if port := u.Port(); port != "" {
			desktop += ":" + port
		}
		u.Host = desktop
	}
	return u, true
}

// hostIs reports whether host equals one of domains or is a subdomain of one.
func hostIs(host string, domains ...string) bool {
	for _, d := range domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

func pathSegments(u *url.URL) []string {
	var segs []string
	for _, s := range strings.Split(u.Path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}
