package classify

import (
	"net/url"
	"regexp"
	"strings"
)

// FacebookKind says which Facebook plugin, if any, can embed a URL.
type FacebookKind string

const (
	FacebookVideo   FacebookKind = "video"
	FacebookPost    FacebookKind = "post"
	FacebookShort   FacebookKind = "short"
	FacebookUnknown FacebookKind = "unknown"
)

// FacebookEmbed is a Facebook URL resolved for embedding.
type FacebookEmbed struct {
	Href string
	Kind FacebookKind
}

var (
	fbMobilePrefix = regexp.MustCompile(`(?i)^https?://(m|mobile|touch)\.facebook\.com`)
	fbHTTPScheme   = regexp.MustCompile(`(?i)^http:`)
	fbShortLink    = regexp.MustCompile(`(?i)^https://fb\.watch/`)
	fbWatchV       = regexp.MustCompile(`(?i)/watch/?\?[^#]*v=(\d+)`)
	fbPageVideo    = regexp.MustCompile(`(?i)facebook\.com/[^/?#]+/videos/(\d+)`)
)

// NormalizeFacebook resolves raw into the href and plugin kind used to embed it.
func NormalizeFacebook(raw string) FacebookEmbed {
	href := strings.TrimSpace(raw)
	if href == "" {
		return FacebookEmbed{Kind: FacebookUnknown}
	}
	href = fbMobilePrefix.ReplaceAllString(href, "https://www.facebook.com")
	href = fbHTTPScheme.ReplaceAllString(href, "https:")

	if fbShortLink.MatchString(href) {
		if u, err := url.Parse(href); err == nil {
			if v := u.Query().Get("v"); v != "" {
				return FacebookEmbed{Href: watchHref(v), Kind: FacebookVideo}
			}
		}
		return FacebookEmbed{Href: href, Kind: FacebookShort}
	}

	u, err := url.Parse(href)
	if err != nil || !hostIs(strings.ToLower(u.Hostname()), "facebook.com") {
		return FacebookEmbed{Href: href, Kind: FacebookUnknown}
	}

	if m := fbWatchV.FindStringSubmatch(href); m != nil {
		return FacebookEmbed{Href: watchHref(m[1]), Kind: FacebookVideo}
	}
	if fbPageVideo.MatchString(href) {
		return FacebookEmbed{Href: href, Kind: FacebookVideo}
	}
	return FacebookEmbed{Href: href, Kind: FacebookPost}
}

func watchHref(v string) string {
	return "https://www.facebook.com/watch/?v=" + url.QueryEscape(v)
}
