package classify

import (
	"net/url"
	"regexp"
	"strings"
)

var tikTokVideoPath = regexp.MustCompile(`/video/(\d+)`)

// youTubeID handles youtu.be short links, watch?v= and /shorts/ or /embed/ paths.
func youTubeID(u *url.URL) string {
	segs := pathSegments(u)
	if hostIs(strings.ToLower(u.Hostname()), "youtu.be") {
		if len(segs) > 0 {
			return segs[0]
		}
		return ""
	}

	if v := u.Query().Get("v"); v != "" {
		return v
	}

	if len(segs) >= 2 && (segs[0] == "shorts" || segs[0] == "embed") {
		return segs[1]
	}
	return ""
}

// vimeoID returns the last path segment, ignoring a leading "video" segment
// (player.vimeo.com/video/<id>).
func vimeoID(u *url.URL) string {
	segs := pathSegments(u)
	if len(segs) > 0 && segs[0] == "video" {
		segs = segs[1:]
	}
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

func tikTokID(u *url.URL) string {
	if m := tikTokVideoPath.FindStringSubmatch(u.Path); m != nil {
		return m[1]
	}
	return ""
}

// instagramCode returns the post shortcode from /p/, /reel/ or /tv/ URLs.
func instagramCode(u *url.URL) string {
	segs := pathSegments(u)
	if len(segs) < 2 {
		return ""
	}
	switch segs[0] {
	case "p", "reel", "reels", "tv":
		return segs[1]
	}
	return ""
}
