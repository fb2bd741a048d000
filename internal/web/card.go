package web

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"

	"github.com/desertthunder/moodboard/internal/classify"
	"github.com/desertthunder/moodboard/internal/models"
	"github.com/desertthunder/moodboard/internal/players"
)

// Media kinds select the card's media block.
const (
	KindYouTube   = "youtube"
	KindVimeo     = "vimeo"
	KindTikTok    = "tiktok"
	KindInstagram = "instagram"
	KindFacebook  = "facebook"
	KindFBShort   = "fbshort"
	KindImage     = "image"
	KindVideo     = "video"
	KindLink      = "link"
	KindFallback  = "fallback"
)

const (
	noteYouTube = "Couldn't parse YouTube ID."
	noteVimeo   = "Couldn't parse Vimeo ID."
	noteTikTok  = "Paste a TikTok video URL"
)

// Card is the view model for one rendered item.
type Card struct {
	ID       string
	Mount    models.MountPoint
	URL      string
	Title    string
	Category string
	Notes    string
	Provider models.Provider
	Kind     string
	Src      string
	Note     string
	// Script is the provider script the card depends on, if any.
	Script *players.Script
}

var cardTmpl = template.Must(template.New("card").Parse(`<article class="card" id="item-{{.ID}}" data-mount="{{.Mount}}" data-provider="{{.Provider}}">
<div class="media media-{{.Kind}}">
{{- if eq .Kind "youtube"}}
<iframe title="YouTube" src="{{.Src}}" allow="autoplay; encrypted-media; picture-in-picture" allowfullscreen></iframe>
{{- else if eq .Kind "vimeo"}}
<iframe title="Vimeo" src="{{.Src}}" allow="autoplay; encrypted-media; picture-in-picture" allowfullscreen></iframe>
{{- else if eq .Kind "tiktok"}}
<iframe title="TikTok" src="{{.Src}}" allow="autoplay; encrypted-media; picture-in-picture; clipboard-write" allowfullscreen></iframe>
{{- else if eq .Kind "instagram"}}
<blockquote class="instagram-media" data-instgrm-permalink="{{.URL}}" data-instgrm-version="14"><a href="{{.URL}}" target="_blank" rel="noreferrer">View on Instagram</a></blockquote>
{{- else if eq .Kind "facebook"}}
<iframe title="Facebook" src="{{.Src}}" allow="autoplay; encrypted-media; clipboard-write; picture-in-picture; web-share" allowfullscreen></iframe>
{{- else if eq .Kind "fbshort"}}
<div class="fallback"><div class="note">That's an fb.watch short link. Open it and copy the full post/video URL (e.g. /videos/… or watch/?v=…).</div><a href="{{.URL}}" target="_blank" rel="noreferrer">Open on Facebook</a></div>
{{- else if eq .Kind "image"}}
<img src="{{.URL}}" alt="" loading="lazy">
{{- else if eq .Kind "video"}}
<video src="{{.URL}}" controls loop muted playsinline></video>
{{- else if eq .Kind "fallback"}}
<div class="fallback"><div class="note">{{.Note}}</div><a href="{{.URL}}" target="_blank" rel="noreferrer">{{.URL}}</a></div>
{{- else}}
<div class="link-card"><a href="{{.URL}}" target="_blank" rel="noreferrer">{{.URL}}</a></div>
{{- end}}
</div>
<div class="content">
<h3 class="title">{{.Title}}</h3>
<div class="meta">
<span class="tag">{{.Category}}</span>
<a class="open" href="{{.URL}}" target="_blank" rel="noreferrer">Open</a>
<form class="delete" method="post" action="/items/{{.ID}}/delete"><button type="submit">Delete</button></form>
</div>
{{- if .Notes}}
<div class="note">{{.Notes}}</div>
{{- end}}
<div class="url">{{.URL}}</div>
</div>
</article>
`))

// NewCard classifies the item's URL and builds its view model.
func NewCard(item *models.Item, mp models.MountPoint) Card {
	c := Card{
		ID:       item.ID(),
		Mount:    mp,
		URL:      item.URL(),
		Title:    item.DisplayTitle(),
		Category: item.Category(),
		Notes:    item.Notes(),
	}
	res := classify.Classify(item.URL())
	c.Provider = res.Provider

	switch res.Provider {
	case models.ProviderYouTube:
		if res.MediaID == "" {
			c.Kind, c.Note = KindFallback, noteYouTube
			break
		}
		c.Kind = KindYouTube
		c.Src = YouTubeEmbedURL(res.MediaID)
		c.Script = &players.YouTubeScript
	case models.ProviderVimeo:
		if res.MediaID == "" {
			c.Kind, c.Note = KindFallback, noteVimeo
			break
		}
		c.Kind = KindVimeo
		c.Src = VimeoEmbedURL(res.MediaID)
		c.Script = &players.VimeoScript
	case models.ProviderTikTok:
		if res.MediaID == "" {
			c.Kind, c.Note = KindFallback, noteTikTok
			break
		}
		c.Kind = KindTikTok
		c.Src = TikTokEmbedURL(res.MediaID)
	case models.ProviderInstagram:
		c.Kind = KindInstagram
		c.Script = &players.InstagramScript
	case models.ProviderFacebook:
		c.Kind, c.Src = facebookMedia(res)
	case models.ProviderImage:
		c.Kind = KindImage
	case models.ProviderFileVideo:
		c.Kind = KindVideo
	default:
		c.Kind = KindLink
	}
	return c
}

func facebookMedia(res classify.Result) (string, string) {
	if res.Facebook == nil {
		return KindLink, ""
	}
	switch res.Facebook.Kind {
	case classify.FacebookVideo:
		return KindFacebook, FacebookPluginURL("video.php", res.Facebook.Href)
	case classify.FacebookPost:
		return KindFacebook, FacebookPluginURL("post.php", res.Facebook.Href)
	case classify.FacebookShort:
		return KindFBShort, ""
	default:
		return KindLink, ""
	}
}

// YouTubeEmbedURL returns a muted inline player URL with the JS API enabled.
func YouTubeEmbedURL(id string) string {
	return fmt.Sprintf("https://www.youtube.com/embed/%s?enablejsapi=1&rel=0&mute=1&playsinline=1", url.PathEscape(id))
}

func VimeoEmbedURL(id string) string {
	return fmt.Sprintf("https://player.vimeo.com/video/%s?muted=1&pip=1&playsinline=1", url.PathEscape(id))
}

func TikTokEmbedURL(id string) string {
	return "https://www.tiktok.com/embed/v2/video/" + url.PathEscape(id)
}

// FacebookPluginURL builds a plugin iframe URL (video.php or post.php) for href.
func FacebookPluginURL(plugin, href string) string {
	return fmt.Sprintf("https://www.facebook.com/plugins/%s?href=%s&show_text=false&width=560", plugin, url.QueryEscape(href))
}

// Render writes the card's HTML.
func (c Card) Render() (template.HTML, error) {
	var buf bytes.Buffer
	if err := cardTmpl.Execute(&buf, c); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// RenderCard renders item at mount point mp.
func RenderCard(item *models.Item, mp models.MountPoint) (template.HTML, error) {
	return NewCard(item, mp).Render()
}
