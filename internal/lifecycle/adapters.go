package lifecycle

import (
	"github.com/desertthunder/moodboard/internal/classify"
	"github.com/desertthunder/moodboard/internal/models"
	"github.com/desertthunder/moodboard/internal/players"
)

// Backends are the host's player APIs for the controllable providers. A nil
// backend makes that provider render statically.
type Backends struct {
	YouTube   players.Backend
	Vimeo     players.Backend
	Facebook  players.Backend
	FileVideo players.Backend
}

// Adapters selects the adapter for a classified item.
type Adapters struct {
	byProvider     map[models.Provider]players.Adapter
	facebookStatic players.Adapter
}

// NewAdapters builds one adapter per provider.
func NewAdapters(b Backends, opts players.Options) *Adapters {
	a := &Adapters{byProvider: make(map[models.Provider]players.Adapter, len(models.Providers))}
	for _, p := range models.Providers {
		a.byProvider[p] = players.NewStatic(p, opts)
	}
	a.facebookStatic = a.byProvider[models.ProviderFacebook]

	if b.YouTube != nil {
		a.byProvider[models.ProviderYouTube] = players.NewYouTube(b.YouTube, opts)
	}
	if b.Vimeo != nil {
		a.byProvider[models.ProviderVimeo] = players.NewVimeo(b.Vimeo, opts)
	}
	if b.Facebook != nil {
		a.byProvider[models.ProviderFacebook] = players.NewFacebook(b.Facebook, opts)
	}
	if b.FileVideo != nil {
		a.byProvider[models.ProviderFileVideo] = players.NewFileVideo(b.FileVideo, opts)
	}
	return a
}

// For returns the adapter for res. Items without a usable media id, and
// Facebook posts or short links, fall back to static rendering.
func (a *Adapters) For(res classify.Result) players.Adapter {
	if res.Provider == models.ProviderFacebook && (res.Facebook == nil || res.Facebook.Kind != classify.FacebookVideo) {
		return a.facebookStatic
	}
	adapter, ok := a.byProvider[res.Provider]
	if !ok {
		return a.byProvider[models.ProviderLink]
	}
	if !res.Embeddable() {
		if _, static := adapter.(*players.StaticAdapter); !static {
			return a.byProvider[models.ProviderLink]
		}
	}
	return adapter
}
