package ui

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/desertthunder/moodboard/internal/lifecycle"
	"github.com/desertthunder/moodboard/internal/models"
	"github.com/desertthunder/moodboard/internal/players"
)

// PreviewPlayer is a terminal stand-in for a provider player. It records the
// commands it receives so cards can show what a real player would be doing.
type PreviewPlayer struct {
	mu      sync.Mutex
	mediaID string
	playing bool
	muted   bool
	plays   int
}

func (p *PreviewPlayer) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = true
	p.plays++
	return nil
}

func (p *PreviewPlayer) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
	return nil
}

func (p *PreviewPlayer) Mute() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = true
	return nil
}

// Playing reports whether the last command was Play.
func (p *PreviewPlayer) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// PreviewBackend simulates a provider API: it is unavailable until its script
// loads, then creates players that report ready after readyDelay.
type PreviewBackend struct {
	available  atomic.Bool
	loadDelay  time.Duration
	readyDelay time.Duration

	mu      sync.Mutex
	players map[models.MountPoint]*PreviewPlayer
}

// NewPreviewBackend creates a backend that loads loadDelay after its script is injected.
func NewPreviewBackend(loadDelay, readyDelay time.Duration) *PreviewBackend {
	return &PreviewBackend{
		loadDelay:  loadDelay,
		readyDelay: readyDelay,
		players:    make(map[models.MountPoint]*PreviewPlayer),
	}
}

func (b *PreviewBackend) Available() bool { return b.available.Load() }

// Load marks the API available after the backend's load delay.
func (b *PreviewBackend) Load() {
	if b.loadDelay <= 0 {
		b.available.Store(true)
		return
	}
	time.AfterFunc(b.loadDelay, func() { b.available.Store(true) })
}

// NewPlayer creates a player for mp and calls ready from a timer goroutine.
func (b *PreviewBackend) NewPlayer(mp models.MountPoint, mediaID string, ready func(players.Player)) error {
	p := &PreviewPlayer{mediaID: mediaID}
	b.mu.Lock()
	b.players[mp] = p
	b.mu.Unlock()

	if b.readyDelay <= 0 {
		go ready(p)
		return nil
	}
	time.AfterFunc(b.readyDelay, func() { ready(p) })
	return nil
}

// Player returns the player created for mp.
func (b *PreviewBackend) Player(mp models.MountPoint) (*PreviewPlayer, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.players[mp]
	return p, ok
}

// Previews is the set of simulated backends the browser plays through.
type Previews struct {
	YouTube   *PreviewBackend
	Vimeo     *PreviewBackend
	Facebook  *PreviewBackend
	FileVideo *PreviewBackend
}

// NewPreviews creates simulated backends. File video needs no script and
// starts available.
func NewPreviews(loadDelay, readyDelay time.Duration) *Previews {
	p := &Previews{
		YouTube:   NewPreviewBackend(loadDelay, readyDelay),
		Vimeo:     NewPreviewBackend(loadDelay, readyDelay),
		Facebook:  NewPreviewBackend(loadDelay, readyDelay),
		FileVideo: NewPreviewBackend(0, readyDelay),
	}
	p.FileVideo.Load()
	return p
}

// Backends adapts the previews for [lifecycle.NewAdapters].
func (p *Previews) Backends() lifecycle.Backends {
	return lifecycle.Backends{
		YouTube:   p.YouTube,
		Vimeo:     p.Vimeo,
		Facebook:  p.Facebook,
		FileVideo: p.FileVideo,
	}
}

// Injector loads the backend a provider script belongs to.
func (p *Previews) Injector() players.Injector {
	return players.InjectorFunc(func(s players.Script) {
		switch s.ID {
		case players.YouTubeScript.ID:
			p.YouTube.Load()
		case players.VimeoScript.ID:
			p.Vimeo.Load()
		case players.FacebookScript.ID:
			p.Facebook.Load()
		}
	})
}
