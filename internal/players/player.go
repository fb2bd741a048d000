package players

import (
	"context"
	"fmt"

	"github.com/desertthunder/moodboard/internal/models"
)

// Player is the control handle of a mounted third-party player.
type Player interface {
	Play() error
	Pause() error
	Mute() error
}

// Backend is a provider's player API as seen from the host environment.
//
// Available is polled from a background goroutine and must be safe for
// concurrent use. NewPlayer is called on the queue; ready may be invoked from
// any goroutine, at most once, when the player becomes controllable.
type Backend interface {
	Available() bool
	NewPlayer(mp models.MountPoint, mediaID string, ready func(Player)) error
}

// Adapter is the capability set implemented once per provider.
type Adapter interface {
	Provider() models.Provider
	Mount(mp models.MountPoint, mediaID string) *Registration
	OnVisibilityChange(reg *Registration, visible bool)
	Dispose(reg *Registration)
}

// State is the lifecycle state of a [Registration].
type State int

const (
	StateMounting State = iota
	StateNotReady
	StateReady
	StateDisposed
	// StateStatic marks embeds that render once and never take playback commands.
	StateStatic
)

func (s State) String() string {
	switch s {
	case StateMounting:
		return "mounting"
	case StateNotReady:
		return "not_ready"
	case StateReady:
		return "ready"
	case StateDisposed:
		return "disposed"
	case StateStatic:
		return "static"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Playback is the last command applied to a registration's player.
type Playback int

const (
	PlaybackIdle Playback = iota
	PlaybackPlaying
	PlaybackPaused
)

func (p Playback) String() string {
	switch p {
	case PlaybackPlaying:
		return "playing"
	case PlaybackPaused:
		return "paused"
	default:
		return "idle"
	}
}

// Registration is the live binding between one mounted embed and its
// playback control state. It is owned by the lifecycle coordinator and only
// mutated on the dispatch queue.
type Registration struct {
	mount          models.MountPoint
	provider       models.Provider
	mediaID        string
	state          State
	player         Player
	desiredVisible bool
	playback       Playback
	muted          bool
	cancel         context.CancelFunc
}

func newRegistration(mp models.MountPoint, provider models.Provider, mediaID string) *Registration {
	return &Registration{mount: mp, provider: provider, mediaID: mediaID, state: StateMounting}
}

func (r *Registration) Mount() models.MountPoint  { return r.mount }
func (r *Registration) Provider() models.Provider { return r.provider }
func (r *Registration) MediaID() string           { return r.mediaID }
func (r *Registration) State() State              { return r.state }
func (r *Registration) Ready() bool               { return r.state == StateReady }
func (r *Registration) DesiredVisible() bool      { return r.desiredVisible }
func (r *Registration) Playback() Playback        { return r.playback }
func (r *Registration) Muted() bool               { return r.muted }
