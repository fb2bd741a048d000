package players

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodboard/internal/dispatch"
	"github.com/desertthunder/moodboard/internal/models"
	"github.com/desertthunder/moodboard/internal/shared"
)

const (
	defaultPollInterval = 250 * time.Millisecond
	defaultPollAttempts = 40
)

// Options configures the adapters built by this package.
type Options struct {
	Queue    *dispatch.Queue
	Scripts  *ScriptRegistry // defaults to DefaultScripts
	Injector Injector
	Logger   *log.Logger

	// PollInterval and PollAttempts bound the wait for a provider API to load.
	// Zero keeps the provider's default.
	PollInterval time.Duration
	PollAttempts int
}

// ControlledAdapter drives a provider [Backend] through the registration
// lifecycle. Each active provider is a ControlledAdapter with its own script,
// backend and polling cadence.
type ControlledAdapter struct {
	provider models.Provider
	script   *Script
	backend  Backend
	queue    *dispatch.Queue
	scripts  *ScriptRegistry
	injector Injector
	interval time.Duration
	attempts int
	logger   *log.Logger
}

func newControlled(provider models.Provider, script *Script, backend Backend, interval time.Duration, opts Options) *ControlledAdapter {
	if opts.Queue == nil {
		opts.Queue = dispatch.NewQueue()
	}
	if opts.Scripts == nil {
		opts.Scripts = DefaultScripts
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.PollInterval > 0 {
		interval = opts.PollInterval
	}
	attempts := defaultPollAttempts
	if opts.PollAttempts > 0 {
		attempts = opts.PollAttempts
	}
	return &ControlledAdapter{
		provider: provider,
		script:   script,
		backend:  backend,
		queue:    opts.Queue,
		scripts:  opts.Scripts,
		injector: opts.Injector,
		interval: interval,
		attempts: attempts,
		logger:   shared.WithLogger(opts.Logger, "component", "player", "provider", provider.String()),
	}
}

func (a *ControlledAdapter) Provider() models.Provider { return a.provider }

// Mount ensures the provider script is present and starts creating a player
// for mediaID at mp. The registration stays Mounting until the provider API is
// available and the player is requested.
func (a *ControlledAdapter) Mount(mp models.MountPoint, mediaID string) *Registration {
	reg := newRegistration(mp, a.provider, mediaID)
	if a.script != nil {
		a.scripts.Ensure(a.injector, *a.script)
	}

	ctx, cancel := context.WithCancel(context.Background())
	reg.cancel = cancel

	if a.backend.Available() {
		a.queue.Post(func() { a.create(reg) })
		return reg
	}

	go func() {
		err := dispatch.Poll(ctx, a.interval, a.attempts, a.backend.Available)
		a.queue.Post(func() {
			switch {
			case err == nil:
				a.create(reg)
			case errors.Is(err, context.Canceled):
			default:
				if reg.state == StateMounting {
					reg.state = StateNotReady
				}
				a.logger.Warn("player api unavailable", "mount", reg.mount, "error", fmt.Errorf("%w: %w", shared.ErrAPIUnavailable, err))
			}
		})
	}()
	return reg
}

func (a *ControlledAdapter) create(reg *Registration) {
	if reg.state != StateMounting {
		return
	}
	reg.state = StateNotReady
	err := a.backend.NewPlayer(reg.mount, reg.mediaID, func(p Player) {
		a.queue.Post(func() { a.ready(reg, p) })
	})
	if err != nil {
		a.logger.Warn("player create failed", "mount", reg.mount, "error", err)
	}
}

// ready moves reg into Ready exactly once and applies the buffered intent.
func (a *ControlledAdapter) ready(reg *Registration, p Player) {
	if reg.state != StateNotReady || p == nil {
		return
	}
	reg.player = p
	reg.state = StateReady
	a.logger.Debug("player ready", "mount", reg.mount, "visible", reg.desiredVisible)
	a.apply(reg, reg.desiredVisible)
}

// OnVisibilityChange records the desired state and, once the player is ready,
// applies it.
func (a *ControlledAdapter) OnVisibilityChange(reg *Registration, visible bool) {
	if reg == nil {
		return
	}
	switch reg.state {
	case StateDisposed, StateStatic:
		return
	}
	reg.desiredVisible = visible
	if reg.state == StateReady {
		a.apply(reg, visible)
	}
}

func (a *ControlledAdapter) apply(reg *Registration, visible bool) {
	if !visible {
		a.control(reg, "pause", reg.player.Pause)
		reg.playback = PlaybackPaused
		return
	}
	if !a.control(reg, "mute", reg.player.Mute) {
		return
	}
	reg.muted = true
	if a.control(reg, "play", reg.player.Play) {
		reg.playback = PlaybackPlaying
	}
}

// control runs one player command, absorbing errors and panics.
func (a *ControlledAdapter) control(reg *Registration, name string, fn func() error) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Debug("player command panicked", "mount", reg.mount, "command", name, "panic", r)
			ok = false
		}
	}()
	if err := fn(); err != nil {
		a.logger.Debug("player command failed", "mount", reg.mount, "command", name,
			"error", fmt.Errorf("%w: %w", shared.ErrPlayerControl, err))
		return false
	}
	return true
}

// Dispose releases reg. Pending API waits are cancelled and later ready
// signals are ignored.
func (a *ControlledAdapter) Dispose(reg *Registration) {
	if reg == nil || reg.state == StateDisposed {
		return
	}
	if reg.cancel != nil {
		reg.cancel()
	}
	reg.state = StateDisposed
	reg.player = nil
	a.logger.Debug("disposed", "mount", reg.mount)
}
