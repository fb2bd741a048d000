package players

import (
	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodboard/internal/models"
	"github.com/desertthunder/moodboard/internal/shared"
)

// StaticAdapter mounts embeds that render once and are never controlled:
// TikTok, Instagram, images, plain links and Facebook posts.
type StaticAdapter struct {
	provider models.Provider
	script   *Script
	scripts  *ScriptRegistry
	injector Injector
	logger   *log.Logger
}

// NewStatic builds a [StaticAdapter] for provider. Instagram injects its
// embed script on first mount.
func NewStatic(provider models.Provider, opts Options) *StaticAdapter {
	if opts.Scripts == nil {
		opts.Scripts = DefaultScripts
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	var script *Script
	if provider == models.ProviderInstagram {
		s := InstagramScript
		script = &s
	}
	return &StaticAdapter{
		provider: provider,
		script:   script,
		scripts:  opts.Scripts,
		injector: opts.Injector,
		logger:   shared.WithLogger(opts.Logger, "component", "player", "provider", provider.String()),
	}
}

func (a *StaticAdapter) Provider() models.Provider { return a.provider }

func (a *StaticAdapter) Mount(mp models.MountPoint, mediaID string) *Registration {
	if a.script != nil {
		a.scripts.Ensure(a.injector, *a.script)
	}
	reg := newRegistration(mp, a.provider, mediaID)
	reg.state = StateStatic
	return reg
}

// OnVisibilityChange is a no-op: static embeds never receive playback commands.
func (a *StaticAdapter) OnVisibilityChange(*Registration, bool) {}

func (a *StaticAdapter) Dispose(reg *Registration) {
	if reg == nil || reg.state == StateDisposed {
		return
	}
	reg.state = StateDisposed
	a.logger.Debug("disposed", "mount", reg.mount)
}
