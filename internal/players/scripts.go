package players

import "sync"

// Script is a provider API script tag.
type Script struct {
	ID  string
	Src string
}

var (
	YouTubeScript   = Script{ID: "youtube-iframe-api", Src: "https://www.youtube.com/iframe_api"}
	VimeoScript     = Script{ID: "vimeo-player-js", Src: "https://player.vimeo.com/api/player.js"}
	FacebookScript  = Script{ID: "facebook-jssdk", Src: "https://connect.facebook.net/en_US/sdk.js#xfbml=1&version=v18.0"}
	InstagramScript = Script{ID: "instgrm-embed", Src: "https://www.instagram.com/embed.js"}
)

// Injector places a script into the host page.
type Injector interface {
	InjectScript(s Script)
}

// InjectorFunc adapts a function to [Injector].
type InjectorFunc func(Script)

func (f InjectorFunc) InjectScript(s Script) { f(s) }

// ScriptRegistry remembers which scripts were injected so each id is injected
// at most once. Scripts are never removed.
type ScriptRegistry struct {
	mu       sync.Mutex
	seen     map[string]bool
	injected []Script
}

// DefaultScripts is the process-wide registry.
var DefaultScripts = NewScriptRegistry()

// NewScriptRegistry creates an empty [ScriptRegistry].
func NewScriptRegistry() *ScriptRegistry {
	return &ScriptRegistry{seen: make(map[string]bool)}
}

// Ensure injects s through inj unless a script with the same id was already
// injected, and reports whether it injected now. A nil injector records the
// script without placing it anywhere.
func (r *ScriptRegistry) Ensure(inj Injector, s Script) bool {
	r.mu.Lock()
	if r.seen[s.ID] {
		r.mu.Unlock()
		return false
	}
	r.seen[s.ID] = true
	r.injected = append(r.injected, s)
	r.mu.Unlock()

	if inj != nil {
		inj.InjectScript(s)
	}
	return true
}

// Injected reports whether a script with id has been injected.
func (r *ScriptRegistry) Injected(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seen[id]
}

// Scripts returns injected scripts in injection order.
func (r *ScriptRegistry) Scripts() []Script {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Script, len(r.injected))
	copy(out, r.injected)
	return out
}
