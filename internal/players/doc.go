// Package players adapts third-party embeddable players to visibility-driven
// autoplay.
//
// # Adapters
//
// Every provider implements [Adapter]: Mount a media id into a mount point,
// react to visibility changes, Dispose. Active providers (YouTube, Vimeo,
// Facebook videos and native file video) use a [ControlledAdapter] wrapping
// a provider [Backend]; everything else uses a [StaticAdapter] that renders
// once and ignores visibility.
//
// # Registration lifecycle
//
//	Mounting -> NotReady -> Ready -> Disposed
//
// A [Registration] is Mounting while it waits for the provider API to load,
// and NotReady once the player has been requested but the provider has not
// yet reported it controllable. Visibility changes received before Ready are
// only recorded. Entering Ready applies the last recorded visibility
// immediately, so the result is the same whichever of "ready" and "visible"
// arrives first.
// Visible means Mute then Play; hidden means Pause. Play is skipped when Mute
// fails, so nothing ever autoplays with sound.
//
// # Failure policy
//
// Player commands are best effort: errors and panics from a handle are logged
// at debug and dropped. A provider API that never loads leaves its
// registrations NotReady for good, still buffering visibility harmlessly.
// Disposed registrations ignore late ready signals and visibility changes.
//
// # Scripts
//
// Provider API scripts are injected through a process-wide [ScriptRegistry]
// that injects each script id at most once and never removes it.
package players
