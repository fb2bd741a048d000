// Package classify maps a pasted URL to the provider that hosts it and the
// provider-specific media identifier needed to embed it.
//
// [Classify] is a pure function of its input: it never touches the network,
// never panics and never returns an error. Unparseable input degrades to
// [models.ProviderLink]; a recognized provider whose identifier cannot be
// extracted yields an empty [Result.MediaID], which renderers treat as
// "show a fallback card with an outbound link".
//
// # Matching order
//
// After normalizing the scheme to https and folding mobile subdomains
// (m.youtube.com, m.facebook.com, ...), the host is tested in order:
// YouTube, Vimeo, TikTok, Instagram, Facebook, then the path extension for
// images (.png .jpg .jpeg .webp .gif) and video files (.mp4 .webm .ogg).
// Anything else is a plain link.
//
// # Facebook
//
// Facebook URLs are resolved to a [FacebookEmbed] carrying the canonical href
// and a [FacebookKind]. fb.watch short links without a "v" parameter cannot be
// embedded and are reported as [FacebookShort] so the UI can ask for the full
// URL instead.
package classify
