// Package web renders the moodboard as server-side HTML.
//
// Each item becomes a card whose media block depends on the URL's provider:
// iframes for YouTube, Vimeo, TikTok and Facebook plugins, a blockquote for
// Instagram, plain img and video elements for direct media and a link card for
// everything else. Cards that cannot be embedded explain why and link out.
//
// A page emits each provider script at most once, however many cards need it.
package web
