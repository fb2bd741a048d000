// Package services looks up display metadata for saved links over HTTP.
//
// # Service Interface
//
// Every lookup source implements [Service]. [Lookup] asks the first service
// that supports an item's provider.
//
// # oEmbed
//
// [OEmbedService] queries the public oEmbed endpoints of YouTube, Vimeo and
// TikTok. None of them need credentials.
//
// # Pages
//
// [PageService] fetches plain links and reads og:title, falling back to the
// document title.
//
// # Error Handling
//
// Non-2xx responses wrap [shared.ErrAPIUnavailable]. Providers without a
// lookup source return [shared.ErrNotImplemented].
package services
