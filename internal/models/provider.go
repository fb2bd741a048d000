package models

import (
	"fmt"

	"github.com/desertthunder/moodboard/internal/shared"
)

// Provider is the external platform a saved URL belongs to.
type Provider string

const (
	ProviderYouTube   Provider = "youtube"
	ProviderTikTok    Provider = "tiktok"
	ProviderInstagram Provider = "instagram"
	ProviderFacebook  Provider = "facebook"
	ProviderVimeo     Provider = "vimeo"
	ProviderImage     Provider = "image"
	ProviderFileVideo Provider = "filevideo"
	ProviderLink      Provider = "link"
)

// Providers lists every provider in classification order.
var Providers = []Provider{
	ProviderYouTube,
	ProviderVimeo,
	ProviderTikTok,
	ProviderInstagram,
	ProviderFacebook,
	ProviderImage,
	ProviderFileVideo,
	ProviderLink,
}

// Valid reports whether p is one of the known providers.
func (p Provider) Valid() bool {
	for _, known := range Providers {
		if p == known {
			return true
		}
	}
	return false
}

// String returns the provider tag.
func (p Provider) String() string { return string(p) }

// Label returns a human-readable provider name.
func (p Provider) Label() string {
	switch p {
	case ProviderYouTube:
		return "YouTube"
	case ProviderTikTok:
		return "TikTok"
	case ProviderInstagram:
		return "Instagram"
	case ProviderFacebook:
		return "Facebook"
	case ProviderVimeo:
		return "Vimeo"
	case ProviderImage:
		return "Image"
	case ProviderFileVideo:
		return "Video"
	default:
		return "Link"
	}
}

// ParseProvider converts a stored tag into a [Provider].
func ParseProvider(s string) (Provider, error) {
	p := Provider(s)
	if !p.Valid() {
		return "", fmt.Errorf("%w: unknown provider %q", shared.ErrInvalidInput, s)
	}
	return p, nil
}

// MountPoint identifies the on-screen region an embed is attached to.
//
// A fresh mount point is created every time an item is (re)rendered, so two
// mounts of the same item never share one.
type MountPoint string

// NewMountPoint returns a unique mount point.
func NewMountPoint() MountPoint {
	return MountPoint("mp-" + shared.GenerateID())
}
