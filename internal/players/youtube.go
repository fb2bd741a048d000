package players

import (
	"time"

	"github.com/desertthunder/moodboard/internal/models"
)

// NewYouTube builds the YouTube IFrame API adapter. The iframe is embedded
// with enablejsapi=1 and mute=1 so the API can drive it.
func NewYouTube(b Backend, opts Options) *ControlledAdapter {
	script := YouTubeScript
	return newControlled(models.ProviderYouTube, &script, b, 100*time.Millisecond, opts)
}
