package players

import "github.com/desertthunder/moodboard/internal/models"

// NewFileVideo builds the adapter for direct video files played by the host's
// native player. No script is involved; the backend is expected to be
// available immediately.
func NewFileVideo(b Backend, opts Options) *ControlledAdapter {
	return newControlled(models.ProviderFileVideo, nil, b, defaultPollInterval, opts)
}
