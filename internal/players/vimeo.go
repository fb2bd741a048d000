package players

import (
	"time"

	"github.com/desertthunder/moodboard/internal/models"
)

// NewVimeo builds the Vimeo Player SDK adapter.
func NewVimeo(b Backend, opts Options) *ControlledAdapter {
	script := VimeoScript
	return newControlled(models.ProviderVimeo, &script, b, 200*time.Millisecond, opts)
}
