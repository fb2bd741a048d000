package players

import "github.com/desertthunder/moodboard/internal/models"

// NewFacebook builds the adapter for Facebook video plugins. Facebook posts
// and short links are not controllable and use [NewStatic] instead.
//
// The SDK only reports players through its xfbml.ready event, so a backend
// that never receives one leaves the registration NotReady.
func NewFacebook(b Backend, opts Options) *ControlledAdapter {
	script := FacebookScript
	return newControlled(models.ProviderFacebook, &script, b, defaultPollInterval, opts)
}
