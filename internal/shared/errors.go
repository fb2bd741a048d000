package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Board errors
	ErrItemNotFound      = fmt.Errorf("item not found")
	ErrCategoryNotFound  = fmt.Errorf("category not found")
	ErrCategoryExists    = fmt.Errorf("category already exists")
	ErrImmutable         = fmt.Errorf("items are immutable")
	ErrUnsupportedFormat = fmt.Errorf("unsupported format")
	ErrInvalidBoard      = fmt.Errorf("invalid board file")

	// Embed errors, absorbed by the player adapters and only logged
	ErrAPIUnavailable = fmt.Errorf("provider API unavailable")
	ErrPlayerControl  = fmt.Errorf("player control failed")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
