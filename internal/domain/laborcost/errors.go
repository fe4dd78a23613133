package laborcost

import "errors"

// Labor cost domain errors
var (
	ErrEntryNotFound = errors.New("labor cost entry not found")
)
