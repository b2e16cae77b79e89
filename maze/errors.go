package maze

import (
	"github.com/pkg/errors"
)

// Sentinel errors. Callers match with errors.Is; returned errors wrap these with context.
var (
	ErrInvalidPattern    = errors.New("invalid pattern")
	ErrInvalidDimensions = errors.New("invalid dimensions")
	ErrEmptyRoomList     = errors.New("no interior rooms")
)
