package physics

import "errors"

var (
	// ErrDegenerateGeometry indicates a body sitting exactly on an attractor,
	// where the direction of the pull is undefined.
	ErrDegenerateGeometry = errors.New("physics: body coincides with attractor")

	// ErrNonFinite indicates an acceleration or state containing NaN or Inf.
	ErrNonFinite = errors.New("physics: non-finite value")
)
