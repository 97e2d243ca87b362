package selector

import "errors"

var (
	// ErrInvalidCaps is returned for caps that cannot bound a session.
	ErrInvalidCaps = errors.New("selector: invalid caps")

	// ErrInvalidMode is returned for an unrecognized queue mode.
	ErrInvalidMode = errors.New("selector: invalid mode")
)
