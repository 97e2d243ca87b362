package progress

import "fmt"

// CorruptStateError marks a persisted record that failed to parse. The
// affected card is treated as never reviewed; only that card's history
// is lost, the rest of the store stays usable.
type CorruptStateError struct {
	CardID string
	Err    error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("progress: corrupt state for card %q: %v", e.CardID, e.Err)
}

func (e *CorruptStateError) Unwrap() error { return e.Err }
