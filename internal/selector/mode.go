package selector

import "fmt"

// Mode selects how a review queue is built
type Mode int

const (
	// ModeSpaced builds the queue from due and new cards under the
	// session caps. This is the default.
	ModeSpaced Mode = iota
	// ModeRandom samples uniformly from the whole catalog, ignoring
	// due dates entirely.
	ModeRandom
)

var modeNames = map[Mode]string{
	ModeSpaced: "spaced",
	ModeRandom: "random",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// MarshalText implements encoding.TextMarshaler
func (m Mode) MarshalText() ([]byte, error) {
	name, ok := modeNames[m]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(m))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMode converts a mode name ("spaced", "random") to a Mode
func ParseMode(name string) (Mode, error) {
	for mode, n := range modeNames {
		if n == name {
			return mode, nil
		}
	}
	return ModeSpaced, fmt.Errorf("%w: %q", ErrInvalidMode, name)
}
