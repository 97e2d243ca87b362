package stats

import "github.com/example/recall/pkg/models"

// MasteredInterval is the interval, in days, from which a card counts
// as mastered. A display threshold only; nothing is persisted.
const MasteredInterval = 21

// Phase is the learning stage a card is in, derived from its state
type Phase int

const (
	// PhaseNew means the card has never been reviewed
	PhaseNew Phase = iota
	// PhaseLearning covers cards still on the initial short intervals
	PhaseLearning
	// PhaseReviewing covers cards on the multiplicative interval ladder
	PhaseReviewing
	// PhaseMastered labels reviewing cards whose interval passed the threshold
	PhaseMastered
)

func (p Phase) String() string {
	switch p {
	case PhaseNew:
		return "new"
	case PhaseLearning:
		return "learning"
	case PhaseReviewing:
		return "reviewing"
	case PhaseMastered:
		return "mastered"
	default:
		return "unknown"
	}
}

// PhaseOf derives the stage of a single card. A nil state means the
// card was never reviewed.
func PhaseOf(state *models.CardState) Phase {
	switch {
	case state == nil:
		return PhaseNew
	case state.Interval >= MasteredInterval:
		return PhaseMastered
	case state.Repetitions >= 2:
		return PhaseReviewing
	default:
		return PhaseLearning
	}
}
