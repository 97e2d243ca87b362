package models

// Difficulty is an author-assigned hint on a 1-3 scale
type Difficulty int

const (
	DifficultyEasy   Difficulty = 1
	DifficultyMedium Difficulty = 2
	DifficultyHard   Difficulty = 3
)

// Card is a single flashcard as authored in a deck file
type Card struct {
	ID         string     `json:"id" db:"id"`
	Front      string     `json:"front" db:"front"` // Prompt side shown to the learner
	Back       string     `json:"back" db:"back"`   // Answer side revealed on request
	Difficulty Difficulty `json:"difficulty,omitempty" db:"difficulty"`
	ConceptRef string     `json:"concept_ref,omitempty" db:"concept_ref"` // Optional: link to related material
	Deck       string     `json:"deck,omitempty" db:"deck"`               // Stamped by the loader from the deck file name
}
