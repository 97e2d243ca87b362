// Package deck loads card catalogs from JSON deck files.
package deck

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/example/recall/pkg/models"
)

// ErrDuplicateID is returned when two cards share an id. Card ids must
// stay unique across every deck, since progress is keyed by them.
var ErrDuplicateID = errors.New("deck: duplicate card id")

// Deck is one deck file's worth of cards
type Deck struct {
	Name  string
	Cards []models.Card
}

// deckFile is the JSON layout of a single deck file. A missing name
// falls back to the file name.
type deckFile struct {
	Name  string        `json:"name"`
	Cards []models.Card `json:"cards"`
}

// LoadDir reads every *.json file in dir as a deck, validates the
// cards and stamps each card with its deck name. Decks come back
// sorted by name.
func LoadDir(dir string) ([]Deck, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan deck directory: %w", err)
	}
	if len(paths) == 0 {
		if _, err := os.Stat(dir); err != nil {
			return nil, fmt.Errorf("failed to open deck directory: %w", err)
		}
	}

	seen := make(map[string]string) // card id -> deck name
	decks := make([]Deck, 0, len(paths))
	for _, path := range paths {
		deck, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		for _, card := range deck.Cards {
			if owner, dup := seen[card.ID]; dup {
				return nil, fmt.Errorf("%w: %q appears in %q and %q",
					ErrDuplicateID, card.ID, owner, deck.Name)
			}
			seen[card.ID] = deck.Name
		}
		decks = append(decks, deck)
	}

	sort.Slice(decks, func(i, j int) bool { return decks[i].Name < decks[j].Name })
	return decks, nil
}

// Flatten concatenates all decks into a single catalog
func Flatten(decks []Deck) []models.Card {
	var catalog []models.Card
	for _, deck := range decks {
		catalog = append(catalog, deck.Cards...)
	}
	return catalog
}

func loadFile(path string) (Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Deck{}, fmt.Errorf("failed to read deck %s: %w", path, err)
	}

	var file deckFile
	if err := json.Unmarshal(data, &file); err != nil {
		return Deck{}, fmt.Errorf("failed to parse deck %s: %w", path, err)
	}

	name := file.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), ".json")
	}

	for i := range file.Cards {
		if err := validateCard(file.Cards[i]); err != nil {
			return Deck{}, fmt.Errorf("deck %s: card %d: %w", path, i, err)
		}
		file.Cards[i].Deck = name
	}

	return Deck{Name: name, Cards: file.Cards}, nil
}

func validateCard(card models.Card) error {
	return validation.ValidateStruct(&card,
		validation.Field(&card.ID, validation.Required),
		validation.Field(&card.Front, validation.Required),
		validation.Field(&card.Back, validation.Required),
		validation.Field(&card.Difficulty,
			validation.Min(models.DifficultyEasy),
			validation.Max(models.DifficultyHard)),
	)
}
