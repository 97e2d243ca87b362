package session

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	sr "github.com/example/recall/internal/spaced_repetition"
	"github.com/example/recall/pkg/models"
)

// Terminal is the stdin/stdout presenter
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal returns a presenter reading from in and writing to out
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// NewStdTerminal returns a presenter on the process's stdin and stdout
func NewStdTerminal() *Terminal {
	return NewTerminal(os.Stdin, os.Stdout)
}

var _ Presenter = (*Terminal)(nil)

// Review shows one card and prompts for a recall rating. Invalid input
// is re-prompted; EOF counts as quitting.
func (t *Terminal) Review(card models.Card, state *models.CardState, position, total int) (sr.Quality, bool, error) {
	fmt.Fprintf(t.out, "\n[%d/%d]", position, total)
	if card.Deck != "" {
		fmt.Fprintf(t.out, " %s", card.Deck)
	}
	if state != nil {
		fmt.Fprintf(t.out, "  (interval %dd, ease %.2f)", state.Interval, state.Easiness)
	} else {
		fmt.Fprintf(t.out, "  (new)")
	}
	fmt.Fprintf(t.out, "\n%s\n", card.Front)

	fmt.Fprint(t.out, "press enter to reveal... ")
	if _, err := t.in.ReadString('\n'); err != nil {
		fmt.Fprintln(t.out)
		return 0, true, nil
	}

	fmt.Fprintf(t.out, "%s\n", card.Back)

	for {
		fmt.Fprint(t.out, "recall 0-5 (q quits): ")
		line, err := t.in.ReadString('\n')
		if err != nil {
			fmt.Fprintln(t.out)
			return 0, true, nil
		}
		answer := strings.TrimSpace(line)
		if answer == "q" || answer == "quit" {
			return 0, true, nil
		}

		n, err := strconv.Atoi(answer)
		if err != nil {
			fmt.Fprintln(t.out, "please enter a number from 0 to 5, or q")
			continue
		}
		quality := sr.Quality(n)
		if err := quality.Validate(); err != nil {
			fmt.Fprintln(t.out, "please enter a number from 0 to 5, or q")
			continue
		}
		return quality, false, nil
	}
}

// QueueEmpty tells the learner nothing is due
func (t *Terminal) QueueEmpty(nextDue time.Time) {
	if nextDue.IsZero() {
		fmt.Fprintln(t.out, "Nothing to review. Add some decks first.")
		return
	}
	fmt.Fprintf(t.out, "Nothing due right now. Next review at %s.\n",
		nextDue.Format("2006-01-02 15:04"))
}

// Summary prints the end-of-session line
func (t *Terminal) Summary(rec models.SessionRecord) {
	if rec.Reviewed == 0 {
		fmt.Fprintln(t.out, "\nSession ended, nothing reviewed.")
		return
	}
	accuracy := float64(rec.Correct) / float64(rec.Reviewed) * 100
	fmt.Fprintf(t.out, "\nSession done: %d cards, %d correct (%.0f%%) in %s.\n",
		rec.Reviewed, rec.Correct, accuracy,
		rec.FinishedAt.Sub(rec.StartedAt).Round(time.Second))
}
