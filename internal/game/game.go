package game

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/example/flashdeck/pkg/models"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	wordStyle    = lipgloss.NewStyle().Bold(true)
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	wrongStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// CardStore is the part of the card repository the game needs.
type CardStore interface {
	Due(setName string, now time.Time) ([]models.Card, error)
	UpdateSchedule(setName, word string, level int, nextReview time.Time) error
}

// ReviewScheduler computes the level and next review time for an outcome.
type ReviewScheduler interface {
	RecordOutcome(word, set string, correct bool) (int, time.Time)
}

// HistoryAppender records a finished session.
type HistoryAppender interface {
	Append(rec models.SessionRecord) error
}

// Summary is the result of one played session.
type Summary struct {
	Score   int
	Total   int
	Results map[string]int
}

// Game runs an interactive review session over the cards of one set.
type Game struct {
	cards   CardStore
	sched   ReviewScheduler
	history HistoryAppender
	limit   int

	in  *bufio.Reader
	out io.Writer
	now func() time.Time
	rng *rand.Rand
}

// New creates a game on stdin/stdout reviewing at most limit cards per
// session.
func New(cards CardStore, sched ReviewScheduler, history HistoryAppender, limit int) *Game {
	return &Game{
		cards:   cards,
		sched:   sched,
		history: history,
		limit:   limit,
		in:      bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		now:     time.Now,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithIO overrides the input and output streams. Used in tests.
func (g *Game) WithIO(in io.Reader, out io.Writer) *Game {
	g.in = bufio.NewReader(in)
	g.out = out
	return g
}

// WithClock overrides the clock. Used in tests.
func (g *Game) WithClock(now func() time.Time) *Game {
	g.now = now
	return g
}

// WithSeed makes the card shuffle deterministic. Used in tests.
func (g *Game) WithSeed(seed int64) *Game {
	g.rng = rand.New(rand.NewSource(seed))
	return g
}

// Play runs one session over the due cards of a set: prompt, compare,
// report each outcome to the scheduler, write the new schedule back, and
// append one record to the history log. Typing "exit" ends the session
// early; cards already answered still count.
func (g *Game) Play(setName string) (*Summary, error) {
	due, err := g.cards.Due(setName, g.now())
	if err != nil {
		return nil, fmt.Errorf("failed to load due cards: %v", err)
	}
	if len(due) == 0 {
		fmt.Fprintln(g.out, mutedStyle.Render("No cards due for review in this set."))
		return &Summary{Results: map[string]int{}}, nil
	}

	g.rng.Shuffle(len(due), func(i, j int) {
		due[i], due[j] = due[j], due[i]
	})
	if g.limit > 0 && len(due) > g.limit {
		due = due[:g.limit]
	}

	fmt.Fprintln(g.out, titleStyle.Render(fmt.Sprintf("Reviewing %q — %d cards. Type 'exit' to stop.", setName, len(due))))

	summary := &Summary{Results: make(map[string]int)}

	for _, card := range due {
		fmt.Fprintf(g.out, "\n%s\n> ", wordStyle.Render(card.Word))

		line, err := g.in.ReadString('\n')
		if err != nil && line == "" {
			break
		}
		answer := strings.TrimSpace(line)
		if strings.EqualFold(answer, "exit") {
			fmt.Fprintln(g.out, mutedStyle.Render("Session ended early."))
			break
		}

		correct := strings.EqualFold(answer, card.Answer)
		if correct {
			summary.Score++
			summary.Results[card.Word] = 1
			fmt.Fprintln(g.out, correctStyle.Render("Correct!"))
		} else {
			summary.Results[card.Word] = 0
			fmt.Fprintln(g.out, wrongStyle.Render(fmt.Sprintf("Incorrect. The answer is: %s", card.Answer)))
		}
		summary.Total++

		level, next := g.sched.RecordOutcome(card.Word, setName, correct)
		if err := g.cards.UpdateSchedule(setName, card.Word, level, next); err != nil {
			log.Printf("game: failed to save schedule for %q: %v", card.Word, err)
		}
		fmt.Fprintln(g.out, mutedStyle.Render(fmt.Sprintf("Level %d, next review %s", level, next.Format("Mon Jan 2 15:04"))))
	}

	if summary.Total == 0 {
		return summary, nil
	}

	accuracy := float64(summary.Score) / float64(summary.Total) * 100
	fmt.Fprintf(g.out, "\n%s\n", titleStyle.Render(fmt.Sprintf("Score: %d/%d (%.2f%%)", summary.Score, summary.Total, accuracy)))

	rec := models.SessionRecord{
		Timestamp: g.now(),
		Set:       setName,
		Score:     summary.Score,
		Total:     summary.Total,
		Results:   summary.Results,
	}
	if err := g.history.Append(rec); err != nil {
		return summary, fmt.Errorf("failed to save session history: %v", err)
	}

	return summary, nil
}
