package database

import (
	"fmt"
	"time"

	"github.com/example/flashdeck/pkg/models"
)

// CardRepository handles database operations for cards
type CardRepository struct{}

// NewCardRepository creates a new repository instance
func NewCardRepository() *CardRepository {
	return &CardRepository{}
}

// GetBySet returns all cards of a set
func (r *CardRepository) GetBySet(setName string) ([]models.Card, error) {
	var cards []models.Card
	err := DB.Select(&cards, "SELECT * FROM cards WHERE set_name = $1 ORDER BY word", setName)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards: %v", err)
	}
	return cards, nil
}

// Get returns a single card
func (r *CardRepository) Get(setName, word string) (*models.Card, error) {
	var card models.Card
	err := DB.Get(&card, "SELECT * FROM cards WHERE set_name = $1 AND word = $2", setName, word)
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %v", err)
	}
	return &card, nil
}

// Upsert creates or replaces a card
func (r *CardRepository) Upsert(card *models.Card) error {
	// Check whether the card exists first; SQLite's ON CONFLICT support
	// varies with driver version.
	var count int
	err := DB.Get(&count, "SELECT COUNT(*) FROM cards WHERE set_name = $1 AND word = $2", card.SetName, card.Word)
	if err != nil {
		return fmt.Errorf("failed to check card: %v", err)
	}

	if count > 0 {
		_, err = DB.Exec(
			"UPDATE cards SET answer = $1, level = $2, next_review = $3 WHERE set_name = $4 AND word = $5",
			card.Answer, card.Level, card.NextReview, card.SetName, card.Word,
		)
		if err != nil {
			return fmt.Errorf("failed to update card: %v", err)
		}
		return nil
	}

	_, err = DB.Exec(
		"INSERT INTO cards (set_name, word, answer, level, next_review) VALUES ($1, $2, $3, $4, $5)",
		card.SetName, card.Word, card.Answer, card.Level, card.NextReview,
	)
	if err != nil {
		return fmt.Errorf("failed to insert card: %v", err)
	}
	return nil
}

// UpdateSchedule writes the scheduler's output for a card
func (r *CardRepository) UpdateSchedule(setName, word string, level int, nextReview time.Time) error {
	_, err := DB.Exec(
		"UPDATE cards SET level = $1, next_review = $2 WHERE set_name = $3 AND word = $4",
		level, nextReview.Format(time.RFC3339), setName, word,
	)
	if err != nil {
		return fmt.Errorf("failed to update card schedule: %v", err)
	}
	return nil
}

// Delete removes a card from a set
func (r *CardRepository) Delete(setName, word string) error {
	if _, err := DB.Exec("DELETE FROM cards WHERE set_name = $1 AND word = $2", setName, word); err != nil {
		return fmt.Errorf("failed to delete card: %v", err)
	}
	return nil
}

// Due returns the cards of a set due for review at the given time.
// Cards that have never been scheduled count as due.
func (r *CardRepository) Due(setName string, now time.Time) ([]models.Card, error) {
	cards, err := r.GetBySet(setName)
	if err != nil {
		return nil, err
	}

	var due []models.Card
	for _, card := range cards {
		if card.NextReview == "" {
			due = append(due, card)
			continue
		}
		next, err := time.Parse(time.RFC3339, card.NextReview)
		if err != nil || !next.After(now) {
			due = append(due, card)
		}
	}
	return due, nil
}

// CountDue returns the number of due cards across all sets
func (r *CardRepository) CountDue(now time.Time) (int, error) {
	var cards []models.Card
	if err := DB.Select(&cards, "SELECT * FROM cards"); err != nil {
		return 0, fmt.Errorf("failed to get cards: %v", err)
	}

	count := 0
	for _, card := range cards {
		if card.NextReview == "" {
			count++
			continue
		}
		next, err := time.Parse(time.RFC3339, card.NextReview)
		if err != nil || !next.After(now) {
			count++
		}
	}
	return count, nil
}
