package database

import (
	"fmt"

	"github.com/example/flashdeck/pkg/models"
)

// SetRepository handles database operations for card sets
type SetRepository struct{}

// NewSetRepository creates a new repository instance
func NewSetRepository() *SetRepository {
	return &SetRepository{}
}

// GetAll returns every set with its card count
func (r *SetRepository) GetAll() ([]models.CardSet, error) {
	var sets []models.CardSet
	err := DB.Select(&sets, `
		SELECT s.name, s.description, COUNT(c.word) AS card_count
		FROM sets s
		LEFT JOIN cards c ON c.set_name = s.name
		GROUP BY s.name, s.description
		ORDER BY s.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get sets: %v", err)
	}
	return sets, nil
}

// Get returns one set by name
func (r *SetRepository) Get(name string) (*models.CardSet, error) {
	var set models.CardSet
	err := DB.Get(&set, `
		SELECT s.name, s.description, COUNT(c.word) AS card_count
		FROM sets s
		LEFT JOIN cards c ON c.set_name = s.name
		WHERE s.name = $1
		GROUP BY s.name, s.description
	`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get set: %v", err)
	}
	return &set, nil
}

// Exists reports whether a set with the given name exists
func (r *SetRepository) Exists(name string) (bool, error) {
	var count int
	if err := DB.Get(&count, "SELECT COUNT(*) FROM sets WHERE name = $1", name); err != nil {
		return false, fmt.Errorf("failed to check set: %v", err)
	}
	return count > 0, nil
}

// Create inserts a new set. Fails if the set already exists.
func (r *SetRepository) Create(name, description string) error {
	if _, err := DB.Exec("INSERT INTO sets (name, description) VALUES ($1, $2)", name, description); err != nil {
		return fmt.Errorf("failed to create set: %v", err)
	}
	return nil
}

// Delete removes a set and all of its cards
func (r *SetRepository) Delete(name string) error {
	if _, err := DB.Exec("DELETE FROM cards WHERE set_name = $1", name); err != nil {
		return fmt.Errorf("failed to delete cards: %v", err)
	}
	if _, err := DB.Exec("DELETE FROM sets WHERE name = $1", name); err != nil {
		return fmt.Errorf("failed to delete set: %v", err)
	}
	return nil
}
