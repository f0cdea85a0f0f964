package models

// Card represents a single flashcard within a set
type Card struct {
	SetName    string `json:"set_name" db:"set_name"`
	Word       string `json:"word" db:"word"`
	Answer     string `json:"answer" db:"answer"`
	Level      int    `json:"level" db:"level"`             // Leitner level; a cache of the history-derived level
	NextReview string `json:"next_review" db:"next_review"` // RFC3339 timestamp of the next scheduled review
}

// CardSet groups flashcards under a named set
type CardSet struct {
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	CardCount   int    `json:"card_count" db:"card_count"`
}
