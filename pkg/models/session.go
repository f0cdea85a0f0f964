package models

import "time"

// SessionRecord is one completed review session as stored in the history log.
// Results maps each reviewed word to 1 (correct) or 0 (incorrect); words not
// shown in the session are absent.
type SessionRecord struct {
	Timestamp time.Time      `json:"timestamp"`
	Set       string         `json:"set"`
	Score     int            `json:"score"`
	Total     int            `json:"total"`
	Results   map[string]int `json:"results"`
}

// Reviewed reports whether the given word was part of this session.
func (r SessionRecord) Reviewed(word string) bool {
	_, ok := r.Results[word]
	return ok
}
