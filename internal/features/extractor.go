package features

import (
	"sort"
	"time"

	"github.com/example/flashdeck/pkg/models"
)

// Names lists the feature columns in their frozen order. Training and
// prediction both rely on this ordering; the predictor persists it as a
// manifest and refuses artifacts recorded against a different one.
var Names = []string{
	"avg_success_rate",
	"recent_success_rate",
	"total_reviews",
	"hour_of_day",
	"day_of_week",
	"last_interval_hours",
	"avg_interval_hours",
	"set_avg_success",
}

// Vector is one feature row, ordered as Names.
type Vector []float64

// minCardRows is the minimum number of sessions mentioning a card before
// its statistics carry any signal.
const minCardRows = 2

// Extractor computes feature vectors from review history.
type Extractor struct {
	now func() time.Time
}

// NewExtractor creates an extractor using the wall clock.
func NewExtractor() *Extractor {
	return &Extractor{now: time.Now}
}

// WithClock overrides the extractor's clock. Used in tests; the hour-of-day
// and day-of-week features are sampled from this clock at call time.
func (e *Extractor) WithClock(now func() time.Time) *Extractor {
	e.now = now
	return e
}

// CardRows returns the sessions mentioning the given word, oldest first.
// Mentions are not filtered by set: a card reviewed under several sets
// contributes all of its rows.
func CardRows(hist []models.SessionRecord, word string) []models.SessionRecord {
	var rows []models.SessionRecord
	for _, rec := range hist {
		if rec.Reviewed(word) {
			rows = append(rows, rec)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Timestamp.Before(rows[j].Timestamp)
	})
	return rows
}

// Extract computes the feature vector for a (word, set) pair, or nil when
// fewer than two sessions mention the word.
//
// hour_of_day and day_of_week describe the moment of the call, not the
// historical reviews, so the same history produces different vectors at
// different times of day. That is intentional: the model is asked "how long
// from *now*", and the clock features let it learn time-of-day effects.
func (e *Extractor) Extract(hist []models.SessionRecord, word, set string) Vector {
	rows := CardRows(hist, word)
	if len(rows) < minCardRows {
		return nil
	}

	now := e.now()

	var sum float64
	for _, rec := range rows {
		sum += float64(rec.Results[word])
	}
	avgSuccess := sum / float64(len(rows))

	recentStart := len(rows) - 3
	if recentStart < 0 {
		recentStart = 0
	}
	var recentSum float64
	for _, rec := range rows[recentStart:] {
		recentSum += float64(rec.Results[word])
	}
	recentSuccess := recentSum / float64(len(rows)-recentStart)

	lastInterval := now.Sub(rows[len(rows)-1].Timestamp).Hours()

	var intervalSum float64
	for i := 1; i < len(rows); i++ {
		intervalSum += rows[i].Timestamp.Sub(rows[i-1].Timestamp).Hours()
	}
	avgInterval := intervalSum / float64(len(rows)-1)

	return Vector{
		avgSuccess,
		recentSuccess,
		float64(len(rows)),
		float64(now.Hour()),
		float64(mondayWeekday(now)),
		lastInterval,
		avgInterval,
		setAvgSuccess(hist, set),
	}
}

// setAvgSuccess is the set's overall accuracy: mean score over mean total
// across the set's sessions. Zero when the set has no sessions or no
// answered questions.
func setAvgSuccess(hist []models.SessionRecord, set string) float64 {
	var scoreSum, totalSum float64
	var n int
	for _, rec := range hist {
		if rec.Set != set {
			continue
		}
		scoreSum += float64(rec.Score)
		totalSum += float64(rec.Total)
		n++
	}
	if n == 0 || totalSum == 0 {
		return 0
	}
	return (scoreSum / float64(n)) / (totalSum / float64(n))
}

// mondayWeekday maps time.Weekday to a Monday=0..Sunday=6 index.
func mondayWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
