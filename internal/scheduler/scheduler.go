package scheduler

import (
	"log"
	"time"

	"github.com/example/flashdeck/internal/features"
	"github.com/example/flashdeck/internal/leitner"
	"github.com/example/flashdeck/internal/predictor"
	"github.com/example/flashdeck/pkg/models"
)

// HistorySource provides the review history the scheduler derives levels
// and features from.
type HistorySource interface {
	Load() ([]models.SessionRecord, error)
}

// Scheduler decides when a card should next be reviewed. It combines the
// fixed Leitner ladder with the adaptive predictor: the predictor answers
// once it has enough data, the ladder covers everything else.
type Scheduler struct {
	history   HistorySource
	extractor *features.Extractor
	predictor *predictor.Predictor
	ladder    *leitner.Ladder
	now       func() time.Time
}

// New creates a scheduler over the given history source and predictor.
func New(history HistorySource, pred *predictor.Predictor) *Scheduler {
	return &Scheduler{
		history:   history,
		extractor: features.NewExtractor(),
		predictor: pred,
		ladder:    leitner.New(),
		now:       time.Now,
	}
}

// WithClock overrides the scheduler's clock (and its extractor's). Used in
// tests.
func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	s.extractor.WithClock(now)
	s.now = now
	return s
}

// Ladder exposes the fallback ladder.
func (s *Scheduler) Ladder() *leitner.Ladder {
	return s.ladder
}

// RecordOutcome computes the new Leitner level and next review time for a
// card after an answer. The level is recomputed from the card's review count
// in history rather than incremented from the stored level; the stored level
// is a cache of this derivation. Nothing is persisted here: the caller
// writes the result back to the card store and appends the session to the
// history log.
//
// Every failure on this path degrades to the ladder delay; the caller
// always gets a schedule.
func (s *Scheduler) RecordOutcome(word, set string, correct bool) (int, time.Time) {
	hist, err := s.history.Load()
	if err != nil {
		log.Printf("scheduler: falling back to ladder, history unavailable: %v", err)
		hist = nil
	}

	// Lazy retrain on the read path. Infrequent, bounded by data growth.
	s.predictor.MaybeRetrain(hist)

	prior := len(features.CardRows(hist, word))
	level := s.nextLevel(prior, correct)

	delay := s.resolveDelay(hist, word, set, level)
	return level, s.now().Add(time.Duration(delay * float64(time.Hour)))
}

// nextLevel derives the new level from the prior review count.
func (s *Scheduler) nextLevel(priorReviews int, correct bool) int {
	if correct {
		level := priorReviews + 1
		if level > s.ladder.MaxLevel() {
			level = s.ladder.MaxLevel()
		}
		return level
	}

	level := priorReviews - 1
	if level < 0 {
		level = 0
	}
	return level
}

// resolveDelay asks the predictor for a delay and falls back to the ladder
// when the card has too little history or no model is trained.
func (s *Scheduler) resolveDelay(hist []models.SessionRecord, word, set string, level int) float64 {
	v := s.extractor.Extract(hist, word, set)
	if v == nil {
		return s.ladder.DelayForLevel(level)
	}

	hours, err := s.predictor.Predict(v)
	if err != nil {
		return s.ladder.DelayForLevel(level)
	}
	return hours
}
