package leitner

// Ladder is a fixed table of review delays indexed by Leitner level.
type Ladder struct {
	// Delays in hours for each level, lowest first
	Intervals []float64
}

// New creates a ladder with the default intervals:
// same day, 1 day, 3 days, 1 week, 2 weeks, 4 weeks, 8 weeks.
func New() *Ladder {
	return &Ladder{
		Intervals: []float64{0, 24, 72, 168, 336, 672, 1344},
	}
}

// DelayForLevel returns the delay in hours for the given level.
// Levels below zero map to the first entry, levels past the top clamp
// to the last entry.
func (l *Ladder) DelayForLevel(level int) float64 {
	if level < 0 {
		level = 0
	}
	if level >= len(l.Intervals) {
		level = len(l.Intervals) - 1
	}
	return l.Intervals[level]
}

// MaxLevel returns the highest level the ladder supports.
func (l *Ladder) MaxLevel() int {
	return len(l.Intervals) - 1
}
