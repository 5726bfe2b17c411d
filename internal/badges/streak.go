package badges

// BaseStreakThreshold is the first streak length that awards a badge.
const BaseStreakThreshold = 5

var streakThresholds = []int{5, 10, 15, 20}

// NextStreakThreshold returns the next streak milestone above the current streak length.
func NextStreakThreshold(current int) int {
	for _, t := range streakThresholds {
		if t > current {
			return t
		}
	}
	// Beyond 20, award every 5.
	return ((current / 5) + 1) * 5
}

// StreakTracker counts consecutive correct answers and reports when a
// milestone is reached.
type StreakTracker struct {
	current int
	best    int
	next    int
}

// NewStreakTracker returns a tracker at zero.
func NewStreakTracker() *StreakTracker {
	return &StreakTracker{next: BaseStreakThreshold}
}

// Record applies one answer and returns the streak length when it hits a
// milestone, or 0.
func (s *StreakTracker) Record(correct bool) int {
	if !correct {
		s.current = 0
		s.next = BaseStreakThreshold
		return 0
	}
	s.current++
	s.best = max(s.best, s.current)
	if s.current >= s.next {
		s.next = NextStreakThreshold(s.current)
		return s.current
	}
	return 0
}

// Current returns the running streak.
func (s *StreakTracker) Current() int { return s.current }

// Best returns the longest streak seen.
func (s *StreakTracker) Best() int { return s.best }
