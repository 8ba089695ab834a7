package streak

import util "github.com/saulo-duarte/quizmaster/internal/utils"

// Transition describes what Touch did to a streak.
type Transition int

const (
	Unchanged Transition = iota
	Extended
	Reset
)

// Touch records activity on today. Repeated activity on the same day and
// activity dated before the last recorded day leave the streak untouched.
func Touch(s *StudyStreak, today util.Date) Transition {
	last := s.LastActivity

	var result Transition
	switch {
	case !last.IsZero() && !last.Before(today):
		return Unchanged
	case !last.IsZero() && last.AddDays(1).Equal(today):
		s.CurrentStreak++
		result = Extended
	default:
		s.CurrentStreak = 1
		result = Reset
	}

	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}
	s.LastActivity = today
	return result
}

// IsMilestone reports whether a streak that just grew to n deserves a notification.
func IsMilestone(n int) bool {
	return n > 0 && n%5 == 0
}
