package stats

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/quizmaster/internal/auth"
	"github.com/saulo-duarte/quizmaster/internal/config"
	"github.com/saulo-duarte/quizmaster/internal/notification"
	"github.com/saulo-duarte/quizmaster/internal/profile"
	"github.com/saulo-duarte/quizmaster/internal/streak"
	"github.com/sirupsen/logrus"
)

// DashboardNotifications is how many unread notifications the dashboard shows.
const DashboardNotifications = 5

var ErrUnauthorized = errors.New("unauthorized")

type ProfileReader interface {
	Summary(ctx context.Context, userID uuid.UUID) (*profile.Summary, error)
	SubjectPerformance(ctx context.Context, userID uuid.UUID) (map[string]profile.SubjectStats, error)
}

type StreakReader interface {
	Get(ctx context.Context, userID uuid.UUID) (*streak.StudyStreak, error)
}

type NotificationReader interface {
	Unread(ctx context.Context, userID uuid.UUID, limit int) (*notification.Inbox, error)
}

type FeedbackCounter interface {
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type SubmissionTimes interface {
	SubmittedBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]time.Time, error)
}

type ProfileBlock struct {
	TotalQuizzes int       `json:"total_quizzes"`
	AverageScore float64   `json:"average_score"`
	Rank         *int      `json:"rank"`
	Bio          string    `json:"bio"`
	Location     string    `json:"location"`
	JoinedDate   time.Time `json:"joined_date"`
}

type StreakBlock struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

type Dashboard struct {
	Profile       ProfileBlock                 `json:"profile"`
	Streak        StreakBlock                  `json:"streak"`
	Notifications []*notification.Notification `json:"notifications"`
	FeedbackCount int64                        `json:"feedback_count"`
}

type UserStats struct {
	MonthlyQuizzes     [12]int                         `json:"monthly_quizzes"`
	SubjectPerformance map[string]profile.SubjectStats `json:"subject_performance"`
	TotalQuizzes       int                             `json:"total_quizzes"`
	AverageScore       float64                         `json:"average_score"`
	Rank               *int                            `json:"rank"`
}

type StatsService interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	UserStats(ctx context.Context) (*UserStats, error)
}

type statsService struct {
	profiles      ProfileReader
	streaks       StreakReader
	notifications NotificationReader
	feedback      FeedbackCounter
	submissions   SubmissionTimes
	location      *time.Location
	now           func() time.Time
}

func NewService(
	profiles ProfileReader,
	streaks StreakReader,
	notifications NotificationReader,
	feedback FeedbackCounter,
	submissions SubmissionTimes,
	location *time.Location,
) StatsService {
	if location == nil {
		location = time.UTC
	}
	return &statsService{
		profiles:      profiles,
		streaks:       streaks,
		notifications: notifications,
		feedback:      feedback,
		submissions:   submissions,
		location:      location,
		now:           time.Now,
	}
}

func currentUser(ctx context.Context, log logrus.FieldLogger) (uuid.UUID, error) {
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		log.WithError(err).Warn("Attempt to read stats without authentication")
		return uuid.Nil, ErrUnauthorized
	}
	return userID, nil
}

func (s *statsService) Dashboard(ctx context.Context) (*Dashboard, error) {
	log := config.WithContext(ctx)
	userID, err := currentUser(ctx, log)
	if err != nil {
		return nil, err
	}

	summary, err := s.profiles.Summary(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to load profile for dashboard")
		return nil, err
	}
	st, err := s.streaks.Get(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to load streak for dashboard")
		return nil, err
	}
	inbox, err := s.notifications.Unread(ctx, userID, DashboardNotifications)
	if err != nil {
		log.WithError(err).Error("Failed to load notifications for dashboard")
		return nil, err
	}
	feedbackCount, err := s.feedback.CountByUser(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to count feedback for dashboard")
		return nil, err
	}

	p := summary.Profile
	return &Dashboard{
		Profile: ProfileBlock{
			TotalQuizzes: p.TotalQuizzesTaken,
			AverageScore: summary.AverageScore,
			Rank:         summary.Rank,
			Bio:          p.Bio,
			Location:     p.Location,
			JoinedDate:   p.JoinedDate,
		},
		Streak: StreakBlock{
			Current: st.CurrentStreak,
			Longest: st.LongestStreak,
		},
		Notifications: inbox.Notifications,
		FeedbackCount: feedbackCount,
	}, nil
}

// UserStats buckets this year's submissions by month in the configured timezone.
func (s *statsService) UserStats(ctx context.Context) (*UserStats, error) {
	log := config.WithContext(ctx)
	userID, err := currentUser(ctx, log)
	if err != nil {
		return nil, err
	}

	summary, err := s.profiles.Summary(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to load profile for user stats")
		return nil, err
	}

	year := s.now().In(s.location).Year()
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, s.location)
	to := from.AddDate(1, 0, 0)
	times, err := s.submissions.SubmittedBetween(ctx, userID, from.UTC(), to.UTC())
	if err != nil {
		log.WithError(err).Error("Failed to load submission times")
		return nil, err
	}

	subjects, err := s.profiles.SubjectPerformance(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to load subject performance")
		return nil, err
	}

	out := &UserStats{
		MonthlyQuizzes:     MonthlyCounts(times, year, s.location),
		SubjectPerformance: subjects,
		TotalQuizzes:       summary.Profile.TotalQuizzesTaken,
		AverageScore:       summary.AverageScore,
		Rank:               summary.Rank,
	}
	return out, nil
}

// MonthlyCounts counts the times that fall in each month of year, as seen in loc.
func MonthlyCounts(times []time.Time, year int, loc *time.Location) [12]int {
	var counts [12]int
	for _, t := range times {
		local := t.In(loc)
		if local.Year() != year {
			continue
		}
		counts[local.Month()-1]++
	}
	return counts
}
