package streak

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/quizmaster/internal/auth"
	"github.com/saulo-duarte/quizmaster/internal/config"
	"github.com/saulo-duarte/quizmaster/internal/notification"
	util "github.com/saulo-duarte/quizmaster/internal/utils"
	"github.com/sirupsen/logrus"
)

var ErrUnauthorized = errors.New("unauthorized")

type Notifier interface {
	Emit(ctx context.Context, userID uuid.UUID, typ notification.Type, title, message string) (*notification.Notification, error)
}

type StreakService interface {
	RecordActivity(ctx context.Context, userID uuid.UUID) error
	Get(ctx context.Context, userID uuid.UUID) (*StudyStreak, error)
	GetMine(ctx context.Context) (*StudyStreak, error)
	LongestStreak(ctx context.Context, userID uuid.UUID) (int, error)
}

type streakService struct {
	repo     StreakRepository
	notifier Notifier
	location *time.Location
	now      func() time.Time
}

func NewService(repo StreakRepository, notifier Notifier, location *time.Location) StreakService {
	return &streakService{
		repo:     repo,
		notifier: notifier,
		location: location,
		now:      time.Now,
	}
}

// NewServiceWithClock is NewService with an injectable clock.
func NewServiceWithClock(repo StreakRepository, notifier Notifier, location *time.Location, now func() time.Time) StreakService {
	return &streakService{
		repo:     repo,
		notifier: notifier,
		location: location,
		now:      now,
	}
}

func (s *streakService) RecordActivity(ctx context.Context, userID uuid.UUID) error {
	log := config.WithContext(ctx)

	st, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to load study streak")
		return err
	}

	before := st.CurrentStreak
	today := util.DateOf(s.now(), s.location)
	if Touch(st, today) == Unchanged {
		return nil
	}
	if err := s.repo.Save(ctx, st); err != nil {
		log.WithError(err).Error("Failed to save study streak")
		return err
	}

	log.WithFields(logrus.Fields{
		"current_streak": st.CurrentStreak,
		"longest_streak": st.LongestStreak,
	}).Debug("Study streak updated")

	if st.CurrentStreak > before && IsMilestone(st.CurrentStreak) && s.notifier != nil {
		title := fmt.Sprintf("%d Day Streak!", st.CurrentStreak)
		message := fmt.Sprintf("Congratulations! You've maintained a %d day study streak!", st.CurrentStreak)
		if _, err := s.notifier.Emit(ctx, userID, notification.TypeAchievement, title, message); err != nil {
			log.WithError(err).Warn("Failed to emit streak milestone notification")
		}
	}
	return nil
}

func (s *streakService) Get(ctx context.Context, userID uuid.UUID) (*StudyStreak, error) {
	return s.repo.GetOrCreate(ctx, userID)
}

func (s *streakService) GetMine(ctx context.Context) (*StudyStreak, error) {
	log := config.WithContext(ctx)
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		log.WithError(err).Warn("Attempt to read streak without authentication")
		return nil, ErrUnauthorized
	}

	st, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to load study streak")
		return nil, err
	}
	return st, nil
}

func (s *streakService) LongestStreak(ctx context.Context, userID uuid.UUID) (int, error) {
	st, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return 0, err
	}
	return st.LongestStreak, nil
}
