package achievement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/quizmaster/internal/auth"
	"github.com/saulo-duarte/quizmaster/internal/config"
	"github.com/saulo-duarte/quizmaster/internal/notification"
	"github.com/sirupsen/logrus"
)

var ErrUnauthorized = errors.New("unauthorized")

type ProfileReader interface {
	QuizzesTaken(ctx context.Context, userID uuid.UUID) (int, error)
}

type SubmissionReader interface {
	HasScoreAtLeast(ctx context.Context, userID uuid.UUID, score int) (bool, error)
}

type StreakReader interface {
	LongestStreak(ctx context.Context, userID uuid.UUID) (int, error)
}

type Notifier interface {
	Emit(ctx context.Context, userID uuid.UUID, typ notification.Type, title, message string) (*notification.Notification, error)
}

// CatalogEntry is one achievement as seen by a given user.
type CatalogEntry struct {
	Achievement
	Earned   bool       `json:"earned"`
	EarnedAt *time.Time `json:"earned_at,omitempty"`
}

type AchievementService interface {
	Seed(ctx context.Context) error
	Evaluate(ctx context.Context, userID uuid.UUID) ([]Achievement, error)
	CheckAchievements(ctx context.Context, userID uuid.UUID) error
	Earned(ctx context.Context, userID uuid.UUID) ([]*UserAchievement, error)
	ListForCurrentUser(ctx context.Context) ([]CatalogEntry, error)
}

type achievementService struct {
	repo        AchievementRepository
	profiles    ProfileReader
	submissions SubmissionReader
	streaks     StreakReader
	notifier    Notifier
}

func NewService(
	repo AchievementRepository,
	profiles ProfileReader,
	submissions SubmissionReader,
	streaks StreakReader,
	notifier Notifier,
) AchievementService {
	return &achievementService{
		repo:        repo,
		profiles:    profiles,
		submissions: submissions,
		streaks:     streaks,
		notifier:    notifier,
	}
}

func (s *achievementService) Seed(ctx context.Context) error {
	if err := s.repo.Seed(ctx, DefaultCatalog()); err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to seed achievement catalog")
		return err
	}
	return nil
}

// catalog returns the stored catalog, seeding it first when any default entry is missing.
func (s *achievementService) catalog(ctx context.Context) ([]Achievement, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if !missingDefaults(list) {
		return list, nil
	}
	if err := s.Seed(ctx); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func missingDefaults(list []Achievement) bool {
	stored := make(map[string]bool, len(list))
	for _, a := range list {
		stored[a.Name] = true
	}
	for _, a := range DefaultCatalog() {
		if !stored[a.Name] {
			return true
		}
	}
	return false
}

// Evaluate awards every achievement the user now qualifies for and returns the new ones.
// Running it again without new activity awards nothing.
func (s *achievementService) Evaluate(ctx context.Context, userID uuid.UUID) ([]Achievement, error) {
	log := config.WithContext(ctx).WithField("subject_id", userID)

	list, err := s.catalog(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to load achievement catalog")
		return nil, err
	}

	earned, err := s.repo.ListEarned(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to load earned achievements")
		return nil, err
	}
	have := make(map[uuid.UUID]bool, len(earned))
	for _, ua := range earned {
		have[ua.AchievementID] = true
	}

	var awarded []Achievement
	for _, a := range list {
		if have[a.ID] {
			continue
		}

		ok, err := s.qualifies(ctx, userID, a)
		if err != nil {
			log.WithError(err).WithField("achievement", a.Name).Error("Failed to check achievement")
			return awarded, err
		}
		if !ok {
			continue
		}

		err = s.repo.Award(ctx, &UserAchievement{UserID: userID, AchievementID: a.ID})
		if errors.Is(err, ErrAlreadyEarned) {
			continue
		}
		if err != nil {
			log.WithError(err).WithField("achievement", a.Name).Error("Failed to award achievement")
			return awarded, err
		}

		log.WithFields(logrus.Fields{"achievement": a.Name}).Info("Achievement awarded")
		awarded = append(awarded, a)
		s.announce(ctx, log, userID, a)
	}
	return awarded, nil
}

func (s *achievementService) qualifies(ctx context.Context, userID uuid.UUID, a Achievement) (bool, error) {
	switch a.Type {
	case TypeQuizCount:
		n, err := s.profiles.QuizzesTaken(ctx, userID)
		return n >= a.Requirement, err
	case TypeHighScore:
		return s.submissions.HasScoreAtLeast(ctx, userID, a.Requirement)
	case TypeStreak:
		if s.streaks == nil {
			return false, nil
		}
		n, err := s.streaks.LongestStreak(ctx, userID)
		return n >= a.Requirement, err
	}
	return false, nil
}

func (s *achievementService) announce(ctx context.Context, log logrus.FieldLogger, userID uuid.UUID, a Achievement) {
	if s.notifier == nil {
		return
	}
	title := fmt.Sprintf("Achievement Unlocked: %s", a.Name)
	if _, err := s.notifier.Emit(ctx, userID, notification.TypeAchievement, title, a.Description); err != nil {
		log.WithError(err).Warn("Failed to emit achievement notification")
	}
}

func (s *achievementService) CheckAchievements(ctx context.Context, userID uuid.UUID) error {
	_, err := s.Evaluate(ctx, userID)
	return err
}

func (s *achievementService) Earned(ctx context.Context, userID uuid.UUID) ([]*UserAchievement, error) {
	return s.repo.ListEarned(ctx, userID)
}

func (s *achievementService) ListForCurrentUser(ctx context.Context) ([]CatalogEntry, error) {
	log := config.WithContext(ctx)
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		log.WithError(err).Warn("Attempt to list achievements without authentication")
		return nil, ErrUnauthorized
	}

	if _, err := s.Evaluate(ctx, userID); err != nil {
		return nil, err
	}

	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	earned, err := s.repo.ListEarned(ctx, userID)
	if err != nil {
		return nil, err
	}
	earnedAt := make(map[uuid.UUID]time.Time, len(earned))
	for _, ua := range earned {
		earnedAt[ua.AchievementID] = ua.EarnedAt
	}

	entries := make([]CatalogEntry, 0, len(list))
	for _, a := range list {
		entry := CatalogEntry{Achievement: a}
		if at, ok := earnedAt[a.ID]; ok {
			at := at
			entry.Earned = true
			entry.EarnedAt = &at
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
