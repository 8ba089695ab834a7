package profile

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/quizmaster/internal/achievement"
	"github.com/saulo-duarte/quizmaster/internal/auth"
	"github.com/saulo-duarte/quizmaster/internal/config"
	"github.com/saulo-duarte/quizmaster/internal/submission"
	"github.com/saulo-duarte/quizmaster/internal/user"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrUserNotFound = errors.New("user not found")
)

type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*user.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*user.User, error)
}

type SubmissionReader interface {
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*submission.Submission, error)
	SubjectTotals(ctx context.Context, userID uuid.UUID) ([]submission.SubjectTotal, error)
}

type AchievementEvaluator interface {
	Evaluate(ctx context.Context, userID uuid.UUID) ([]achievement.Achievement, error)
	Earned(ctx context.Context, userID uuid.UUID) ([]*achievement.UserAchievement, error)
}

type SubjectStats struct {
	Count      int64   `json:"count"`
	TotalScore int64   `json:"total_score"`
	Average    float64 `json:"average"`
}

// Summary is a profile with its derived metrics.
type Summary struct {
	Profile      *Profile `json:"profile"`
	AverageScore float64  `json:"average_score"`
	Rank         *int     `json:"rank"`
}

type View struct {
	Summary
	Username           string                         `json:"username"`
	IsOwnProfile       bool                           `json:"is_own_profile"`
	Achievements       []*achievement.UserAchievement `json:"achievements"`
	RecentSubmissions  []*submission.Submission       `json:"recent_submissions"`
	SubjectPerformance map[string]SubjectStats        `json:"subject_performance"`
}

type LeaderboardEntry struct {
	Rank         int       `json:"rank"`
	UserID       uuid.UUID `json:"user_id"`
	Username     string    `json:"username"`
	TotalQuizzes int       `json:"total_quizzes"`
	TotalScore   int       `json:"total_score"`
	AverageScore float64   `json:"average_score"`
}

type Leaderboard struct {
	Entries         []LeaderboardEntry `json:"entries"`
	CurrentUserRank *int               `json:"current_user_rank"`
}

type ProfileService interface {
	ApplySubmission(ctx context.Context, tx *gorm.DB, userID uuid.UUID, score int) error
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*Profile, error)
	Rank(ctx context.Context, p *Profile) (*int, error)
	Summary(ctx context.Context, userID uuid.UUID) (*Summary, error)
	SubjectPerformance(ctx context.Context, userID uuid.UUID) (map[string]SubjectStats, error)
	GetMyProfile(ctx context.Context) (*View, error)
	GetByUsername(ctx context.Context, username string) (*View, error)
	UpdateMine(ctx context.Context, dto UpdateProfileDTO) (*Profile, error)
	Leaderboard(ctx context.Context) (*Leaderboard, error)
}

type profileService struct {
	repo            ProfileRepository
	users           UserLookup
	submissions     SubmissionReader
	achievements    AchievementEvaluator
	leaderboardSize int
}

func NewService(
	repo ProfileRepository,
	users UserLookup,
	submissions SubmissionReader,
	achievements AchievementEvaluator,
	leaderboardSize int,
) ProfileService {
	if leaderboardSize <= 0 {
		leaderboardSize = 10
	}
	return &profileService{
		repo:            repo,
		users:           users,
		submissions:     submissions,
		achievements:    achievements,
		leaderboardSize: leaderboardSize,
	}
}

func (s *profileService) ApplySubmission(ctx context.Context, tx *gorm.DB, userID uuid.UUID, score int) error {
	if err := s.repo.ApplySubmission(ctx, tx, userID, score); err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to apply submission to profile")
		return err
	}
	return nil
}

func (s *profileService) GetOrCreate(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	return s.repo.GetOrCreate(ctx, nil, userID)
}

// Rank is 1 + the number of active profiles with a strictly higher total score.
// Profiles without quizzes have no rank.
func (s *profileService) Rank(ctx context.Context, p *Profile) (*int, error) {
	if p.TotalQuizzesTaken <= 0 {
		return nil, nil
	}
	higher, err := s.repo.CountHigherScores(ctx, p.TotalScore)
	if err != nil {
		return nil, err
	}
	rank := int(higher) + 1
	return &rank, nil
}

func (s *profileService) Summary(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	p, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	rank, err := s.Rank(ctx, p)
	if err != nil {
		return nil, err
	}
	return &Summary{Profile: p, AverageScore: p.AverageScore(), Rank: rank}, nil
}

func (s *profileService) SubjectPerformance(ctx context.Context, userID uuid.UUID) (map[string]SubjectStats, error) {
	totals, err := s.submissions.SubjectTotals(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]SubjectStats, len(totals))
	for _, t := range totals {
		stats := SubjectStats{Count: t.Count, TotalScore: t.TotalScore}
		if t.Count > 0 {
			stats.Average = round2(float64(t.TotalScore) / float64(t.Count))
		}
		out[t.Subject] = stats
	}
	return out, nil
}

func (s *profileService) view(ctx context.Context, log logrus.FieldLogger, u *user.User, own bool) (*View, error) {
	// awards are refreshed on every profile view
	if _, err := s.achievements.Evaluate(ctx, u.ID); err != nil {
		log.WithError(err).Warn("Failed to evaluate achievements for profile view")
	}

	summary, err := s.Summary(ctx, u.ID)
	if err != nil {
		log.WithError(err).Error("Failed to load profile")
		return nil, err
	}

	earned, err := s.achievements.Earned(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	recent, err := s.submissions.ListByUser(ctx, u.ID, submission.RecentLimit)
	if err != nil {
		return nil, err
	}
	subjects, err := s.SubjectPerformance(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	if earned == nil {
		earned = []*achievement.UserAchievement{}
	}
	if recent == nil {
		recent = []*submission.Submission{}
	}
	return &View{
		Summary:            *summary,
		Username:           u.Username,
		IsOwnProfile:       own,
		Achievements:       earned,
		RecentSubmissions:  recent,
		SubjectPerformance: subjects,
	}, nil
}

func (s *profileService) GetMyProfile(ctx context.Context) (*View, error) {
	log := config.WithContext(ctx)
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		log.WithError(err).Warn("Attempt to view profile without authentication")
		return nil, ErrUnauthorized
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrUnauthorized
	}

	return s.view(ctx, log, &user.User{ID: userID, Username: claims.Username}, true)
}

func (s *profileService) GetByUsername(ctx context.Context, username string) (*View, error) {
	log := config.WithContext(ctx)
	viewerID, err := auth.CurrentUserID(ctx)
	if err != nil {
		return nil, ErrUnauthorized
	}

	u, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		log.WithError(err).Error("Failed to look up user")
		return nil, err
	}
	return s.view(ctx, log, u, u.ID == viewerID)
}

func (s *profileService) UpdateMine(ctx context.Context, dto UpdateProfileDTO) (*Profile, error) {
	log := config.WithContext(ctx)
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		log.WithError(err).Warn("Attempt to update profile without authentication")
		return nil, ErrUnauthorized
	}

	p, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to load profile for update")
		return nil, err
	}

	if dto.Bio != nil {
		p.Bio = strings.TrimSpace(*dto.Bio)
	}
	if dto.Location != nil {
		p.Location = strings.TrimSpace(*dto.Location)
	}
	if dto.Website != nil {
		p.Website = strings.TrimSpace(*dto.Website)
	}
	if dto.Preferences != nil {
		prefs := Preferences{
			Theme:         Theme(dto.Preferences.Theme),
			Notifications: dto.Preferences.Notifications,
			PublicProfile: dto.Preferences.PublicProfile,
		}
		if prefs.Theme == "" {
			prefs.Theme = ThemeLight
		}
		raw, err := json.Marshal(prefs)
		if err != nil {
			return nil, err
		}
		p.Preferences = datatypes.JSON(raw)
	}
	p.LastActivity = time.Now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		log.WithError(err).Error("Failed to update profile")
		return nil, err
	}

	log.Info("Profile updated")
	return p, nil
}

// Leaderboard lists the top profiles by total score with competition ranks.
func (s *profileService) Leaderboard(ctx context.Context) (*Leaderboard, error) {
	log := config.WithContext(ctx)

	top, err := s.repo.Top(ctx, s.leaderboardSize)
	if err != nil {
		log.WithError(err).Error("Failed to load leaderboard")
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(top))
	for _, p := range top {
		ids = append(ids, p.UserID)
	}
	users, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	board := &Leaderboard{Entries: make([]LeaderboardEntry, 0, len(top))}
	for i, p := range top {
		rank := i + 1
		if i > 0 && p.TotalScore == top[i-1].TotalScore {
			rank = board.Entries[i-1].Rank
		}
		entry := LeaderboardEntry{
			Rank:         rank,
			UserID:       p.UserID,
			TotalQuizzes: p.TotalQuizzesTaken,
			TotalScore:   p.TotalScore,
			AverageScore: p.AverageScore(),
		}
		if u, ok := users[p.UserID]; ok {
			entry.Username = u.Username
		}
		board.Entries = append(board.Entries, entry)
	}

	if userID, err := auth.CurrentUserID(ctx); err == nil {
		mine, err := s.repo.GetByUserID(ctx, userID)
		switch {
		case err == nil:
			if board.CurrentUserRank, err = s.Rank(ctx, mine); err != nil {
				return nil, err
			}
		case !errors.Is(err, ErrProfileNotFound):
			return nil, err
		}
	}
	return board, nil
}
