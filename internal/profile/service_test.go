package profile_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/saulo-duarte/quizmaster/internal/achievement"
	"github.com/saulo-duarte/quizmaster/internal/auth"
	"github.com/saulo-duarte/quizmaster/internal/dbtest"
	"github.com/saulo-duarte/quizmaster/internal/profile"
	"github.com/saulo-duarte/quizmaster/internal/quiz"
	"github.com/saulo-duarte/quizmaster/internal/submission"
	"github.com/saulo-duarte/quizmaster/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type noAchievements struct{ evaluated int }

func (n *noAchievements) Evaluate(ctx context.Context, userID uuid.UUID) ([]achievement.Achievement, error) {
	n.evaluated++
	return nil, nil
}

func (n *noAchievements) Earned(ctx context.Context, userID uuid.UUID) ([]*achievement.UserAchievement, error) {
	return nil, nil
}

type fixture struct {
	db    *gorm.DB
	repo  profile.ProfileRepository
	users user.UserRepository
	evals *noAchievements
	svc   profile.ProfileService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t,
		&user.User{},
		&quiz.Quiz{}, &quiz.Question{}, &quiz.Choice{},
		&submission.Submission{}, &submission.Answer{},
		&profile.Profile{},
	)
	f := &fixture{
		db:    db,
		repo:  profile.NewRepository(db),
		users: user.NewRepository(db),
		evals: &noAchievements{},
	}
	f.svc = profile.NewService(f.repo, f.users, submission.NewRepository(db), f.evals, 10)
	return f
}

func (f *fixture) newUser(t *testing.T, username string) uuid.UUID {
	t.Helper()
	u := &user.User{ID: uuid.New(), Username: username, Email: username + "@example.com"}
	require.NoError(t, f.users.CreateIfMissing(context.Background(), u))
	return u.ID
}

func asUser(id uuid.UUID, username string) context.Context {
	return auth.WithClaims(context.Background(), &auth.Claims{UserID: id.String(), Username: username})
}

func TestApplySubmissionAccumulates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, f.svc.ApplySubmission(ctx, nil, userID, 5))
	require.NoError(t, f.svc.ApplySubmission(ctx, nil, userID, 3))

	p, err := f.repo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, p.TotalQuizzesTaken)
	assert.Equal(t, 8, p.TotalScore)
	assert.Equal(t, 4.0, p.AverageScore())
}

func TestApplySubmissionRollsBackWithTransaction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	err := f.db.Transaction(func(tx *gorm.DB) error {
		require.NoError(t, f.svc.ApplySubmission(ctx, tx, userID, 5))
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	_, err = f.repo.GetByUserID(ctx, userID)
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)
}

func TestRankUsesCompetitionRanking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	scores := []int{100, 90, 90, 80}
	ids := make([]uuid.UUID, len(scores))
	for i, score := range scores {
		ids[i] = uuid.New()
		require.NoError(t, f.svc.ApplySubmission(ctx, nil, ids[i], score))
	}
	idle := uuid.New()
	_, err := f.svc.GetOrCreate(ctx, idle)
	require.NoError(t, err)

	want := []int{1, 2, 2, 4}
	for i, id := range ids {
		summary, err := f.svc.Summary(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, summary.Rank)
		assert.Equal(t, want[i], *summary.Rank, "score %d", scores[i])
	}

	summary, err := f.svc.Summary(ctx, idle)
	require.NoError(t, err)
	assert.Nil(t, summary.Rank)
}

func TestLeaderboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var me uuid.UUID
	for i, entry := range []struct {
		name  string
		score int
	}{{"ana", 100}, {"bia", 90}, {"caio", 90}, {"duda", 80}} {
		id := f.newUser(t, entry.name)
		require.NoError(t, f.svc.ApplySubmission(ctx, nil, id, entry.score))
		if i == 3 {
			me = id
		}
	}

	board, err := f.svc.Leaderboard(asUser(me, "duda"))
	require.NoError(t, err)
	require.Len(t, board.Entries, 4)

	ranks := []int{}
	for _, e := range board.Entries {
		ranks = append(ranks, e.Rank)
	}
	assert.Equal(t, []int{1, 2, 2, 4}, ranks)
	assert.Equal(t, "ana", board.Entries[0].Username)
	require.NotNil(t, board.CurrentUserRank)
	assert.Equal(t, 4, *board.CurrentUserRank)
}

func TestUpdateMine(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()
	ctx := asUser(userID, "ana")

	bio := "  studies every day  "
	p, err := f.svc.UpdateMine(ctx, profile.UpdateProfileDTO{
		Bio:         &bio,
		Preferences: &profile.PreferencesDTO{Theme: "dark", PublicProfile: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "studies every day", p.Bio)

	stored, err := f.repo.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "studies every day", stored.Bio)
	prefs := stored.DecodePreferences()
	assert.Equal(t, profile.ThemeDark, prefs.Theme)
	assert.False(t, prefs.Notifications)
}

func TestGetByUsername(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ownerID := f.newUser(t, "ana")

	q := &quiz.Quiz{CreatorID: uuid.New(), Title: "Algebra", Subject: "Math", TimeLimit: 30, MaxAttempts: 3, IsActive: true}
	require.NoError(t, f.db.Create(q).Error)
	require.NoError(t, f.db.Create(&submission.Submission{QuizID: q.ID, UserID: ownerID, Score: 6, TotalPoints: 8}).Error)
	require.NoError(t, f.svc.ApplySubmission(ctx, nil, ownerID, 6))

	viewerID := uuid.New()
	view, err := f.svc.GetByUsername(asUser(viewerID, "bia"), "ana")
	require.NoError(t, err)
	assert.Equal(t, "ana", view.Username)
	assert.False(t, view.IsOwnProfile)
	assert.Equal(t, 6.0, view.AverageScore)
	require.Len(t, view.RecentSubmissions, 1)
	assert.Equal(t, 75.0, view.RecentSubmissions[0].Percentage)
	assert.Equal(t, profile.SubjectStats{Count: 1, TotalScore: 6, Average: 6}, view.SubjectPerformance["Math"])
	assert.Equal(t, 1, f.evals.evaluated)

	_, err = f.svc.GetByUsername(asUser(viewerID, "bia"), "nobody")
	assert.ErrorIs(t, err, profile.ErrUserNotFound)
}
