package streak_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/quizmaster/internal/dbtest"
	"github.com/saulo-duarte/quizmaster/internal/notification"
	"github.com/saulo-duarte/quizmaster/internal/streak"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func (c *clock) nextDay() { c.now = c.now.AddDate(0, 0, 1) }

func TestRecordActivityEmitsMilestoneOnFifthDay(t *testing.T) {
	db := dbtest.Open(t, &streak.StudyStreak{}, &notification.Notification{})
	notes := notification.NewService(notification.NewRepository(db))
	c := &clock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	svc := streak.NewServiceWithClock(streak.NewRepository(db), notes, time.UTC, c.Now)

	ctx := context.Background()
	userID := uuid.New()

	for day := 1; day <= 5; day++ {
		require.NoError(t, svc.RecordActivity(ctx, userID))
		// a second activity on the same day changes nothing
		require.NoError(t, svc.RecordActivity(ctx, userID))
		if day < 5 {
			c.nextDay()
		}
	}

	st, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 5, st.CurrentStreak)
	assert.Equal(t, 5, st.LongestStreak)
	assert.Equal(t, "2024-05-05", st.LastActivity.String())

	inbox, err := notes.Unread(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, inbox.Notifications, 1)
	assert.Equal(t, "5 Day Streak!", inbox.Notifications[0].Title)
	assert.Equal(t, notification.TypeAchievement, inbox.Notifications[0].Type)
}

func TestRecordActivityResetsAfterGap(t *testing.T) {
	db := dbtest.Open(t, &streak.StudyStreak{})
	c := &clock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	svc := streak.NewServiceWithClock(streak.NewRepository(db), nil, time.UTC, c.Now)

	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, svc.RecordActivity(ctx, userID))
	c.nextDay()
	require.NoError(t, svc.RecordActivity(ctx, userID))
	c.now = c.now.AddDate(0, 0, 4)
	require.NoError(t, svc.RecordActivity(ctx, userID))

	longest, err := svc.LongestStreak(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, longest)

	st, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, st.CurrentStreak)
}

func TestRecordActivityUsesConfiguredTimezone(t *testing.T) {
	db := dbtest.Open(t, &streak.StudyStreak{})
	tokyo := time.FixedZone("JST", 9*60*60)
	// 20:00 UTC on May 1 is already May 2 in Tokyo
	c := &clock{now: time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)}
	svc := streak.NewServiceWithClock(streak.NewRepository(db), nil, tokyo, c.Now)

	userID := uuid.New()
	require.NoError(t, svc.RecordActivity(context.Background(), userID))

	st, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-02", st.LastActivity.String())
}
