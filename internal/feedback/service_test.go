package feedback_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/quizmaster/internal/auth"
	"github.com/saulo-duarte/quizmaster/internal/dbtest"
	"github.com/saulo-duarte/quizmaster/internal/feedback"
	"github.com/saulo-duarte/quizmaster/internal/quiz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gorm.DB, *feedback.FeedbackContainer, *quiz.Quiz) {
	t.Helper()
	db := dbtest.Open(t, &quiz.Quiz{}, &quiz.Question{}, &quiz.Choice{}, &feedback.QuizFeedback{})

	q := &quiz.Quiz{CreatorID: uuid.New(), Title: "Biology", Subject: "Science", TimeLimit: 30, MaxAttempts: 3, IsActive: true}
	require.NoError(t, db.Create(q).Error)

	c := feedback.NewFeedbackContainer(db, quiz.NewRepository(db))
	return db, c, q
}

func asUser(id uuid.UUID) context.Context {
	return auth.WithClaims(context.Background(), &auth.Claims{UserID: id.String()})
}

func TestSubmitFeedbackUpserts(t *testing.T) {
	db, c, q := setup(t)
	userID := uuid.New()

	_, err := c.Service.Submit(asUser(userID), q.ID.String(), feedback.SubmitFeedbackDTO{Rating: 2, Comment: "meh"})
	require.NoError(t, err)
	_, err = c.Service.Submit(asUser(userID), q.ID.String(), feedback.SubmitFeedbackDTO{Rating: 5, Comment: "better now"})
	require.NoError(t, err)

	var rows []feedback.QuizFeedback
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 5, rows[0].Rating)
	assert.Equal(t, "better now", rows[0].Comment)

	_, err = c.Service.Submit(asUser(uuid.New()), q.ID.String(), feedback.SubmitFeedbackDTO{Rating: 4})
	require.NoError(t, err)

	summary, err := c.Service.Summary(asUser(userID), q.ID.String())
	require.NoError(t, err)
	assert.EqualValues(t, 2, summary.Count)
	assert.Equal(t, 4.5, summary.AverageRating)

	count, err := c.Service.CountByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestSubmitFeedbackErrors(t *testing.T) {
	_, c, q := setup(t)
	ctx := asUser(uuid.New())

	_, err := c.Service.Submit(ctx, q.ID.String(), feedback.SubmitFeedbackDTO{Rating: 6})
	assert.ErrorIs(t, err, feedback.ErrInvalidRating)

	_, err = c.Service.Submit(ctx, uuid.NewString(), feedback.SubmitFeedbackDTO{Rating: 3})
	assert.ErrorIs(t, err, feedback.ErrQuizNotFound)

	_, err = c.Service.Submit(context.Background(), q.ID.String(), feedback.SubmitFeedbackDTO{Rating: 3})
	assert.ErrorIs(t, err, feedback.ErrUnauthorized)
}

func TestFeedbackHandler(t *testing.T) {
	_, c, q := setup(t)
	userID := uuid.New()

	r := chi.NewRouter()
	r.Mount("/api/quiz", feedback.Routes(c.Handler))

	post := func(quizID, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/quiz/"+quizID+"/feedback/", bytes.NewBufferString(body))
		req = req.WithContext(asUser(userID))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	tests := []struct {
		name   string
		quizID string
		body   string
		want   int
	}{
		{"valid", q.ID.String(), `{"rating":4,"comment":"nice"}`, http.StatusOK},
		{"malformed json", q.ID.String(), `{"rating":`, http.StatusBadRequest},
		{"missing rating", q.ID.String(), `{"comment":"x"}`, http.StatusBadRequest},
		{"rating too low", q.ID.String(), `{"rating":0}`, http.StatusBadRequest},
		{"rating too high", q.ID.String(), `{"rating":6}`, http.StatusBadRequest},
		{"unknown quiz", uuid.NewString(), `{"rating":3}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(tt.quizID, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}

	rec := post(q.ID.String(), `{"rating":5}`)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}
