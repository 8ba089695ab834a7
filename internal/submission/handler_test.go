package submission_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/quizmaster/internal/submission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitQuizHandler(t *testing.T) {
	f := newFixture(t)
	h := submission.NewHandler(f.svc)
	userID := uuid.New()

	r := chi.NewRouter()
	r.Post("/quizzes/{id}/submissions", h.SubmitQuiz)
	r.Mount("/submissions", submission.Routes(h))

	post := func(body []byte) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/quizzes/"+f.quiz.ID.String()+"/submissions", bytes.NewReader(body))
		req = req.WithContext(asUser(userID))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	rec := post([]byte(`{"answers":`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post([]byte(`{"answers":{},"time_taken_seconds":-1}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body, err := json.Marshal(f.perfectAnswers())
	require.NoError(t, err)
	rec = post(body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID         string  `json:"id"`
		Score      int     `json:"score"`
		Percentage float64 `json:"percentage"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 8, created.Score)
	assert.Equal(t, 100.0, created.Percentage)

	rec = post(body)
	assert.Equal(t, http.StatusConflict, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/submissions/"+created.ID, nil).WithContext(asUser(userID))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/submissions/", nil).WithContext(asUser(userID))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSubmitQuizHandlerConflictFromUniqueIndex(t *testing.T) {
	f := newFixture(t)
	svc := submission.NewService(f.db, staleExists{f.subRepo}, f.quizzes, f.profiles, f.streaks, f.notes, f.achievements)
	h := submission.NewHandler(svc)
	userID := uuid.New()

	earlier := &submission.Submission{QuizID: f.quiz.ID, UserID: userID, TotalPoints: 8}
	require.NoError(t, f.subRepo.Create(asUser(userID), nil, earlier))

	r := chi.NewRouter()
	r.Post("/quizzes/{id}/submissions", h.SubmitQuiz)

	body, err := json.Marshal(f.perfectAnswers())
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/quizzes/"+f.quiz.ID.String()+"/submissions", bytes.NewReader(body))
	req = req.WithContext(asUser(userID))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}
