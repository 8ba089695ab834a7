package notification_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/quizmaster/internal/dbtest"
	"github.com/saulo-duarte/quizmaster/internal/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRoutes(t *testing.T) {
	db := dbtest.Open(t, &notification.Notification{})
	c := notification.NewNotificationContainer(db)
	userID := uuid.New()

	n, err := c.Service.Emit(asUser(userID), userID, notification.TypeSystem, "Welcome", "hi")
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Mount("/api/notifications", notification.Routes(c.Handler))

	do := func(method, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil).WithContext(asUser(userID))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	rec := do(http.MethodGet, "/api/notifications/")
	require.Equal(t, http.StatusOK, rec.Code)
	var inbox struct {
		Notifications []map[string]interface{} `json:"notifications"`
		UnreadCount   int                      `json:"unread_count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &inbox))
	assert.Equal(t, 1, inbox.UnreadCount)
	assert.Equal(t, "Welcome", inbox.Notifications[0]["title"])

	rec = do(http.MethodPost, "/api/notifications/"+uuid.NewString()+"/read/")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(http.MethodPost, "/api/notifications/not-a-uuid/read/")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(http.MethodPost, "/api/notifications/"+n.ID.String()+"/read/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = do(http.MethodPost, "/api/notifications/read-all/")
	assert.Equal(t, http.StatusOK, rec.Code)
}
