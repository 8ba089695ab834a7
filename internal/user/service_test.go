package user_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/saulo-duarte/quizmaster/internal/auth"
	"github.com/saulo-duarte/quizmaster/internal/dbtest"
	"github.com/saulo-duarte/quizmaster/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureFromClaimsIsIdempotent(t *testing.T) {
	db := dbtest.Open(t, &user.User{})
	svc := user.NewService(user.NewRepository(db))
	ctx := context.Background()

	id := uuid.New()
	claims := &auth.Claims{UserID: id.String(), Username: "bruno", Email: "bruno@example.com"}

	first, err := svc.EnsureFromClaims(ctx, claims)
	require.NoError(t, err)
	second, err := svc.EnsureFromClaims(ctx, claims)
	require.NoError(t, err)

	assert.Equal(t, id, first.ID)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "bruno", second.Username)

	var count int64
	require.NoError(t, db.Model(&user.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestEnsureFromClaimsRejectsBadSubject(t *testing.T) {
	db := dbtest.Open(t, &user.User{})
	svc := user.NewService(user.NewRepository(db))

	_, err := svc.EnsureFromClaims(context.Background(), &auth.Claims{UserID: "not-a-uuid"})
	assert.ErrorIs(t, err, user.ErrInvalidID)
}

func TestGetCurrentWithoutClaims(t *testing.T) {
	db := dbtest.Open(t, &user.User{})
	svc := user.NewService(user.NewRepository(db))

	_, err := svc.GetCurrent(context.Background())
	assert.ErrorIs(t, err, user.ErrUnauthorized)
}

func TestEnsureFromClaimsSyncsAdminFlag(t *testing.T) {
	db := dbtest.Open(t, &user.User{})
	svc := user.NewService(user.NewRepository(db))
	ctx := context.Background()
	id := uuid.New()

	u, err := svc.EnsureFromClaims(ctx, &auth.Claims{UserID: id.String(), Username: "carla", Role: auth.RoleUser})
	require.NoError(t, err)
	assert.False(t, u.IsAdmin)

	u, err = svc.EnsureFromClaims(ctx, &auth.Claims{UserID: id.String(), Username: "carla", Role: auth.RoleAdmin})
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)

	var stored user.User
	require.NoError(t, db.First(&stored, "id = ?", id).Error)
	assert.True(t, stored.IsAdmin)
}

func seedUsers(t *testing.T, svc user.UserService, admins []string, players []string) {
	t.Helper()
	for _, name := range admins {
		_, err := svc.EnsureFromClaims(context.Background(), &auth.Claims{UserID: uuid.NewString(), Username: name, Role: auth.RoleAdmin})
		require.NoError(t, err)
	}
	for _, name := range players {
		_, err := svc.EnsureFromClaims(context.Background(), &auth.Claims{UserID: uuid.NewString(), Username: name, Role: auth.RoleUser})
		require.NoError(t, err)
	}
}

func TestSearchCreators(t *testing.T) {
	db := dbtest.Open(t, &user.User{})
	svc := user.NewService(user.NewRepository(db))
	ctx := context.Background()

	seedUsers(t, svc, []string{"MathTeacher", "mathpro", "history_buff"}, []string{"mathfan"})

	t.Run("CaseInsensitiveAdminsOnly", func(t *testing.T) {
		names, err := svc.SearchCreators(ctx, "MATH")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"MathTeacher", "mathpro"}, names)
	})

	t.Run("BlankQuery", func(t *testing.T) {
		names, err := svc.SearchCreators(ctx, "  ")
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("WildcardsAreLiteral", func(t *testing.T) {
		names, err := svc.SearchCreators(ctx, "_")
		require.NoError(t, err)
		assert.Equal(t, []string{"history_buff"}, names)

		names, err = svc.SearchCreators(ctx, "%")
		require.NoError(t, err)
		assert.Empty(t, names)
	})
}

func TestSearchCreatorsIsCapped(t *testing.T) {
	db := dbtest.Open(t, &user.User{})
	svc := user.NewService(user.NewRepository(db))

	admins := make([]string, 0, 12)
	for i := 0; i < 12; i++ {
		admins = append(admins, fmt.Sprintf("author%02d", i))
	}
	seedUsers(t, svc, admins, nil)

	names, err := svc.SearchCreators(context.Background(), "author")
	require.NoError(t, err)
	assert.Len(t, names, user.CreatorSearchLimit)
	assert.Equal(t, "author00", names[0])
}

func TestSearchCreatorsHandler(t *testing.T) {
	db := dbtest.Open(t, &user.User{})
	svc := user.NewService(user.NewRepository(db))
	seedUsers(t, svc, []string{"quizzer"}, nil)
	h := user.NewHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/quizzes/creators?q=QUIZ", nil)
	rec := httptest.NewRecorder()
	h.SearchCreators(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Creators []struct {
			Username string `json:"username"`
		} `json:"creators"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Creators, 1)
	assert.Equal(t, "quizzer", body.Creators[0].Username)

	rec = httptest.NewRecorder()
	h.SearchCreators(rec, httptest.NewRequest(http.MethodGet, "/quizzes/creators", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"creators":[]}`, rec.Body.String())
}
