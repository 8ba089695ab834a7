package auth_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/saulo-duarte/quizmaster/internal/auth"
)

const testSecret = "uma-chave-secreta-para-testes-segura-e-longa"
const testUserID = "6b1f8f38-2f4e-4d3c-9a55-0b3a3c2f7f11"
const testUsername = "ana"
const testRole = auth.RoleAdmin

func TestInit(t *testing.T) {
	t.Run("MissingSecret", func(t *testing.T) {
		os.Unsetenv("JWT_SECRET")

		defer func() {
			if r := recover(); r == nil {
				t.Errorf("Init() should panic when JWT_SECRET is empty")
			}
		}()

		auth.Init()
	})

	t.Run("ValidSecret", func(t *testing.T) {
		os.Setenv("JWT_SECRET", testSecret)
		auth.Init()
	})
}

func TestGenerateAndValidateJWT(t *testing.T) {
	os.Setenv("JWT_SECRET", testSecret)
	auth.Init()

	t.Run("ValidToken", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT(testUserID, testUsername, testRole, 5*time.Minute)
		if err != nil {
			t.Fatalf("GenerateJWT failed: %v", err)
		}

		claims, err := auth.ValidateJWT(tokenStr)
		if err != nil {
			t.Fatalf("ValidateJWT failed: %v", err)
		}

		if claims.UserID != testUserID {
			t.Errorf("UserID = %s, want %s", claims.UserID, testUserID)
		}
		if claims.Username != testUsername {
			t.Errorf("Username = %s, want %s", claims.Username, testUsername)
		}
		if !claims.IsAdmin() {
			t.Errorf("Role = %s, want admin", claims.Role)
		}
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT(testUserID, testUsername, testRole, -time.Minute)
		if err != nil {
			t.Fatalf("GenerateJWT failed: %v", err)
		}

		_, err = auth.ValidateJWT(tokenStr)
		if err == nil {
			t.Fatal("ValidateJWT should fail for an expired token")
		}
		if !errors.Is(err, jwt.ErrTokenExpired) {
			t.Errorf("err = %v, want %v", err, jwt.ErrTokenExpired)
		}
	})

	t.Run("InvalidSignature", func(t *testing.T) {
		os.Setenv("JWT_SECRET", "chave-secreta-falsa-diferente")
		auth.Init()
		tokenStr, err := auth.GenerateJWT(testUserID, testUsername, testRole, time.Minute)
		if err != nil {
			t.Fatalf("GenerateJWT failed: %v", err)
		}

		os.Setenv("JWT_SECRET", testSecret)
		auth.Init()

		_, err = auth.ValidateJWT(tokenStr)
		if !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			t.Errorf("err = %v, want %v", err, jwt.ErrTokenSignatureInvalid)
		}
	})
}

func TestAuthMiddleware(t *testing.T) {
	os.Setenv("JWT_SECRET", testSecret)
	auth.Init()

	var gotUserID string
	h := auth.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := auth.GetUserClaimsFromContext(r.Context())
		if err != nil {
			t.Fatalf("claims missing: %v", err)
		}
		gotUserID = claims.UserID
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("NoToken", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("BearerHeader", func(t *testing.T) {
		tokenStr, _ := auth.GenerateJWT(testUserID, testUsername, auth.RoleUser, time.Minute)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tokenStr)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent || gotUserID != testUserID {
			t.Fatalf("status = %d user = %q", rec.Code, gotUserID)
		}
	})

	t.Run("Cookie", func(t *testing.T) {
		gotUserID = ""
		tokenStr, _ := auth.GenerateJWT(testUserID, testUsername, auth.RoleUser, time.Minute)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "jwt", Value: tokenStr})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent || gotUserID != testUserID {
			t.Fatalf("status = %d user = %q", rec.Code, gotUserID)
		}
	})
}
