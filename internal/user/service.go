package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/saulo-duarte/quizmaster/internal/auth"
	"github.com/saulo-duarte/quizmaster/internal/config"
)

// CreatorSearchLimit caps the creator search results.
const CreatorSearchLimit = 10

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidID    = errors.New("invalid user id")
)

type UserService interface {
	EnsureFromClaims(ctx context.Context, claims *auth.Claims) (*User, error)
	GetCurrent(ctx context.Context) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	SearchCreators(ctx context.Context, query string) ([]string, error)
}

type userService struct {
	repo UserRepository
}

func NewService(repo UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) EnsureFromClaims(ctx context.Context, claims *auth.Claims) (*User, error) {
	log := config.WithContext(ctx)

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		log.WithError(err).Warn("Token carries an invalid user id")
		return nil, ErrInvalidID
	}

	u, err := s.repo.GetByID(ctx, id)
	if err == nil {
		if u.IsAdmin != claims.IsAdmin() {
			if err := s.repo.SetAdmin(ctx, id, claims.IsAdmin()); err != nil {
				log.WithError(err).Error("Failed to sync admin flag")
				return nil, err
			}
			u.IsAdmin = claims.IsAdmin()
		}
		return u, nil
	}
	if !errors.Is(err, ErrNotFound) {
		log.WithError(err).Error("Failed to load user")
		return nil, err
	}

	username := claims.Username
	if username == "" {
		username = id.String()
	}
	u = &User{ID: id, Username: username, Email: claims.Email, IsAdmin: claims.IsAdmin()}
	if err := s.repo.CreateIfMissing(ctx, u); err != nil {
		log.WithError(err).Error("Failed to provision user")
		return nil, err
	}

	log.WithField("username", username).Info("User provisioned")
	return s.repo.GetByID(ctx, id)
}

func (s *userService) GetCurrent(ctx context.Context) (*User, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return nil, ErrUnauthorized
	}
	return s.EnsureFromClaims(ctx, claims)
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.repo.GetByUsername(ctx, username)
}

// SearchCreators returns admin usernames containing query, ignoring case.
func (s *userService) SearchCreators(ctx context.Context, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []string{}, nil
	}

	users, err := s.repo.SearchAdmins(ctx, query, CreatorSearchLimit)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to search creators")
		return nil, err
	}

	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Username)
	}
	return names, nil
}
