package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("user not found")

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*User, error)
	CreateIfMissing(ctx context.Context, u *User) error
	SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) error
	SearchAdmins(ctx context.Context, query string, limit int) ([]*User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*User, error) {
	out := make(map[uuid.UUID]*User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var users []*User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

func (r *userRepository) CreateIfMissing(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(u).Error
}

func (r *userRepository) SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) error {
	return r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("is_admin", isAdmin).Error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// SearchAdmins matches a case-insensitive substring of the username on postgres and sqlite.
func (r *userRepository) SearchAdmins(ctx context.Context, query string, limit int) ([]*User, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"

	var users []*User
	err := r.db.WithContext(ctx).
		Where("is_admin = ?", true).
		Where(`LOWER(username) LIKE ? ESCAPE '\'`, pattern).
		Order("username ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}
