package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User mirrors the account owned by the identity provider.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(150);not null;uniqueIndex" json:"username"`
	Email     string    `gorm:"type:varchar(254)" json:"email,omitempty"`
	IsAdmin   bool      `gorm:"not null;index" json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
