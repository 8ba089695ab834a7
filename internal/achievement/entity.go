package achievement

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Type string

const (
	TypeQuizCount    Type = "quiz_count"
	TypeHighScore    Type = "high_score"
	TypeStreak       Type = "streak"
	TypePerfectScore Type = "perfect_score"
)

type Achievement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Icon        string    `gorm:"type:varchar(50)" json:"icon"`
	Color       string    `gorm:"type:varchar(20)" json:"color"`
	Requirement int       `gorm:"not null" json:"requirement"`
	Type        Type      `gorm:"column:achievement_type;type:varchar(20);not null" json:"type"`
}

type UserAchievement struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_achievement" json:"-"`
	AchievementID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_achievement" json:"achievement_id"`
	EarnedAt      time.Time `gorm:"not null" json:"earned_at"`

	Achievement *Achievement `gorm:"foreignKey:AchievementID;constraint:OnDelete:CASCADE" json:"achievement,omitempty"`
}

func (a *Achievement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (ua *UserAchievement) BeforeCreate(tx *gorm.DB) error {
	if ua.ID == uuid.Nil {
		ua.ID = uuid.New()
	}
	if ua.EarnedAt.IsZero() {
		ua.EarnedAt = time.Now().UTC()
	}
	return nil
}

// DefaultCatalog is the built-in set of achievements seeded at startup.
func DefaultCatalog() []Achievement {
	return []Achievement{
		{Name: "First Steps", Description: "Complete your first quiz", Icon: "fa-star", Color: "text-success", Requirement: 1, Type: TypeQuizCount},
		{Name: "Quiz Master", Description: "Complete 10 quizzes", Icon: "fa-trophy", Color: "text-warning", Requirement: 10, Type: TypeQuizCount},
		{Name: "Perfect Score", Description: "Score 100% on a quiz", Icon: "fa-gem", Color: "text-primary", Requirement: 100, Type: TypeHighScore},
		{Name: "Consistent Performer", Description: "Complete 25 quizzes", Icon: "fa-chart-line", Color: "text-info", Requirement: 25, Type: TypeQuizCount},
	}
}
