package profile

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

type Preferences struct {
	Theme         Theme `json:"theme"`
	Notifications bool  `json:"notifications"`
	PublicProfile bool  `json:"public_profile"`
}

func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeLight, Notifications: true, PublicProfile: true}
}

// Profile holds the per-user running totals. TotalScore is the sum of all submission scores.
type Profile struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"-"`
	UserID            uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	IsAdmin           bool           `gorm:"not null;default:false" json:"is_admin"`
	TotalQuizzesTaken int            `gorm:"not null;default:0" json:"total_quizzes_taken"`
	TotalScore        int            `gorm:"not null;default:0;index" json:"total_score"`
	Bio               string         `gorm:"type:varchar(500)" json:"bio"`
	Location          string         `gorm:"type:varchar(100)" json:"location"`
	Website           string         `gorm:"type:varchar(200)" json:"website"`
	Preferences       datatypes.JSON `json:"preferences"`
	JoinedDate        time.Time      `gorm:"not null" json:"joined_date"`
	LastActivity      time.Time      `gorm:"not null" json:"last_activity"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now().UTC()
	if p.JoinedDate.IsZero() {
		p.JoinedDate = now
	}
	if p.LastActivity.IsZero() {
		p.LastActivity = now
	}
	if len(p.Preferences) == 0 {
		raw, err := json.Marshal(DefaultPreferences())
		if err != nil {
			return err
		}
		p.Preferences = datatypes.JSON(raw)
	}
	return nil
}

// AverageScore is total_score / total_quizzes_taken rounded to two decimals, or 0.
func (p *Profile) AverageScore() float64 {
	if p.TotalQuizzesTaken <= 0 {
		return 0
	}
	return round2(float64(p.TotalScore) / float64(p.TotalQuizzesTaken))
}

func (p *Profile) DecodePreferences() Preferences {
	prefs := DefaultPreferences()
	if len(p.Preferences) > 0 {
		_ = json.Unmarshal(p.Preferences, &prefs)
	}
	return prefs
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
