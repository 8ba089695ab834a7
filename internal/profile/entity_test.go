package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverageScore(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		want    float64
	}{
		{"no quizzes", Profile{}, 0},
		{"whole number", Profile{TotalQuizzesTaken: 2, TotalScore: 8}, 4},
		{"rounded to two decimals", Profile{TotalQuizzesTaken: 3, TotalScore: 10}, 3.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.profile.AverageScore())
		})
	}
}

func TestDecodePreferencesDefaults(t *testing.T) {
	p := Profile{}
	assert.Equal(t, DefaultPreferences(), p.DecodePreferences())

	p.Preferences = []byte(`{"theme":"dark","notifications":false,"public_profile":true}`)
	prefs := p.DecodePreferences()
	assert.Equal(t, ThemeDark, prefs.Theme)
	assert.False(t, prefs.Notifications)
}
