package profile

type UpdateProfileDTO struct {
	Bio         *string         `json:"bio,omitempty" validate:"omitempty,max=500"`
	Location    *string         `json:"location,omitempty" validate:"omitempty,max=100"`
	Website     *string         `json:"website,omitempty" validate:"omitempty,max=200,url"`
	Preferences *PreferencesDTO `json:"preferences,omitempty"`
}

type PreferencesDTO struct {
	Theme         string `json:"theme" validate:"omitempty,oneof=light dark auto"`
	Notifications bool   `json:"notifications"`
	PublicProfile bool   `json:"public_profile"`
}
