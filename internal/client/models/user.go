// Package models defines the client-side account types: the User record kept
// in the durable session slot, its preferences, and signup input.
package models

import "strings"

// UserType is the account category chosen at signup.
type UserType string

const (
	UserTypeDeaf        UserType = "deaf"
	UserTypeHearing     UserType = "hearing"
	UserTypeInterpreter UserType = "interpreter"
	UserTypeEducator    UserType = "educator"
)

// Valid reports whether t is one of the known categories.
func (t UserType) Valid() bool {
	switch t {
	case UserTypeDeaf, UserTypeHearing, UserTypeInterpreter, UserTypeEducator:
		return true
	}
	return false
}

// ParseUserType accepts a category name in any case. Empty input yields ""
// with ok=true so callers can leave the field unset.
func ParseUserType(s string) (UserType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", true
	}
	t := UserType(s)
	return t, t.Valid()
}

// FontSize is the reading size preference.
type FontSize string

const (
	FontSizeSmall  FontSize = "small"
	FontSizeMedium FontSize = "medium"
	FontSizeLarge  FontSize = "large"
)

// Defaults shared by login and signup.
const (
	DefaultUserType          = UserTypeHearing
	DefaultPreferredLanguage = "hindi"
	DefaultFontSize          = FontSizeMedium
	DefaultLoginName         = "Demo User"
	DefaultSignupName        = "New User"
)

type Preferences struct {
	PreferredLanguage string   `json:"preferredLanguage"`
	FontSize          FontSize `json:"fontSize"`
	HighContrast      bool     `json:"highContrast"`
	VibrationAlerts   bool     `json:"vibrationAlerts"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		PreferredLanguage: DefaultPreferredLanguage,
		FontSize:          DefaultFontSize,
		HighContrast:      false,
		VibrationAlerts:   true,
	}
}

// User is the account record held as "current" by the session manager and
// serialized whole into the durable slot. ID never changes once assigned.
type User struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	UserType    UserType    `json:"userType"`
	Preferences Preferences `json:"preferences"`
}

// Clone returns an independent copy; nil stays nil.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// ApplyDefaults fills every unset field except ID. A zero Preferences value
// is treated as absent and replaced wholesale, since its booleans cannot
// otherwise be told apart from explicit false.
func (u *User) ApplyDefaults(fallbackName string) {
	if u.Name == "" {
		u.Name = fallbackName
	}
	if u.UserType == "" {
		u.UserType = DefaultUserType
	}
	if u.Preferences == (Preferences{}) {
		u.Preferences = DefaultPreferences()
		return
	}
	if u.Preferences.PreferredLanguage == "" {
		u.Preferences.PreferredLanguage = DefaultPreferredLanguage
	}
	if u.Preferences.FontSize == "" {
		u.Preferences.FontSize = DefaultFontSize
	}
}
