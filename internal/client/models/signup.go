package models

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidSignup = errors.New("invalid signup data")

// SignupRequest is the partial user supplied on signup plus the credential.
// Every profile field is optional; unset ones take the defaults.
type SignupRequest struct {
	Name              string   `json:"name" validate:"omitempty,max=100"`
	Email             string   `json:"email" validate:"omitempty,email"`
	UserType          UserType `json:"userType" validate:"omitempty,oneof=deaf hearing interpreter educator"`
	PreferredLanguage string   `json:"preferredLanguage" validate:"omitempty,max=32"`
	Password          []byte   `json:"-" validate:"required,min=1"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the request and reports the offending fields wrapped in
// ErrInvalidSignup.
func (r *SignupRequest) Validate() error {
	err := validatorInstance().Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidSignup, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidSignup, strings.Join(fields, ", "))
}

// NewUser builds the record a backend would create for r under id,
// with defaults for everything r leaves unset.
func (r *SignupRequest) NewUser(id string) *User {
	u := &User{
		ID:          id,
		Name:        strings.TrimSpace(r.Name),
		Email:       strings.TrimSpace(r.Email),
		UserType:    r.UserType,
		Preferences: DefaultPreferences(),
	}
	if lang := strings.TrimSpace(r.PreferredLanguage); lang != "" {
		u.Preferences.PreferredLanguage = strings.ToLower(lang)
	}
	u.ApplyDefaults(DefaultSignupName)
	return u
}
