package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ishara/internal/client/models"
	"github.com/dmitrijs2005/ishara/internal/client/session"
	"github.com/dmitrijs2005/ishara/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var (
	errPasswordMismatch = errors.New("passwords do not match")
	errUnknownUserType  = errors.New("unknown user type")
)

// failureNotice maps a session error to what the user is told. Details go to
// the log only.
func failureNotice(err error) string {
	switch {
	case errors.Is(err, session.ErrInvalidCredentials):
		return "Email and password are required."
	case errors.Is(err, models.ErrInvalidSignup):
		return "Some of the details are invalid: " + err.Error()
	case errors.Is(err, session.ErrRejected):
		return "The server refused the request."
	case errors.Is(err, session.ErrPersistence):
		return "Could not save the session on this device."
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "The request was cancelled."
	default:
		return "Something went wrong. Please try again."
	}
}

// Login prompts for credentials and signs in through the session manager.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.session.Login(ctx, email, password)
	if err != nil {
		a.log.Warn(ctx, "login unsuccessful", "err", err)
		fmt.Fprintln(a.out, "Login failed.", failureNotice(err))
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", u.Name)
	return nil
}

// Signup collects a partial profile and a confirmed password, then creates
// the account. A confirmation mismatch aborts before anything is sent.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name (optional)", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email (optional)", a.out)
	if err != nil {
		return err
	}
	rawType, err := getSimpleText(a.reader, "I am (deaf, hearing, interpreter, educator; default hearing)", a.out)
	if err != nil {
		return err
	}
	userType, ok := models.ParseUserType(rawType)
	if !ok {
		fmt.Fprintf(a.out, "Unknown user type %q\n", rawType)
		return errUnknownUserType
	}
	language, err := getSimpleText(a.reader, "Preferred language (default hindi)", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Create password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	strength := models.PasswordStrength(password)
	fmt.Fprintf(a.out, "Password strength: %s\n", models.StrengthLabel(strength))

	confirm, err := getPassword(a.out, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if !bytes.Equal(password, confirm) {
		fmt.Fprintln(a.out, "Passwords do not match.")
		return errPasswordMismatch
	}

	u, err := a.session.Signup(ctx, models.SignupRequest{
		Name:              name,
		Email:             email,
		UserType:          userType,
		PreferredLanguage: language,
		Password:          password,
	})
	if err != nil {
		a.log.Warn(ctx, "signup unsuccessful", "err", err)
		fmt.Fprintln(a.out, "Signup failed.", failureNotice(err))
		return err
	}

	fmt.Fprintf(a.out, "Account created. Welcome, %s!\n", u.Name)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	if err := a.session.Logout(ctx); err != nil {
		a.log.Warn(ctx, "logout unsuccessful", "err", err)
		fmt.Fprintln(a.out, "Logout failed.", failureNotice(err))
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) WhoAmI(_ context.Context) error {
	u := a.session.CurrentUser()
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}

	p := u.Preferences
	fmt.Fprintf(a.out, "ID:       %s\n", u.ID)
	fmt.Fprintf(a.out, "Name:     %s\n", u.Name)
	fmt.Fprintf(a.out, "Email:    %s\n", u.Email)
	fmt.Fprintf(a.out, "Type:     %s\n", u.UserType)
	fmt.Fprintf(a.out, "Language: %s\n", p.PreferredLanguage)
	fmt.Fprintf(a.out, "Font:     %s\n", p.FontSize)
	fmt.Fprintf(a.out, "Contrast: %t\n", p.HighContrast)
	fmt.Fprintf(a.out, "Vibrate:  %t\n", p.VibrationAlerts)
	return nil
}

func (a *App) Status(_ context.Context) error {
	mode := a.Mode()
	if mode == "" {
		mode = "unknown"
	}
	fmt.Fprintf(a.out, "Session: %s\n", a.session.State())
	fmt.Fprintf(a.out, "Busy:    %t\n", a.session.Busy())
	fmt.Fprintf(a.out, "Backend: %s\n", mode)
	return nil
}
