package client

import (
	"context"

	"github.com/dmitrijs2005/ishara/internal/client/models"
)

// AuthResult is the outcome of one authentication exchange: either a User on
// success, or a non-empty Reason when the backend refused the request.
type AuthResult struct {
	User   *models.User
	Reason string
}

// OK reports whether the exchange produced a user.
func (r *AuthResult) OK() bool {
	return r != nil && r.Reason == "" && r.User != nil
}

// Client is the transport contract for the authentication backend.
// Transport failures come back as errors; refusals come back as a result
// with a Reason.
type Client interface {
	Login(ctx context.Context, email string, password []byte) (*AuthResult, error)
	Register(ctx context.Context, req *models.SignupRequest) (*AuthResult, error)
	Close() error
}
