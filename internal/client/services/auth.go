// Package services contains application services for the Ishara client.
// This file defines the authentication service: the network step of login
// and signup, bounded by a per-attempt timeout and retried on transient
// transport failures.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/ishara/internal/client/client"
	"github.com/dmitrijs2005/ishara/internal/client/models"
	"github.com/dmitrijs2005/ishara/internal/logging"
	"github.com/sethvargo/go-retry"
)

// AuthService defines the authentication exchange used by the session manager.
//
// Contract:
//   - Login: exchange email and credential for a user record.
//   - Register: create an account from a signup request.
//   - Close: release the underlying client.
//
// A refusal is reported through AuthResult.Reason with a nil error.
// Errors mean the exchange itself could not complete.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (*client.AuthResult, error)
	Register(ctx context.Context, req *models.SignupRequest) (*client.AuthResult, error)
	Close(ctx context.Context) error
}

// RetryPolicy bounds each attempt and the backoff between attempts.
type RetryPolicy struct {
	AttemptTimeout time.Duration
	MaxRetries     uint64
	BaseDelay      time.Duration
	MaxDelay       time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		AttemptTimeout: 5 * time.Second,
		MaxRetries:     2,
		BaseDelay:      200 * time.Millisecond,
		MaxDelay:       2 * time.Second,
	}
}

func (p RetryPolicy) backoff() retry.Backoff {
	base := p.BaseDelay
	if base <= 0 {
		base = time.Millisecond
	}
	b := retry.NewExponential(base)
	if p.MaxDelay > 0 {
		b = retry.WithCappedDuration(p.MaxDelay, b)
	}
	return retry.WithMaxRetries(p.MaxRetries, b)
}

type authService struct {
	client client.Client
	policy RetryPolicy
	log    logging.Logger
}

// NewAuthService constructs an AuthService over the given transport client.
func NewAuthService(c client.Client, policy RetryPolicy, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{client: c, policy: policy, log: log.With("component", "auth")}
}

// transient reports errors worth another attempt. A timeout of one attempt
// is transient; cancellation of the caller's context is not.
func transient(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	return errors.Is(err, client.ErrUnavailable) || errors.Is(err, context.DeadlineExceeded)
}

func (a *authService) do(ctx context.Context, op string, call func(ctx context.Context) (*client.AuthResult, error)) (*client.AuthResult, error) {
	var (
		result  *client.AuthResult
		attempt int
	)

	err := retry.Do(ctx, a.policy.backoff(), func(ctx context.Context) error {
		attempt++

		attemptCtx := ctx
		if a.policy.AttemptTimeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, a.policy.AttemptTimeout)
			defer cancel()
		}

		res, err := call(attemptCtx)
		if err == nil {
			result = res
			return nil
		}
		if transient(ctx, err) {
			a.log.Warn(ctx, "auth attempt failed, retrying", "op", op, "attempt", attempt, "err", err)
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s error: %w", op, err)
	}
	if result == nil {
		return nil, fmt.Errorf("%s error: empty response", op)
	}
	return result, nil
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*client.AuthResult, error) {
	return a.do(ctx, "login", func(ctx context.Context) (*client.AuthResult, error) {
		return a.client.Login(ctx, email, password)
	})
}

func (a *authService) Register(ctx context.Context, req *models.SignupRequest) (*client.AuthResult, error) {
	return a.do(ctx, "register", func(ctx context.Context) (*client.AuthResult, error) {
		return a.client.Register(ctx, req)
	})
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
