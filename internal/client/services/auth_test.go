package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/ishara/internal/client/client"
	"github.com/dmitrijs2005/ishara/internal/client/models"
	"github.com/stretchr/testify/require"
)

// fakeClient returns queued errors before succeeding.
type fakeClient struct {
	errs     []error
	result   *client.AuthResult
	block    bool
	calls    int
	closeErr error

	lastEmail string
	lastPass  []byte
	lastReq   *models.SignupRequest
}

func (f *fakeClient) next(ctx context.Context) (*client.AuthResult, error) {
	f.calls++
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return nil, err
	}
	return f.result, nil
}

func (f *fakeClient) Login(ctx context.Context, email string, password []byte) (*client.AuthResult, error) {
	f.lastEmail = email
	f.lastPass = append([]byte(nil), password...)
	return f.next(ctx)
}

func (f *fakeClient) Register(ctx context.Context, req *models.SignupRequest) (*client.AuthResult, error) {
	f.lastReq = req
	return f.next(ctx)
}

func (f *fakeClient) Close() error { return f.closeErr }

func fastPolicy() RetryPolicy {
	return RetryPolicy{
		AttemptTimeout: 50 * time.Millisecond,
		MaxRetries:     2,
		BaseDelay:      time.Millisecond,
		MaxDelay:       5 * time.Millisecond,
	}
}

func okResult() *client.AuthResult {
	return &client.AuthResult{User: &models.User{ID: "1", Email: "a@x.com"}}
}

func TestLogin_PassesArgumentsThrough(t *testing.T) {
	fc := &fakeClient{result: okResult()}
	svc := NewAuthService(fc, fastPolicy(), nil)

	res, err := svc.Login(context.Background(), "a@x.com", []byte("pw"))
	require.NoError(t, err)
	require.True(t, res.OK())
	require.Equal(t, "a@x.com", fc.lastEmail)
	require.Equal(t, []byte("pw"), fc.lastPass)
	require.Equal(t, 1, fc.calls)
}

func TestLogin_RetriesUnavailableThenSucceeds(t *testing.T) {
	fc := &fakeClient{
		errs:   []error{client.ErrUnavailable, client.ErrUnavailable},
		result: okResult(),
	}
	svc := NewAuthService(fc, fastPolicy(), nil)

	res, err := svc.Login(context.Background(), "a@x.com", []byte("pw"))
	require.NoError(t, err)
	require.True(t, res.OK())
	require.Equal(t, 3, fc.calls)
}

func TestLogin_GivesUpAfterMaxRetries(t *testing.T) {
	fc := &fakeClient{
		errs: []error{client.ErrUnavailable, client.ErrUnavailable, client.ErrUnavailable, client.ErrUnavailable},
	}
	svc := NewAuthService(fc, fastPolicy(), nil)

	_, err := svc.Login(context.Background(), "a@x.com", []byte("pw"))
	require.ErrorIs(t, err, client.ErrUnavailable)
	require.True(t, strings.HasPrefix(err.Error(), "login error:"))
	require.Equal(t, 3, fc.calls)
}

func TestLogin_NonTransientErrorIsNotRetried(t *testing.T) {
	fc := &fakeClient{errs: []error{errors.New("boom")}}
	svc := NewAuthService(fc, fastPolicy(), nil)

	_, err := svc.Login(context.Background(), "a@x.com", []byte("pw"))
	require.ErrorContains(t, err, "boom")
	require.Equal(t, 1, fc.calls)
}

func TestLogin_AttemptTimeoutIsRetried(t *testing.T) {
	fc := &fakeClient{block: true}
	svc := NewAuthService(fc, fastPolicy(), nil)

	_, err := svc.Login(context.Background(), "a@x.com", []byte("pw"))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Equal(t, 3, fc.calls)
}

func TestLogin_CallerCancellationStopsRetries(t *testing.T) {
	fc := &fakeClient{block: true}
	svc := NewAuthService(fc, fastPolicy(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Login(ctx, "a@x.com", []byte("pw"))
	require.Error(t, err)
	require.LessOrEqual(t, fc.calls, 1)
}

func TestRegister_RejectionIsNotAnError(t *testing.T) {
	fc := &fakeClient{result: &client.AuthResult{Reason: "email already registered"}}
	svc := NewAuthService(fc, fastPolicy(), nil)

	req := &models.SignupRequest{Email: "a@x.com", Password: []byte("pw")}
	res, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.OK())
	require.Equal(t, "email already registered", res.Reason)
	require.Same(t, req, fc.lastReq)
}

func TestRegister_NilResultIsAnError(t *testing.T) {
	fc := &fakeClient{}
	svc := NewAuthService(fc, fastPolicy(), nil)

	_, err := svc.Register(context.Background(), &models.SignupRequest{Password: []byte("pw")})
	require.ErrorContains(t, err, "register error: empty response")
}

func TestClose_ErrorPropagates(t *testing.T) {
	fc := &fakeClient{closeErr: errors.New("io")}
	svc := NewAuthService(fc, fastPolicy(), nil)

	require.Error(t, svc.Close(context.Background()))
}

func TestWithMockClient(t *testing.T) {
	svc := NewAuthService(client.NewMockClient(0), DefaultRetryPolicy(), nil)

	res, err := svc.Login(context.Background(), "a@x.com", []byte("pw"))
	require.NoError(t, err)
	require.Equal(t, "a@x.com", res.User.Email)
}
