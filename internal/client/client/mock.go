package client

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/ishara/internal/client/models"
	"github.com/google/uuid"
)

// DefaultLatency is the artificial round trip of MockClient.
const DefaultLatency = time.Second

// MockClient fabricates successful results after a fixed delay. It performs
// no credential checks and must be replaced by a real backend client before
// production use.
type MockClient struct {
	latency time.Duration
	newID   func() string
}

func NewMockClient(latency time.Duration) *MockClient {
	if latency < 0 {
		latency = 0
	}
	return &MockClient{
		latency: latency,
		newID:   func() string { return uuid.NewString() },
	}
}

func (m *MockClient) wait(ctx context.Context) error {
	if m.latency == 0 {
		return ctx.Err()
	}
	t := time.NewTimer(m.latency)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LoginID derives a stable identifier from an email so that repeated logins
// of one account keep the same ID.
func LoginID(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+normalized)).String()
}

// Login returns the demo profile carrying email as given.
func (m *MockClient) Login(ctx context.Context, email string, _ []byte) (*AuthResult, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	u := &models.User{
		ID:    LoginID(email),
		Email: email,
	}
	u.ApplyDefaults(models.DefaultLoginName)

	return &AuthResult{User: u}, nil
}

// Register creates a fresh account record with a random identifier.
func (m *MockClient) Register(ctx context.Context, req *models.SignupRequest) (*AuthResult, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	return &AuthResult{User: req.NewUser(m.newID())}, nil
}

func (m *MockClient) Close() error { return nil }
