package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/ishara/internal/client/client"
	"github.com/dmitrijs2005/ishara/internal/client/metrics"
	"github.com/dmitrijs2005/ishara/internal/client/models"
	"github.com/dmitrijs2005/ishara/internal/client/services"
	"github.com/dmitrijs2005/ishara/internal/logging"
	"github.com/google/uuid"
)

type State int32

const (
	StateUninitialized State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

type Option func(*Manager)

func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.log = l }
}

func WithMetrics(s *metrics.Session) Option {
	return func(m *Manager) { m.metrics = s }
}

type Manager struct {
	auth    services.AuthService
	slot    Slot
	log     logging.Logger
	metrics *metrics.Session

	// opMu serializes session-changing operations end to end.
	opMu sync.Mutex

	mu    sync.RWMutex
	state State
	user  *models.User

	pending atomic.Int32
}

// NewManager returns a manager in StateUninitialized. Call Restore once
// before anything else.
func NewManager(auth services.AuthService, slot Slot, opts ...Option) *Manager {
	m := &Manager{auth: auth, slot: slot}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = logging.Nop()
	}
	m.log = m.log.With("component", "session")
	return m
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// CurrentUser returns a copy of the current user, or nil when nobody is
// signed in.
func (m *Manager) CurrentUser() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user.Clone()
}

// Busy is true while a login or signup is pending, and until Restore has run.
func (m *Manager) Busy() bool {
	return m.pending.Load() > 0 || m.State() == StateUninitialized
}

func (m *Manager) set(state State, u *models.User) {
	m.mu.Lock()
	m.state = state
	m.user = u
	m.mu.Unlock()
	m.metrics.SetAuthenticated(state == StateAuthenticated)
}

func decodeUser(data []byte) (*models.User, error) {
	var u models.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, err
	}
	if u.ID == "" {
		return nil, errors.New("record has no id")
	}
	return &u, nil
}

// Restore loads the durable slot and leaves StateUninitialized. A missing or
// unreadable record yields StateAnonymous. A storage failure also yields
// StateAnonymous, and is returned as a *PersistenceError.
func (m *Manager) Restore(ctx context.Context) (err error) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	if m.State() != StateUninitialized {
		return ErrAlreadyInitialized
	}

	started := time.Now()
	defer func() { m.metrics.Observe("restore", started, err) }()

	data, err := m.slot.Load(ctx)
	if errors.Is(err, ErrSlotEmpty) {
		m.set(StateAnonymous, nil)
		m.log.Debug(ctx, "no stored session")
		return nil
	}
	if err != nil {
		m.set(StateAnonymous, nil)
		m.log.Error(ctx, "session slot unreadable", "err", err)
		return &PersistenceError{Op: "load", Err: err}
	}

	u, decodeErr := decodeUser(data)
	if decodeErr != nil {
		m.set(StateAnonymous, nil)
		m.log.Warn(ctx, "discarding unparseable stored session", "err", decodeErr)
		return nil
	}

	u.ApplyDefaults(models.DefaultLoginName)
	m.set(StateAuthenticated, u)
	m.log.Info(ctx, "session restored", "user_id", u.ID)
	return nil
}

// Login exchanges email and password for a user record, persists it and
// makes it current. Any non-empty pair is accepted by the mock backend. The
// email is passed on exactly as supplied.
func (m *Manager) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	if m.State() == StateUninitialized {
		return nil, ErrNotInitialized
	}
	if strings.TrimSpace(email) == "" || len(password) == 0 {
		return nil, ErrInvalidCredentials
	}

	return m.authenticate(ctx, "login", models.DefaultLoginName, func(ctx context.Context) (*client.AuthResult, error) {
		return m.auth.Login(ctx, email, password)
	})
}

// Signup registers a new account from a partial profile, persists the
// resulting record and makes it current.
func (m *Manager) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	if m.State() == StateUninitialized {
		return nil, ErrNotInitialized
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return m.authenticate(ctx, "signup", models.DefaultSignupName, func(ctx context.Context) (*client.AuthResult, error) {
		return m.auth.Register(ctx, &req)
	})
}

func (m *Manager) authenticate(
	ctx context.Context,
	op string,
	fallbackName string,
	exchange func(ctx context.Context) (*client.AuthResult, error),
) (_ *models.User, err error) {
	m.pending.Add(1)
	defer m.pending.Add(-1)

	m.opMu.Lock()
	defer m.opMu.Unlock()

	started := time.Now()
	defer func() { m.metrics.Observe(op, started, err) }()

	if m.State() == StateUninitialized {
		return nil, ErrNotInitialized
	}

	res, err := exchange(ctx)
	if err != nil {
		m.log.Warn(ctx, "auth exchange failed", "op", op, "err", err)
		return nil, err
	}
	if !res.OK() {
		reason := res.Reason
		if reason == "" {
			reason = "no user in response"
		}
		m.log.Info(ctx, "auth rejected", "op", op, "reason", reason)
		return nil, &RejectedError{Reason: reason}
	}

	u := res.User.Clone()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.ApplyDefaults(fallbackName)

	data, err := json.Marshal(u)
	if err != nil {
		return nil, &PersistenceError{Op: "encode", Err: err}
	}
	if err := m.slot.Store(ctx, data); err != nil {
		m.log.Error(ctx, "session not persisted", "op", op, "err", err)
		return nil, &PersistenceError{Op: "store", Err: err}
	}

	m.set(StateAuthenticated, u)
	m.log.Info(ctx, "session started", "op", op, "user_id", u.ID)
	return u.Clone(), nil
}

// Logout drops the stored record and clears the current user. It is a no-op
// when nobody is signed in.
func (m *Manager) Logout(ctx context.Context) (err error) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	switch m.State() {
	case StateUninitialized:
		return ErrNotInitialized
	case StateAnonymous:
		return nil
	}

	started := time.Now()
	defer func() { m.metrics.Observe("logout", started, err) }()

	if err := m.slot.Clear(ctx); err != nil {
		m.log.Error(ctx, "session slot not cleared", "err", err)
		return &PersistenceError{Op: "clear", Err: err}
	}

	m.set(StateAnonymous, nil)
	m.log.Info(ctx, "session ended")
	return nil
}
