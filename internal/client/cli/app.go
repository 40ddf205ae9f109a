package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/ishara/internal/client/client"
	"github.com/dmitrijs2005/ishara/internal/client/config"
	"github.com/dmitrijs2005/ishara/internal/client/metrics"
	"github.com/dmitrijs2005/ishara/internal/client/models"
	"github.com/dmitrijs2005/ishara/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/ishara/internal/client/services"
	"github.com/dmitrijs2005/ishara/internal/client/session"
	"github.com/dmitrijs2005/ishara/internal/filex"
	"github.com/dmitrijs2005/ishara/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	databaseFile = "ishara.db"
	pingTimeout  = 3 * time.Second
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// sessionManager is the part of *session.Manager the CLI drives.
type sessionManager interface {
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Signup(ctx context.Context, req models.SignupRequest) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser() *models.User
	State() session.State
	Busy() bool
}

type pinger interface {
	Ping(ctx context.Context) error
}

type App struct {
	config   *config.Config
	session  sessionManager
	probe    pinger
	log      logging.Logger
	registry *prometheus.Registry
	closers  []func() error

	reader *bufio.Reader
	out    io.Writer

	modeMu sync.RWMutex
	mode   Mode
}

// NewApp wires storage, the auth backend and the session manager from c, and
// restores any stored session. A slot that cannot be read leaves the app
// anonymous rather than failing start-up.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}

	a := &App{
		config:   c,
		log:      log,
		registry: prometheus.NewRegistry(),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}

	slot, err := a.openSlot(ctx)
	if err != nil {
		return nil, err
	}

	retries := c.AuthRetries
	if retries < 0 {
		retries = 0
	}
	policy := services.DefaultRetryPolicy()
	policy.AttemptTimeout = c.AuthTimeout
	policy.MaxRetries = uint64(retries)

	auth := services.NewAuthService(client.NewMockClient(c.AuthLatency), policy, log)
	a.closers = append(a.closers, func() error { return auth.Close(context.Background()) })

	mgr := session.NewManager(auth, slot,
		session.WithLogger(log),
		session.WithMetrics(metrics.NewSession(a.registry)),
	)
	if err := mgr.Restore(ctx); err != nil {
		if !errors.Is(err, session.ErrPersistence) {
			_ = a.Close()
			return nil, err
		}
		log.Warn(ctx, "starting without stored session", "err", err)
	}
	a.session = mgr

	if c.HealthEndpointAddr != "" {
		probe, err := client.NewHealthProbe(c.HealthEndpointAddr, "")
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("health probe %s: %w", c.HealthEndpointAddr, err)
		}
		a.probe = probe
		a.closers = append(a.closers, probe.Close)
	}

	return a, nil
}

func (a *App) openSlot(ctx context.Context) (session.Slot, error) {
	switch a.config.SlotBackend {
	case config.SlotBackendSQLite, "":
		dir, err := filex.EnsureDir(a.config.DataDir)
		if err != nil {
			return nil, fmt.Errorf("data dir: %w", err)
		}
		db, err := client.InitDatabase(ctx, filepath.Join(dir, databaseFile))
		if err != nil {
			a.log.Error(ctx, "error initializing database", "err", err)
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		return session.NewKVSlot(metadata.NewSQLiteRepository(db), ""), nil

	case config.SlotBackendRedis:
		repo := metadata.NewRedisRepository(metadata.RedisConfig{Addr: a.config.RedisAddr})
		if err := repo.Ping(ctx); err != nil {
			_ = repo.Close()
			return nil, fmt.Errorf("redis %s: %w", a.config.RedisAddr, err)
		}
		a.closers = append(a.closers, repo.Close)
		return session.NewKVSlot(repo, ""), nil

	default:
		return nil, fmt.Errorf("unknown slot backend %q", a.config.SlotBackend)
	}
}

// Close releases everything NewApp opened, newest first, and writes the
// metrics textfile when one is configured.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil

	if a.config != nil && a.registry != nil {
		if err := metrics.WriteTextfile(a.config.MetricsFile, a.registry); err != nil {
			errs = append(errs, fmt.Errorf("metrics: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.Close(); err != nil {
			a.log.Error(ctx, "shutdown", "err", err)
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.State() == session.StateAuthenticated
}

func (a *App) Mode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.log.Info(ctx, "switched mode", "mode", string(mode))
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.probe.Ping(pingCtx)
	cancel()

	if err != nil {
		a.log.Debug(ctx, "health check failed", "err", err)
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

// StartOnlineStatusWatcher probes the backend right away and then every
// interval until ctx is done. Without a probe it returns immediately.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if a.probe == nil || interval <= 0 {
		return
	}

	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}
