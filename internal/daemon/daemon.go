package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gofrs/flock"

	"framediff/internal/config"
	"framediff/internal/logging"
	"framediff/internal/preflight"
	"framediff/internal/query"
	"framediff/internal/server"
)

// ErrAlreadyRunning reports that another process holds the daemon lock.
var ErrAlreadyRunning = errors.New("another framediffd instance is already running")

// Daemon serves the archive over HTTP and enforces single-instance execution.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger
	server *server.Server

	lockPath string
	lock     *flock.Flock

	mu      sync.Mutex
	running atomic.Bool
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool   `json:"running"`
	Address      string `json:"address,omitempty"`
	ArchiveRoot  string `json:"archive_root"`
	LockFilePath string `json:"lock_file"`
}

// New constructs a daemon serving svc with the settings in cfg.
func New(cfg *config.Config, svc *query.Service, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || svc == nil {
		return nil, errors.New("daemon requires config and query service")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	srv, err := server.New(cfg, svc, logger)
	if err != nil {
		return nil, fmt.Errorf("create server: %w", err)
	}
	lockPath := cfg.LockFilePath()
	return &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		server:   srv,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the daemon lock, runs preflight checks, and starts serving.
func (d *Daemon) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return ErrAlreadyRunning
	}

	d.runPreflight(ctx)
	d.pruneLogs()

	serveCtx, cancel := context.WithCancel(ctx)
	if err := d.server.Start(serveCtx); err != nil {
		cancel()
		_ = d.lock.Unlock()
		return fmt.Errorf("start server: %w", err)
	}
	d.cancel = cancel
	d.running.Store(true)
	d.logger.Info("framediff daemon started",
		logging.String("lock", d.lockPath),
		logging.String("address", d.server.Addr()),
		logging.String("archive_root", d.cfg.Paths.ArchiveRoot),
		logging.String(logging.FieldEventType, "daemon_started"),
	)
	return nil
}

// Stop shuts the server down and releases the daemon lock.
func (d *Daemon) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running.Load() {
		return
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.server.Stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock",
			logging.Error(err),
			logging.String(logging.FieldEventType, "lock_release_failed"),
			logging.String(logging.FieldErrorHint, "remove the lock file if no framediffd is running"),
		)
	}
	d.running.Store(false)
	d.logger.Info("framediff daemon stopped", logging.String(logging.FieldEventType, "daemon_stopped"))
}

// Status reports whether the daemon is serving and where.
func (d *Daemon) Status() Status {
	status := Status{
		Running:      d.running.Load(),
		ArchiveRoot:  d.cfg.Paths.ArchiveRoot,
		LockFilePath: d.lockPath,
	}
	if status.Running {
		status.Address = d.server.Addr()
	}
	return status
}

func (d *Daemon) runPreflight(ctx context.Context) {
	for _, result := range preflight.Failed(preflight.RunAll(ctx, d.cfg)) {
		logging.WarnWithContext(d.logger, "preflight check failed", "preflight_failed",
			logging.String("check", result.Name),
			logging.String("detail", result.Detail),
			logging.String(logging.FieldErrorHint, "verify paths.archive_root and paths.log_dir in the config"),
		)
	}
}

func (d *Daemon) pruneLogs() {
	logDir := d.cfg.Paths.LogDir
	if logDir == "" {
		return
	}
	removed := logging.CleanupOldLogs(d.logger, d.cfg.Logging.RetentionDays, logging.RetentionTarget{
		Dir:     logDir,
		Pattern: "*.log",
		Exclude: []string{d.cfg.LogFilePath()},
	})
	if removed > 0 {
		d.logger.Info("pruned old log files", logging.Int("removed", removed))
	}
}
