package daemonctl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"github.com/google/uuid"

	"tenebractl/internal/config"
	"tenebractl/internal/logging"
	"tenebractl/internal/proctable"
)

// Process identifies a running daemon. It is produced fresh by every
// discovery call and goes stale as soon as the process exits.
type Process struct {
	PID  int
	Name string
}

// Options configures a Controller.
type Options struct {
	// Name is both the process name matched by discovery and the executable
	// resolved through the search path on launch.
	Name string
	Args []string
	// StdioPath receives the daemon's stdout and stderr. Empty selects the null device.
	StdioPath string
	// ServiceName is started through the service control manager on windows.
	ServiceName  string
	PollInterval time.Duration
	StopTimeout  time.Duration
	StartTimeout time.Duration
	// BeforeLaunch runs before any child is created. An error aborts Start.
	BeforeLaunch func(context.Context) error
	// OnEvent observes lifecycle outcomes.
	OnEvent func(Event)
	Source  proctable.Source
	Reaper  *Reaper
}

// OptionsFromConfig maps the [daemon] section onto controller options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Name:         cfg.Daemon.Name,
		Args:         append([]string(nil), cfg.Daemon.Args...),
		StdioPath:    cfg.Daemon.LogFile,
		ServiceName:  cfg.Daemon.ServiceName,
		PollInterval: cfg.PollInterval(),
		StopTimeout:  cfg.StopTimeout(),
		StartTimeout: cfg.StartTimeout(),
	}
}

// StartState describes what EnsureStarted did.
type StartState string

const (
	StartStateStarted        StartState = "started"
	StartStateAlreadyRunning StartState = "already_running"
)

// StartResult captures a successful launch.
type StartResult struct {
	PID      int
	LaunchID string
}

// StopResult captures a verified stop.
type StopResult struct {
	PID int
	// Waited is how long the daemon took to exit after the termination request.
	Waited time.Duration
	// Reaped is true when the controller launched the daemon and collected its exit status.
	Reaped bool
}

// RestartResult captures stop/start outcomes for daemon restart.
type RestartResult struct {
	WasRunning bool
	Stop       StopResult
	Start      StartResult
}

// Status is a point-in-time view of the daemon.
type Status struct {
	Running   bool
	PID       int
	Name      string
	CheckedAt time.Time
}

// Controller drives the daemon lifecycle.
type Controller struct {
	opts     Options
	logger   *slog.Logger
	source   proctable.Source
	reaper   *Reaper
	platform platform
	now      func() time.Time
}

// New constructs a controller for the platform the binary was built for.
func New(opts Options, logger *slog.Logger) *Controller {
	return newController(opts, logger, newPlatform())
}

func newController(opts Options, logger *slog.Logger, p platform) *Controller {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 10 * time.Millisecond
	}
	if opts.StopTimeout <= 0 {
		opts.StopTimeout = 10 * time.Second
	}
	if opts.StartTimeout <= 0 {
		opts.StartTimeout = 5 * time.Second
	}
	source := opts.Source
	if source == nil {
		source = proctable.Default()
	}
	reaper := opts.Reaper
	if reaper == nil {
		reaper = DefaultReaper()
	}
	return &Controller{
		opts:     opts,
		logger:   logging.NewComponentLogger(logger, "daemonctl").With(slog.String(logging.FieldDaemon, opts.Name)),
		source:   source,
		reaper:   reaper,
		platform: p,
		now:      time.Now,
	}
}

// Name returns the managed daemon's process name.
func (c *Controller) Name() string {
	return c.opts.Name
}

// FindRunning reports the first daemon process owned by the current user.
// Enumeration failures are logged and reported as not running.
func (c *Controller) FindRunning(ctx context.Context) (Process, bool) {
	entry, ok, err := proctable.Find(c.source, proctable.CurrentUserFilter(c.opts.Name))
	if err != nil {
		logging.WithContext(ctx, c.logger).Debug("process enumeration failed", logging.Error(err))
		return Process{}, false
	}
	if !ok {
		return Process{}, false
	}
	return Process{PID: entry.PID, Name: entry.Name}, true
}

// Start launches a new daemon instance without checking whether one is
// already running. It returns only after the child has either replaced its
// image with the daemon or reported why it could not.
func (c *Controller) Start(ctx context.Context) (StartResult, error) {
	launchID := uuid.NewString()
	ctx = logging.WithLaunchID(ctx, launchID)
	logger := logging.WithContext(ctx, c.logger)

	if c.opts.BeforeLaunch != nil {
		if err := c.opts.BeforeLaunch(ctx); err != nil {
			logger.Warn("launch aborted before spawn", logging.Error(err))
			c.emit(Event{LaunchID: launchID, Action: ActionStart, Outcome: OutcomeFailed, Detail: err.Error()})
			return StartResult{}, fmt.Errorf("prepare launch: %w", err)
		}
	}

	launchCtx, cancel := context.WithTimeout(ctx, c.opts.StartTimeout)
	defer cancel()
	child, err := c.platform.launch(launchCtx, launchRequest{
		Name:        c.opts.Name,
		Args:        c.opts.Args,
		StdioPath:   c.opts.StdioPath,
		ServiceName: c.opts.ServiceName,
	})
	if err != nil {
		var launchErr *LaunchError
		if !errors.As(err, &launchErr) {
			launchErr = newLaunchError(StageSpawn, err)
		}
		logger.Error("daemon launch failed",
			slog.String(logging.FieldStage, string(launchErr.Stage)),
			slog.Int(logging.FieldErrno, launchErr.Code()),
			logging.Error(launchErr),
		)
		c.emit(Event{LaunchID: launchID, Action: ActionStart, Outcome: OutcomeFailed, Errno: launchErr.Code(), Detail: launchErr.Error()})
		return StartResult{}, launchErr
	}
	if child.cmd != nil {
		c.reaper.Adopt(child.cmd)
	}

	logger.Info("daemon started", slog.Int(logging.FieldPID, child.pid))
	c.emit(Event{LaunchID: launchID, Action: ActionStart, Outcome: OutcomeOK, PID: child.pid})
	return StartResult{PID: child.pid, LaunchID: launchID}, nil
}

// Stop terminates the running daemon and waits until it has exited.
func (c *Controller) Stop(ctx context.Context) (StopResult, error) {
	proc, ok := c.FindRunning(ctx)
	if !ok {
		c.emit(Event{Action: ActionStop, Outcome: OutcomeNotRunning})
		return StopResult{}, ErrNotRunning
	}
	logger := c.logger.With(slog.Int(logging.FieldPID, proc.PID))

	if err := c.platform.terminate(proc.PID); err != nil {
		var sigErr *SignalError
		if !errors.As(err, &sigErr) {
			sigErr = &SignalError{PID: proc.PID, Errno: errnoOf(err)}
		}
		logger.Error("termination request rejected", slog.Int(logging.FieldErrno, sigErr.Code()), logging.Error(err))
		c.emit(Event{Action: ActionStop, Outcome: OutcomeFailed, PID: proc.PID, Errno: sigErr.Code(), Detail: sigErr.Error()})
		return StopResult{}, sigErr
	}

	started := c.now()
	waitCtx, cancel := context.WithTimeout(ctx, c.opts.StopTimeout)
	defer cancel()

	result := StopResult{PID: proc.PID}
	var err error
	if done, adopted := c.reaper.Done(proc.PID); adopted {
		result.Reaped = true
		select {
		case <-done:
		case <-waitCtx.Done():
			err = waitCtx.Err()
		}
	} else {
		err = c.platform.awaitExit(waitCtx, proc.PID, c.opts.PollInterval, c.zombie)
	}
	result.Waited = c.now().Sub(started)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		logger.Warn("daemon still running after stop timeout", slog.Duration("timeout", c.opts.StopTimeout))
		c.emit(Event{Action: ActionStop, Outcome: OutcomeTimeout, PID: proc.PID, Detail: c.opts.StopTimeout.String()})
		return result, fmt.Errorf("%w: pid %d after %s", ErrStopTimeout, proc.PID, c.opts.StopTimeout)
	}

	logger.Info("daemon stopped", slog.Duration("waited", result.Waited))
	c.emit(Event{Action: ActionStop, Outcome: OutcomeOK, PID: proc.PID})
	return result, nil
}

// zombie reports whether pid has exited but is still waiting for a parent
// that is not us to reap it. Discovery already treats such a process as gone.
func (c *Controller) zombie(pid int) bool {
	entry, ok, err := proctable.Lookup(c.source, pid)
	return err == nil && ok && entry.Zombie()
}

// EnsureStarted launches the daemon unless one is already running.
func (c *Controller) EnsureStarted(ctx context.Context) (StartState, StartResult, error) {
	if proc, ok := c.FindRunning(ctx); ok {
		return StartStateAlreadyRunning, StartResult{PID: proc.PID}, nil
	}
	result, err := c.Start(ctx)
	if err != nil {
		return "", StartResult{}, err
	}
	return StartStateStarted, result, nil
}

// Restart stops the daemon if running, then starts a new instance.
func (c *Controller) Restart(ctx context.Context) (RestartResult, error) {
	stopResult, stopErr := c.Stop(ctx)
	if stopErr != nil && !errors.Is(stopErr, ErrNotRunning) {
		return RestartResult{}, stopErr
	}

	startResult, err := c.Start(ctx)
	if err != nil {
		return RestartResult{WasRunning: stopErr == nil, Stop: stopResult}, err
	}

	return RestartResult{
		WasRunning: stopErr == nil,
		Stop:       stopResult,
		Start:      startResult,
	}, nil
}

// Status returns a snapshot of the daemon's state.
func (c *Controller) Status(ctx context.Context) Status {
	status := Status{Name: c.opts.Name, CheckedAt: c.now()}
	if proc, ok := c.FindRunning(ctx); ok {
		status.Running = true
		status.PID = proc.PID
	}
	return status
}

// Watch polls Status every interval and calls fn with the first snapshot and
// again whenever the daemon starts, stops, or changes PID. It returns when ctx
// is done.
func (c *Controller) Watch(ctx context.Context, interval time.Duration, fn func(Status)) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := c.Status(ctx)
	fn(last)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		current := c.Status(ctx)
		if current.Running != last.Running || current.PID != last.PID {
			fn(current)
		}
		last = current
	}
}

func (c *Controller) emit(ev Event) {
	if c.opts.OnEvent == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = c.now()
	}
	c.opts.OnEvent(ev)
}

type launchRequest struct {
	Name        string
	Args        []string
	StdioPath   string
	ServiceName string
}

type launchedChild struct {
	pid int
	cmd *exec.Cmd
}

// platform isolates the operating-system specific halves of launch and stop.
type platform interface {
	launch(ctx context.Context, req launchRequest) (launchedChild, error)
	terminate(pid int) error
	awaitExit(ctx context.Context, pid int, poll time.Duration, zombie func(pid int) bool) error
}
