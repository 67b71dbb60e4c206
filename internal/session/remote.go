package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tebeka/selenium"

	"github.com/raysh454/smartshot/internal/logging"
)

// remoteDriver is the slice of selenium.WebDriver a RemoteSession uses.
type remoteDriver interface {
	SessionID() string
	SetPageLoadTimeout(timeout time.Duration) error
	Get(url string) error
	CurrentURL() (string, error)
	ExecuteScript(script string, args []interface{}) (interface{}, error)
	Quit() error
}

// dialRemote creates the hub session. Replaced in tests.
var dialRemote = func(caps selenium.Capabilities, hubURL string) (remoteDriver, error) {
	wd, err := selenium.NewRemote(caps, hubURL)
	if err != nil {
		return nil, err
	}
	return wd, nil
}

// RemoteSession drives a browser on a WebDriver hub.
type RemoteSession struct {
	wd     remoteDriver
	logger logging.Logger

	closeOnce sync.Once
	closed    bool
	mu        sync.Mutex
}

// NewRemoteSession creates a hub session for cfg. Hub errors, including
// capability or credential rejection, are reported as ErrConnection.
func NewRemoteSession(ctx context.Context, cfg Config, logger logging.Logger) (*RemoteSession, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	caps := selenium.Capabilities(cfg.Capabilities())
	wd, err := dialRemote(caps, cfg.HubURL)
	if err != nil {
		return nil, fmt.Errorf("%w: create session on %s: %w", ErrConnection, cfg.HubURL, err)
	}

	rs := &RemoteSession{
		wd:     wd,
		logger: logger.With(logging.Field{Key: "backend", Value: "selenium"}),
	}

	if cfg.PageLoadTimeout > 0 {
		if err := wd.SetPageLoadTimeout(cfg.PageLoadTimeout); err != nil {
			_ = rs.Close()
			return nil, fmt.Errorf("%w: set page load timeout: %w", ErrConnection, err)
		}
	}

	rs.logger.Debug("created remote session",
		logging.Field{Key: "hub", Value: cfg.HubURL},
		logging.Field{Key: "session_id", Value: wd.SessionID()})
	return rs, nil
}

func (rs *RemoteSession) ID() string {
	return rs.wd.SessionID()
}

func (rs *RemoteSession) isClosed() bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.closed
}

// Navigate loads url and blocks until the hub reports the page loaded or the
// page load timeout fires.
func (rs *RemoteSession) Navigate(ctx context.Context, url string) error {
	if rs.isClosed() {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrNavigation, url, err)
	}
	rs.logger.Debug("navigating", logging.Field{Key: "url", Value: url})
	if err := rs.wd.Get(url); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrNavigation, url, err)
	}
	return nil
}

func (rs *RemoteSession) CurrentURL(ctx context.Context) (string, error) {
	if rs.isClosed() {
		return "", ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	u, err := rs.wd.CurrentURL()
	if err != nil {
		return "", fmt.Errorf("current url: %w", err)
	}
	return u, nil
}

func (rs *RemoteSession) ExecuteScript(ctx context.Context, script string, args []any) (any, error) {
	if rs.isClosed() {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if args == nil {
		args = []any{}
	}
	res, err := rs.wd.ExecuteScript(script, args)
	if err != nil {
		return nil, fmt.Errorf("execute script: %w", err)
	}
	return res, nil
}

// Close quits the hub session. Calls after the first return nil.
func (rs *RemoteSession) Close() error {
	var err error
	rs.closeOnce.Do(func() {
		rs.mu.Lock()
		rs.closed = true
		rs.mu.Unlock()

		rs.logger.Info("closing remote session", logging.Field{Key: "session_id", Value: rs.wd.SessionID()})
		if qerr := rs.wd.Quit(); qerr != nil {
			err = fmt.Errorf("quit remote session: %w", qerr)
		}
	})
	return err
}
