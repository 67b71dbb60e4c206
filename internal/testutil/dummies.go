// Package testutil provides shared test doubles for use across package tests.
// All dummies implement the corresponding interfaces from the production code,
// allowing injection into components under test without a real browser.
package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/raysh454/smartshot/internal/logging"
	"github.com/raysh454/smartshot/internal/session"
)

// ─── Logger ────────────────────────────────────────────────────────────

// DummyLogger implements logging.Logger with in-memory recording.
type DummyLogger struct {
	mu     sync.Mutex
	Errors []string
	Infos  []string
	Debugs []string
	Warns  []string
}

func (l *DummyLogger) Debug(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Debugs = append(l.Debugs, msg)
}

func (l *DummyLogger) Info(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Infos = append(l.Infos, msg)
}

func (l *DummyLogger) Warn(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warns = append(l.Warns, msg)
}

func (l *DummyLogger) Error(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, msg)
}

func (l *DummyLogger) With(_ ...logging.Field) logging.Logger { return l }

// WarnCount returns how many warnings were logged.
func (l *DummyLogger) WarnCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.Warns)
}

// ─── Session ───────────────────────────────────────────────────────────

// DummySession implements session.Session.
// Scripts are answered from ScriptResults by exact script text; anything not
// listed returns nil. Set NavigateErr or ScriptErr to force failures.
type DummySession struct {
	SessionID     string
	ScriptResults map[string]any
	NavigateErr   error
	ScriptErr     error

	mu      sync.Mutex
	URL     string
	Visited []string
	Scripts []string
	Closes  int
	closed  bool
}

var _ session.Session = (*DummySession)(nil)

func (d *DummySession) ID() string { return d.SessionID }

func (d *DummySession) Navigate(ctx context.Context, url string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return session.ErrClosed
	}
	d.Visited = append(d.Visited, url)
	if d.NavigateErr != nil {
		return d.NavigateErr
	}
	d.URL = url
	return ctx.Err()
}

func (d *DummySession) CurrentURL(context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return "", session.ErrClosed
	}
	return d.URL, nil
}

func (d *DummySession) ExecuteScript(_ context.Context, script string, _ []any) (any, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, session.ErrClosed
	}
	d.Scripts = append(d.Scripts, script)
	if d.ScriptErr != nil {
		return nil, d.ScriptErr
	}
	return d.ScriptResults[script], nil
}

// Close records every call but only the first one releases.
func (d *DummySession) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Closes++
	d.closed = true
	return nil
}

// Closed reports whether Close was called.
func (d *DummySession) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// ─── Opener ────────────────────────────────────────────────────────────

// DummyOpener hands out Session on every Open and records the configs it
// was asked for. Err, when set, is returned instead.
type DummyOpener struct {
	Session *DummySession
	Err     error

	mu     sync.Mutex
	Opened []session.Config
}

func (o *DummyOpener) Open(_ context.Context, cfg session.Config) (session.Session, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Opened = append(o.Opened, cfg)
	if o.Err != nil {
		return nil, o.Err
	}
	return o.Session, nil
}

// ─── helpers ───────────────────────────────────────────────────────────

// ErrDummy is a generic failure for dummies to return.
var ErrDummy = errors.New("dummy failure")
