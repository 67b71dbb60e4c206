package session

import "errors"

// Error kinds surfaced by session setup and use. Callers match them with
// errors.Is; the underlying cause stays wrapped alongside.
var (
	// ErrConfig reports a structurally invalid Config.
	ErrConfig = errors.New("invalid session config")

	// ErrConnection reports an unreachable hub or a hub that rejected the
	// requested capabilities (bad credentials, unsupported browser/platform).
	ErrConnection = errors.New("remote session connection failed")

	// ErrLaunch reports a local browser that could not be started.
	ErrLaunch = errors.New("local browser launch failed")

	// ErrNavigation reports a page load failure or timeout.
	ErrNavigation = errors.New("navigation failed")

	// ErrClosed is returned by operations on a released session.
	ErrClosed = errors.New("session is closed")
)
