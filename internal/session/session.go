package session

import "context"

// Session is a live handle on one browser instance, local or remote. It owns
// the browser process or hub connection until Close.
type Session interface {
	// ID identifies the session: the hub session id or the local target id.
	ID() string

	Navigate(ctx context.Context, url string) error

	CurrentURL(ctx context.Context) (string, error)

	// ExecuteScript runs script as a function body with args, WebDriver
	// style, and returns its JSON-decoded result.
	ExecuteScript(ctx context.Context, script string, args []any) (any, error)

	// Close releases the browser. Only the first call does work; later
	// calls return nil.
	Close() error
}
