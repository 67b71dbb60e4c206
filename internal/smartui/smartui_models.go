package smartui

import (
	"context"
	"errors"
	"time"
)

// ErrCapture wraps every snapshot failure.
var ErrCapture = errors.New("smartui snapshot failed")

// Driver is what a snapshot needs from a browser session.
type Driver interface {
	ID() string
	CurrentURL(ctx context.Context) (string, error)
	ExecuteScript(ctx context.Context, script string, args []any) (any, error)
}

// Options are passed verbatim to the DOM serializer and the server.
type Options map[string]any

// ArtifactRef refers to a snapshot accepted by the SmartUI server.
type ArtifactRef struct {
	ID         string
	Name       string
	URL        string
	SessionID  string
	Title      string
	Warnings   []string
	CapturedAt time.Time
}

type domSerializerResponse struct {
	Data struct {
		DOM string `json:"dom"`
	} `json:"data"`
	Error *apiError `json:"error,omitempty"`
}

type snapshotPayload struct {
	DOM     any     `json:"dom"`
	Name    string  `json:"name"`
	URL     string  `json:"url"`
	Options Options `json:"options,omitempty"`
}

type snapshotRequest struct {
	Snapshot snapshotPayload `json:"snapshot"`
	TestType string          `json:"testType"`
}

type snapshotResponse struct {
	Data *struct {
		Message  string   `json:"message,omitempty"`
		Warnings []string `json:"warnings,omitempty"`
	} `json:"data,omitempty"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
}
