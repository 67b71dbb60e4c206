// Package runner performs one capture run: open a browser session, navigate,
// take a SmartUI snapshot, and release the session on every exit path.
package runner

import (
	"context"
	"fmt"
	"strings"

	"github.com/raysh454/smartshot/internal/logging"
	"github.com/raysh454/smartshot/internal/session"
	"github.com/raysh454/smartshot/internal/smartui"
)

//go:generate mockgen -package=runner -destination=mock_runner_test.go github.com/raysh454/smartshot/internal/runner SessionOpener,SnapshotCapturer
//go:generate mockgen -package=runner -destination=mock_session_test.go github.com/raysh454/smartshot/internal/session Session

// SessionOpener opens browser sessions. *session.Opener implements it.
type SessionOpener interface {
	Open(ctx context.Context, cfg session.Config) (session.Session, error)
}

// SnapshotCapturer captures a named snapshot of a session's page.
// *smartui.Client implements it.
type SnapshotCapturer interface {
	Snapshot(ctx context.Context, d smartui.Driver, name string, opts smartui.Options) (*smartui.ArtifactRef, error)
}

// Job is one run's input.
type Job struct {
	Session         session.Config
	URL             string
	SnapshotName    string
	SnapshotOptions smartui.Options
}

type Runner struct {
	opener   SessionOpener
	capturer SnapshotCapturer
	logger   logging.Logger
}

func New(opener SessionOpener, capturer SnapshotCapturer, logger logging.Logger) *Runner {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Runner{
		opener:   opener,
		capturer: capturer,
		logger:   logger.With(logging.Field{Key: "component", Value: "runner"}),
	}
}

// Run opens a session for job, navigates to job.URL and captures
// job.SnapshotName. Once the session is open it is closed exactly once before
// Run returns. A close failure is returned only if everything else succeeded;
// otherwise it is logged and the earlier error wins. Errors are not retried.
func (r *Runner) Run(ctx context.Context, job Job) (ref *smartui.ArtifactRef, err error) {
	if strings.TrimSpace(job.URL) == "" {
		return nil, fmt.Errorf("%w: target url is required", session.ErrConfig)
	}

	s, err := r.opener.Open(ctx, job.Session)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	log := r.logger.With(logging.Field{Key: "session_id", Value: s.ID()})

	defer func() {
		cerr := s.Close()
		switch {
		case cerr == nil:
			log.Debug("session closed")
		case err == nil:
			ref, err = nil, fmt.Errorf("close session: %w", cerr)
		default:
			log.Warn("session close failed after earlier error", logging.Err(cerr))
		}
	}()

	log.Info("navigating", logging.Field{Key: "url", Value: job.URL})
	if err := s.Navigate(ctx, job.URL); err != nil {
		return nil, err
	}

	ref, err = r.capturer.Snapshot(ctx, s, job.SnapshotName, job.SnapshotOptions)
	if err != nil {
		return nil, err
	}
	return ref, nil
}
