package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/raysh454/smartshot/internal/logging"
)

const (
	defaultPageLoadTimeout = 60 * time.Second
	defaultIdleAfter       = 2 * time.Second

	// idleWaitFactor caps the post-load idle wait at idleAfter*idleWaitFactor
	// for pages that keep the network busy.
	idleWaitFactor = 5
)

// ChromedpSession drives a Chrome process launched on this host.
type ChromedpSession struct {
	browserCtx    context.Context
	browserCancel context.CancelFunc
	allocCancel   context.CancelFunc

	id              string
	pageLoadTimeout time.Duration
	idleAfter       time.Duration
	logger          logging.Logger

	closeOnce sync.Once
	closed    atomic.Bool
}

// NewChromedpSession launches Chrome for cfg. A missing binary or a browser
// that fails to start is reported as ErrLaunch. ctx bounds the launch only;
// the browser lives until Close.
func NewChromedpSession(ctx context.Context, cfg Config, logger logging.Logger) (*ChromedpSession, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	logger = logger.With(logging.Field{Key: "backend", Value: "chromedp"})

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-popup-blocking", true),
	)
	if !cfg.Headless {
		// If headless is explicitly false, add option to show browser
		opts = append(opts, chromedp.Flag("headless", false))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.WithoutCancel(ctx), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	stop := context.AfterFunc(ctx, browserCancel)
	err := chromedp.Run(browserCtx)
	stop()
	if err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("%w: start chrome: %w", ErrLaunch, err)
	}

	cs := &ChromedpSession{
		browserCtx:      browserCtx,
		browserCancel:   browserCancel,
		allocCancel:     allocCancel,
		pageLoadTimeout: cfg.PageLoadTimeout,
		idleAfter:       cfg.IdleAfter,
		logger:          logger,
	}
	if cs.pageLoadTimeout <= 0 {
		cs.pageLoadTimeout = defaultPageLoadTimeout
	}
	if cs.idleAfter <= 0 {
		cs.idleAfter = defaultIdleAfter
	}
	if c := chromedp.FromContext(browserCtx); c != nil && c.Target != nil {
		cs.id = string(c.Target.TargetID)
	}

	logger.Debug("launched local chrome",
		logging.Field{Key: "headless", Value: cfg.Headless},
		logging.Field{Key: "target_id", Value: cs.id})
	return cs, nil
}

func (cs *ChromedpSession) ID() string { return cs.id }

// runContext derives a context for one browser action that ends when ctx
// ends or after timeout.
func (cs *ChromedpSession) runContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithTimeout(cs.browserCtx, timeout)
	stop := context.AfterFunc(ctx, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}

// waitNetworkIdle signals on the returned channel once no request has been
// in flight for idleAfter. kick arms the timer when no request event follows
// the load.
func waitNetworkIdle(ctx context.Context, idleAfter time.Duration) (idle <-chan struct{}, kick func()) {
	idleChan := make(chan struct{}, 1)
	var activeReqs int32
	var timer *time.Timer
	var timerMutex sync.Mutex
	var once sync.Once

	startTimer := func() {
		timerMutex.Lock()
		defer timerMutex.Unlock()

		if timer != nil {
			timer.Stop()
		}

		timer = time.AfterFunc(idleAfter, func() {
			if atomic.LoadInt32(&activeReqs) <= 0 {
				once.Do(func() {
					idleChan <- struct{}{}
				})
			}
		})
	}

	chromedp.ListenTarget(ctx, func(ev any) {
		switch ev.(type) {
		case *network.EventRequestWillBeSent:
			atomic.AddInt32(&activeReqs, 1)
		case *network.EventLoadingFinished, *network.EventLoadingFailed:
			if atomic.AddInt32(&activeReqs, -1) <= 0 {
				startTimer()
			}
		}
	})

	return idleChan, startTimer
}

// Navigate loads url, then waits for the network to go quiet.
func (cs *ChromedpSession) Navigate(ctx context.Context, url string) error {
	if cs.closed.Load() {
		return ErrClosed
	}
	runCtx, cancel := cs.runContext(ctx, cs.pageLoadTimeout)
	defer cancel()

	idle, kick := waitNetworkIdle(runCtx, cs.idleAfter)

	cs.logger.Debug("navigating", logging.Field{Key: "url", Value: url})
	if err := chromedp.Run(runCtx, network.Enable(), chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrNavigation, url, err)
	}
	kick()

	select {
	case <-idle:
	case <-time.After(cs.idleAfter * idleWaitFactor):
		cs.logger.Debug("network did not go idle, continuing", logging.Field{Key: "url", Value: url})
	case <-runCtx.Done():
		return fmt.Errorf("%w: %s: %w", ErrNavigation, url, runCtx.Err())
	}
	return nil
}

func (cs *ChromedpSession) CurrentURL(ctx context.Context) (string, error) {
	if cs.closed.Load() {
		return "", ErrClosed
	}
	runCtx, cancel := cs.runContext(ctx, cs.pageLoadTimeout)
	defer cancel()

	var u string
	if err := chromedp.Run(runCtx, chromedp.Location(&u)); err != nil {
		return "", fmt.Errorf("current url: %w", err)
	}
	return u, nil
}

// awaitPromise resolves a returned promise before the value is read.
func awaitPromise(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithAwaitPromise(true)
}

// ExecuteScript wraps script in a function called with args, so "return x"
// bodies behave as they do over WebDriver.
func (cs *ChromedpSession) ExecuteScript(ctx context.Context, script string, args []any) (any, error) {
	if cs.closed.Load() {
		return nil, ErrClosed
	}
	if args == nil {
		args = []any{}
	}
	encArgs, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("encode script args: %w", err)
	}
	expr := fmt.Sprintf("(function(){\n%s\n}).apply(null, %s)", script, encArgs)

	runCtx, cancel := cs.runContext(ctx, cs.pageLoadTimeout)
	defer cancel()

	var raw []byte
	if err := chromedp.Run(runCtx, chromedp.Evaluate(expr, &raw, awaitPromise)); err != nil {
		return nil, fmt.Errorf("execute script: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode script result: %w", err)
	}
	return out, nil
}

// Close shuts Chrome down. Calls after the first return nil.
func (cs *ChromedpSession) Close() error {
	var err error
	cs.closeOnce.Do(func() {
		cs.closed.Store(true)
		cs.logger.Info("closing local chrome", logging.Field{Key: "target_id", Value: cs.id})

		if cerr := chromedp.Cancel(cs.browserCtx); cerr != nil && !errors.Is(cerr, context.Canceled) {
			err = fmt.Errorf("close chrome: %w", cerr)
		}
		cs.browserCancel()
		cs.allocCancel()
	})
	return err
}
