package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/raysh454/smartshot/internal/logging"
)

// BackendConstructor opens a Session for cfg.
type BackendConstructor func(ctx context.Context, cfg Config, logger logging.Logger) (Session, error)

var (
	mu       sync.RWMutex
	registry = map[Variant]BackendConstructor{}
)

// RegisterBackend registers the constructor used for variant. Registering the
// same variant again overwrites the previous constructor.
func RegisterBackend(variant Variant, ctor BackendConstructor) {
	if variant == "" || ctor == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	registry[variant] = ctor
}

// ListBackends returns the registered variants, sorted.
func ListBackends() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, string(k))
	}
	sort.Strings(out)
	return out
}

// Opener opens sessions through the backend registered for a config's variant.
type Opener struct {
	logger logging.Logger
}

// NewOpener returns an Opener. The default backends are registered on first use.
func NewOpener(logger logging.Logger) *Opener {
	if logger == nil {
		logger = logging.Nop()
	}
	RegisterDefaultBackends()
	return &Opener{logger: logger.With(logging.Field{Key: "component", Value: "session"})}
}

// Open validates cfg and opens a Session with the matching backend.
func (o *Opener) Open(ctx context.Context, cfg Config) (Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mu.RLock()
	ctor, ok := registry[cfg.Variant]
	mu.RUnlock()
	if !ok || ctor == nil {
		return nil, fmt.Errorf("%w: session backend %q not registered: available backends=%v", ErrConfig, cfg.Variant, ListBackends())
	}

	o.logger.Debug("opening session",
		logging.Field{Key: "variant", Value: string(cfg.Variant)},
		logging.Field{Key: "browser", Value: cfg.Browser})

	s, err := ctor(ctx, cfg, o.logger)
	if err != nil {
		o.logger.Warn("session open failed",
			logging.Field{Key: "variant", Value: string(cfg.Variant)},
			logging.Err(err))
		return nil, err
	}
	if s == nil {
		return nil, errors.New("session constructor returned nil")
	}

	o.logger.Info("session opened",
		logging.Field{Key: "variant", Value: string(cfg.Variant)},
		logging.Field{Key: "session_id", Value: s.ID()})
	return s, nil
}
