package session

import (
	"context"
	"sync"

	"github.com/raysh454/smartshot/internal/logging"
)

var registerOnce sync.Once

// RegisterDefaultBackends registers the selenium-backed remote backend and the
// chromedp-backed local backend. It is safe to call more than once; tests that
// override a backend afterwards keep their override.
func RegisterDefaultBackends() {
	registerOnce.Do(func() {
		RegisterBackend(VariantRemote, func(ctx context.Context, cfg Config, logger logging.Logger) (Session, error) {
			s, err := NewRemoteSession(ctx, cfg, logger)
			if err != nil {
				return nil, err
			}
			return s, nil
		})
		RegisterBackend(VariantLocal, func(ctx context.Context, cfg Config, logger logging.Logger) (Session, error) {
			s, err := NewChromedpSession(ctx, cfg, logger)
			if err != nil {
				return nil, err
			}
			return s, nil
		})
	})
}
