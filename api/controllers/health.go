package controllers

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/baabuu/storefront-web/api/responses"
	"github.com/baabuu/storefront-web/pkg/config"
	pkgerrors "github.com/baabuu/storefront-web/pkg/errors"
	"github.com/baabuu/storefront-web/pkg/logger"
)

const readinessTimeout = 3 * time.Second

// Pinger is a dependency checked by the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Baabuu-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every named dependency in parallel. Nil pingers are
// reported as disabled.
func HealthReady(cfg *config.Config, deps map[string]Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Baabuu-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		results := make(map[string]string, len(deps))
		names := make([]string, 0, len(deps))
		for name := range deps {
			names = append(names, name)
		}
		errs := make([]error, len(names))

		var g errgroup.Group
		for i, name := range names {
			i := i
			pinger := deps[name]
			if pinger == nil {
				continue
			}
			g.Go(func() error {
				errs[i] = pinger.Ping(ctx)
				return nil
			})
		}
		_ = g.Wait()

		var failed []string
		for i, name := range names {
			switch {
			case deps[name] == nil:
				results[name] = "disabled"
			case errs[i] != nil:
				results[name] = "down"
				failed = append(failed, name)
				logg.Warn(logg.WithFields(r.Context(), map[string]any{"dependency": name, "error": errs[i].Error()}), "readiness check failed")
			default:
				results[name] = "up"
			}
		}

		if len(failed) > 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "not ready").
				WithDetails(map[string]any{"dependencies": results}))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "dependencies": results})
	}
}
