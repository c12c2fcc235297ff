package controllers

import (
	"context"
	"net/http"

	"github.com/localmart/localmart-backend/api/responses"
	"github.com/localmart/localmart-backend/pkg/config"
	pkgerrors "github.com/localmart/localmart-backend/pkg/errors"
	"github.com/localmart/localmart-backend/pkg/logger"
)

type pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-LocalMart-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when the database answers a ping. Optional
// dependencies (redis) are reported but do not fail readiness.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP pinger, redisP pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("X-LocalMart-Env", cfg.App.Env)

		if dbP == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeDependency, "database not configured"))
			return
		}
		if err := dbP.Ping(ctx); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database ping"))
			return
		}

		status := map[string]string{"status": "ready", "db": "ok"}
		if redisP != nil {
			if err := redisP.Ping(ctx); err != nil {
				status["redis"] = "unavailable"
			} else {
				status["redis"] = "ok"
			}
		}

		responses.WriteSuccess(w, status)
	}
}
