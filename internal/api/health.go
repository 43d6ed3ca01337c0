// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/reelbase/internal/platform/constants"
	"github.com/taibuivan/reelbase/internal/platform/respond"
)

// readinessTimeout bounds the whole /ready probe.
const readinessTimeout = 2 * time.Second

// HealthDependencies are the checks behind /ready. A nil check is skipped.
type HealthDependencies struct {
	// CheckDatabase pings the pool every unit of work draws from.
	CheckDatabase func(ctx context.Context) error

	// CheckCache pings the Redis instance holding revoked token ids.
	CheckCache func(ctx context.Context) error
}

type probe struct {
	name  string
	check func(ctx context.Context) error
}

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type healthHandler struct {
	probes []probe
	logger *slog.Logger
}

// NewHealthHandlers returns the liveness and readiness handlers.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	if logger == nil {
		logger = slog.Default()
	}

	handler := &healthHandler{logger: logger}
	for _, candidate := range []probe{
		{"postgres", deps.CheckDatabase},
		{"redis", deps.CheckCache},
	} {
		if candidate.check != nil {
			handler.probes = append(handler.probes, candidate)
		}
	}
	return handler.liveness, handler.readiness
}

func (handler *healthHandler) liveness(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, map[string]string{constants.FieldStatus: "ok"})
}

// readiness runs every probe concurrently and answers 503 "degraded" when
// any of them fails.
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), readinessTimeout)
	defer cancel()

	results := make([]checkResult, len(handler.probes))

	// Failures are recorded per probe; the group never cancels.
	var group errgroup.Group
	for index, dependency := range handler.probes {
		group.Go(func() error {
			results[index] = checkResult{Name: dependency.name, IsOK: true}
			if err := dependency.check(ctx); err != nil {
				results[index].IsOK = false
				results[index].Error = err.Error()
				handler.logger.ErrorContext(ctx, "readiness_check_failed",
					slog.String("dependency", dependency.name),
					slog.Any("error", err),
				)
			}
			return nil
		})
	}
	_ = group.Wait()

	status, httpStatus := "ready", http.StatusOK
	for _, result := range results {
		if !result.IsOK {
			status, httpStatus = "degraded", http.StatusServiceUnavailable
			break
		}
	}

	respond.JSON(writer, httpStatus, respond.SuccessEnvelope{Data: map[string]any{
		constants.FieldStatus: status,
		constants.FieldChecks: results,
	}})
}
