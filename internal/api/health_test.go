// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/reelbase/internal/api"
)

type readyBody struct {
	Data struct {
		Status string `json:"status"`
		Checks []struct {
			Name  string `json:"name"`
			OK    bool   `json:"ok"`
			Error string `json:"error"`
		} `json:"checks"`
	} `json:"data"`
}

func healthy(context.Context) error { return nil }

/*
TestHealth_Liveness verifies the liveness probe never consults dependencies.
*/
func TestHealth_Liveness(t *testing.T) {
	liveness, _ := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return errors.New("down") },
	}, nil)

	recorder := httptest.NewRecorder()
	liveness(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestHealth_Readiness verifies the probe reports every dependency and degrades
when one fails.
*/
func TestHealth_Readiness(t *testing.T) {
	tests := []struct {
		name   string
		cache  func(context.Context) error
		status int
		state  string
	}{
		{"ready", healthy, http.StatusOK, "ready"},
		{"degraded", func(context.Context) error { return errors.New("redis: ping failed") }, http.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, readiness := api.NewHealthHandlers(api.HealthDependencies{
				CheckDatabase: healthy,
				CheckCache:    tt.cache,
			}, nil)

			recorder := httptest.NewRecorder()
			readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
			require.Equal(t, tt.status, recorder.Code)

			var body readyBody
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.state, body.Data.Status)
			require.Len(t, body.Data.Checks, 2)
			assert.Equal(t, "postgres", body.Data.Checks[0].Name)
			assert.True(t, body.Data.Checks[0].OK)
			assert.Equal(t, tt.status == http.StatusOK, body.Data.Checks[1].OK)
		})
	}
}
