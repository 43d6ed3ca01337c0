// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/reelbase/internal/auth"
	"github.com/taibuivan/reelbase/internal/platform/middleware"
	"github.com/taibuivan/reelbase/internal/platform/sec"
)

type envelope struct {
	Data json.RawMessage `json:"data"`
	Code string          `json:"code"`
}

type fixture struct {
	tokens *sec.TokenService
	router http.Handler
}

func newFixture(t *testing.T, signing bool) fixture {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	signer := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "reelbase.app")
	tokens := signer
	if !signing {
		tokens = sec.NewTokenServiceFromKeys(nil, &key.PublicKey, "reelbase.app")
	}

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	revocations := sec.NewRevocationStore(client)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(sec.NewRevocationAwareVerifier(signer, revocations)))
	router.Mount("/auth", auth.NewHandler(auth.NewService(tokens, revocations, nil)).Routes())

	return fixture{tokens: signer, router: router}
}

func (f fixture) token(t *testing.T, role sec.UserRole) string {
	t.Helper()
	token, err := f.tokens.GenerateAccessToken("u-1", "ada", string(role), time.Hour)
	require.NoError(t, err)
	return token
}

func serve(t *testing.T, handler http.Handler, method, target, token, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	request := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	var decoded envelope
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	}
	return recorder, decoded
}

/*
TestHandler_Me verifies the caller is described from the token claims.
*/
func TestHandler_Me(t *testing.T) {
	f := newFixture(t, true)

	recorder, body := serve(t, f.router, http.MethodGet, "/auth/me", f.token(t, sec.RoleCurator), "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var caller auth.Caller
	require.NoError(t, json.Unmarshal(body.Data, &caller))
	assert.Equal(t, "u-1", caller.UserID)
	assert.Equal(t, "curator", caller.Role)
	require.NotNil(t, caller.ExpiresAt)

	recorder, _ = serve(t, f.router, http.MethodGet, "/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestHandler_Logout verifies a revoked token is refused afterwards.
*/
func TestHandler_Logout(t *testing.T) {
	f := newFixture(t, true)
	token := f.token(t, sec.RoleMember)

	recorder, _ := serve(t, f.router, http.MethodPost, "/auth/logout", token, "")
	require.Equal(t, http.StatusNoContent, recorder.Code)

	recorder, _ = serve(t, f.router, http.MethodGet, "/auth/me", token, "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestHandler_IssueToken verifies admins mint tokens the server accepts.
*/
func TestHandler_IssueToken(t *testing.T) {
	f := newFixture(t, true)

	recorder, body := serve(t, f.router, http.MethodPost, "/auth/tokens", f.token(t, sec.RoleAdmin),
		`{"username":"reelctl","role":"curator","ttlMinutes":30}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var issued auth.IssuedToken
	require.NoError(t, json.Unmarshal(body.Data, &issued))
	assert.NotEmpty(t, issued.UserID)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), issued.ExpiresAt, time.Minute)

	claims, err := f.tokens.VerifyToken(issued.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "reelctl", claims.Username)
	assert.Equal(t, "curator", claims.Role)
	assert.Equal(t, issued.UserID, claims.UserID)
}

/*
TestHandler_IssueTokenRejected covers role checks, validation and verify-only servers.
*/
func TestHandler_IssueTokenRejected(t *testing.T) {
	tests := []struct {
		name    string
		signing bool
		role    sec.UserRole
		body    string
		status  int
		code    string
	}{
		{"curator", true, sec.RoleCurator, `{"username":"x","role":"member"}`, http.StatusForbidden, "FORBIDDEN"},
		{"unknown_role", true, sec.RoleAdmin, `{"username":"x","role":"owner"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"ttl_too_long", true, sec.RoleAdmin, `{"username":"x","role":"member","ttlMinutes":50000}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"verify_only", false, sec.RoleAdmin, `{"username":"x","role":"member"}`, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.signing)

			recorder, body := serve(t, f.router, http.MethodPost, "/auth/tokens", f.token(t, tt.role), tt.body)
			assert.Equal(t, tt.status, recorder.Code)
			assert.Equal(t, tt.code, body.Code)
		})
	}
}
