// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package remote mirrors the entity-access contract over HTTP.

Every call targets {base}/{resource}{suffix} and declares whether the caller
identity must be attached. The response status is checked in exactly one
place ([Connector.Do]); any non-2xx status becomes a [*RequestError] carrying
the server supplied message. Nothing is retried.
*/
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/taibuivan/reelbase/internal/platform/constants"
)

// # Errors

var (
	// ErrNullResponse is returned when a successful response carries no object.
	ErrNullResponse = errors.New("remote: response contained no data")

	// ErrNoCredentials is returned when an authenticated call has no token source.
	ErrNoCredentials = errors.New("remote: authenticated call without credentials")

	// ErrMissingPagination is returned when a paginated response lacks metadata.
	ErrMissingPagination = errors.New("remote: response has no pagination metadata")
)

// RequestError is the uniform failure of a non-success response.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return e.Message
}

// IsNotFound reports whether err is a 404 [RequestError].
func IsNotFound(err error) bool {
	var requestError *RequestError
	return errors.As(err, &requestError) && requestError.StatusCode == http.StatusNotFound
}

// # Credential Policy

// CredentialPolicy declares whether a call carries the caller identity.
type CredentialPolicy int

const (
	// Anonymous calls never send an Authorization header.
	Anonymous CredentialPolicy = iota

	// Authenticated calls attach a bearer token from the token source.
	Authenticated
)

func (p CredentialPolicy) String() string {
	if p == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// # Connector

// Connector sends requests to the catalog API.
type Connector struct {
	baseURL    string
	httpClient *http.Client
	tokens     oauth2.TokenSource
	logger     *slog.Logger
}

// NewConnector creates a connector for baseURL. tokens may be nil when only
// anonymous calls are made.
func NewConnector(baseURL string, client *http.Client, tokens oauth2.TokenSource, logger *slog.Logger) *Connector {
	if client == nil {
		client = &http.Client{Timeout: constants.GlobalRequestTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Connector{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
		tokens:     tokens,
		logger:     logger,
	}
}

// Call describes one request.
type Call struct {
	Method   string
	Resource string
	Suffix   string
	Policy   CredentialPolicy
	Body     any
}

// Response is a successful raw response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Address builds {base}/{resource}{suffix}.
func (c *Connector) Address(resource, suffix string) string {
	return c.baseURL + "/" + strings.Trim(resource, "/") + suffix
}

// Do sends call and applies the success check.
func (c *Connector) Do(ctx context.Context, call Call) (*Response, error) {
	var body io.Reader
	if call.Body != nil {
		encoded, err := json.Marshal(call.Body)
		if err != nil {
			return nil, fmt.Errorf("remote: failed to encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	address := c.Address(call.Resource, call.Suffix)
	request, err := http.NewRequestWithContext(ctx, call.Method, address, body)
	if err != nil {
		return nil, fmt.Errorf("remote: failed to create request: %w", err)
	}
	if call.Body != nil {
		request.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	}

	if call.Policy == Authenticated {
		if c.tokens == nil {
			return nil, ErrNoCredentials
		}
		token, err := c.tokens.Token()
		if err != nil {
			return nil, fmt.Errorf("remote: failed to obtain token: %w", err)
		}
		token.SetAuthHeader(request)
	}

	startTime := time.Now()
	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("remote: request failed: %w", err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("remote: failed to read response: %w", err)
	}

	c.logger.DebugContext(ctx, "remote_call_finished",
		slog.String("method", call.Method),
		slog.String("url", address),
		slog.String("credentials", call.Policy.String()),
		slog.Int("status", response.StatusCode),
		slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
	)

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, &RequestError{StatusCode: response.StatusCode, Message: failureMessage(response.StatusCode, payload)}
	}

	return &Response{StatusCode: response.StatusCode, Header: response.Header, Body: payload}, nil
}

// Invoke sends call and decodes the data envelope of the response into T.
// A missing or null payload is [ErrNullResponse].
func Invoke[T any](ctx context.Context, connector *Connector, call Call) (T, *Response, error) {
	var result T

	response, err := connector.Do(ctx, call)
	if err != nil {
		return result, nil, err
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(response.Body, &envelope); err != nil {
		return result, response, fmt.Errorf("remote: failed to decode response: %w", err)
	}

	trimmed := bytes.TrimSpace(envelope.Data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return result, response, ErrNullResponse
	}

	if err := json.Unmarshal(trimmed, &result); err != nil {
		return result, response, fmt.Errorf("remote: failed to decode data: %w", err)
	}

	return result, response, nil
}

// failureMessage extracts the message of a failed response: the error field
// of a JSON error envelope, else the trimmed body, else the status text.
func failureMessage(statusCode int, payload []byte) string {
	var envelope struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(payload, &envelope) == nil && envelope.Error != "" {
		return envelope.Error
	}

	if message := strings.TrimSpace(string(payload)); message != "" {
		return message
	}

	return http.StatusText(statusCode)
}
