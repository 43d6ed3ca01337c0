// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware provides the HTTP processing chain of the catalog API.

Chain, in order of execution:

  - RequestID: correlation id from X-Request-ID or a fresh UUIDv7.
  - StructuredLogger: one slog line per request, with the page total of list responses.
  - RateLimit: per-client token buckets, with a tighter budget for catalog writes.
  - PanicRecovery: converts a panic into a 500 envelope.
  - Authenticate / RequireAuth / RequireRole: bearer tokens and role checks.
  - CORS: origin policy for browser clients.
*/
package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/reelbase/internal/platform/apperr"
	"github.com/taibuivan/reelbase/internal/platform/constants"
	"github.com/taibuivan/reelbase/internal/platform/ctxutil"
	"github.com/taibuivan/reelbase/pkg/pagination"
	"github.com/taibuivan/reelbase/pkg/uuidv7"
)

// # Request Tracing

// RequestID attaches a correlation ID to every request. A client supplied
// X-Request-ID is kept so reelctl runs can be traced end to end.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requestID := strings.TrimSpace(request.Header.Get(constants.HeaderXRequestID))
			if requestID == "" || len(requestID) > constants.MaxRequestIDLength {
				requestID = uuidv7.New()
			}

			writer.Header().Set(constants.HeaderXRequestID, requestID)
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithRequestID(request.Context(), requestID)))
		})
	}
}

// # Activity Logging

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

func (recorder *statusRecorder) Write(payload []byte) (int, error) {
	written, err := recorder.ResponseWriter.Write(payload)
	recorder.bytes += written
	return written, err
}

// StructuredLogger logs one "http_request_finished" line per request and
// stores a request scoped logger in the context for handlers and sessions.
//
// Probe traffic is logged at debug level.
func StructuredLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			started := time.Now()

			requestLogger := logger.With(
				slog.String("request_id", ctxutil.GetRequestID(request.Context())),
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
				slog.String("ip", RealIP(request)),
			)

			ctx := ctxutil.WithLogger(request.Context(), requestLogger)
			recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

			next.ServeHTTP(recorder, request.WithContext(ctx))

			attrs := []any{
				slog.Int("status", recorder.status),
				slog.Int("bytes", recorder.bytes),
				slog.Int64("latency_ms", time.Since(started).Milliseconds()),
			}

			// List endpoints report their page in the side channel header.
			if metadata, ok, err := pagination.ReadHeader(recorder.Header()); ok && err == nil {
				attrs = append(attrs,
					slog.Int("page", metadata.PageNumber),
					slog.Int("total_records", metadata.TotalRecords),
				)
			}

			if claims := ctxutil.GetAuthUser(ctx); claims != nil {
				attrs = append(attrs, slog.String("user_id", claims.UserID))
			}

			requestLogger.Log(ctx, requestLevel(request, recorder.status), "http_request_finished", attrs...)
		})
	}
}

func requestLevel(request *http.Request, status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	case isProbe(request):
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

func isProbe(request *http.Request) bool {
	return request.URL.Path == constants.PathLiveness || request.URL.Path == constants.PathReadiness
}

// # Rate Limiting

// RateLimitPolicy sizes the per-client token buckets. Reads and writes draw
// from separate buckets.
type RateLimitPolicy struct {
	ReadRPS    float64
	ReadBurst  int
	WriteRPS   float64
	WriteBurst int
}

// DefaultRateLimitPolicy returns the budgets in [constants].
func DefaultRateLimitPolicy() RateLimitPolicy {
	return RateLimitPolicy{
		ReadRPS:    constants.DefaultRateLimitRPS,
		ReadBurst:  constants.DefaultRateLimitBurst,
		WriteRPS:   constants.DefaultWriteRateLimitRPS,
		WriteBurst: constants.DefaultWriteRateLimitBurst,
	}
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// bucketTable holds one limiter per client key.
type bucketTable struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	clients map[string]*clientBucket
}

func newBucketTable(rps float64, burst int) *bucketTable {
	return &bucketTable{limit: rate.Limit(rps), burst: burst, clients: make(map[string]*clientBucket)}
}

func (table *bucketTable) allow(key string, now time.Time) bool {
	table.mu.Lock()
	defer table.mu.Unlock()

	bucket, found := table.clients[key]
	if !found {
		bucket = &clientBucket{limiter: rate.NewLimiter(table.limit, table.burst)}
		table.clients[key] = bucket
	}
	bucket.lastSeen = now
	return bucket.limiter.AllowN(now, 1)
}

func (table *bucketTable) sweep(now time.Time, ttl time.Duration) {
	table.mu.Lock()
	defer table.mu.Unlock()

	for key, bucket := range table.clients {
		if now.Sub(bucket.lastSeen) > ttl {
			delete(table.clients, key)
		}
	}
}

// RateLimit meters requests per client IP. Probes are never limited. Each
// call owns its own tables, swept until ctx is cancelled.
func RateLimit(ctx context.Context, policy RateLimitPolicy) func(http.Handler) http.Handler {
	reads := newBucketTable(policy.ReadRPS, policy.ReadBurst)
	writes := newBucketTable(policy.WriteRPS, policy.WriteBurst)

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				reads.sweep(now, constants.RateLimitClientTTL)
				writes.sweep(now, constants.RateLimitClientTTL)
			case <-ctx.Done():
				return
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if isProbe(request) {
				next.ServeHTTP(writer, request)
				return
			}

			table := reads
			if isWrite(request.Method) {
				table = writes
			}

			if !table.allow(RealIP(request), time.Now()) {
				writer.Header().Set(constants.HeaderRetryAfter, "1")
				writeError(writer, apperr.TooManyRequests())
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

func isWrite(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	default:
		return true
	}
}

// # Reliability

// PanicRecovery turns a panic into a logged 500 response.
func PanicRecovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}

				stack := make([]byte, 2048)
				stack = stack[:runtime.Stack(stack, false)]

				requestLogger := ctxutil.GetLogger(request.Context())
				if logger != nil {
					requestLogger = logger.With(slog.String("request_id", ctxutil.GetRequestID(request.Context())))
				}
				requestLogger.ErrorContext(request.Context(), "panic_recovered",
					slog.Any("error", recovered),
					slog.String("stack", string(stack)),
				)

				writeError(writer, apperr.Internal(fmt.Errorf("panic: %v", recovered)))
			}()

			next.ServeHTTP(writer, request)
		})
	}
}

// # Cross-Origin Resource Sharing

// AppConfig is the part of the configuration the CORS policy reads.
type AppConfig interface {
	IsDevelopment() bool
	AllowedOrigins() []string
}

// CORS admits reelbase.app and its subdomains plus the configured extra
// origins. Development admits every origin. X-Pagination is exposed so
// browser clients can read page metadata.
func CORS(cfg AppConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			origin := request.Header.Get(constants.HeaderOrigin)
			if origin == "" {
				next.ServeHTTP(writer, request)
				return
			}

			header := writer.Header()
			header.Add("Vary", constants.HeaderOrigin)

			if originAllowed(cfg, origin) {
				header.Set("Access-Control-Allow-Origin", origin)
				header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				header.Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Authorization, X-Request-ID")
				header.Set("Access-Control-Expose-Headers", "Content-Length, X-Request-ID, "+pagination.HeaderName)
				header.Set("Access-Control-Allow-Credentials", "true")
				header.Set("Access-Control-Max-Age", "300")
			}

			if request.Method == http.MethodOptions {
				writer.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

func originAllowed(cfg AppConfig, origin string) bool {
	if cfg.IsDevelopment() {
		return true
	}

	host := strings.TrimPrefix(strings.TrimPrefix(origin, "https://"), "http://")
	if host == constants.AllowedOriginDomain || strings.HasSuffix(host, "."+constants.AllowedOriginDomain) {
		return true
	}

	for _, allowed := range cfg.AllowedOrigins() {
		if origin == allowed {
			return true
		}
	}
	return false
}

// # Helpers

// RealIP extracts the client IP, preferring proxy headers.
func RealIP(request *http.Request) string {
	if ip := request.Header.Get(constants.HeaderXRealIP); ip != "" {
		return ip
	}

	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}

// writeError writes the error envelope for failures raised before routing.
func writeError(writer http.ResponseWriter, appError *apperr.AppError) {
	writer.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	writer.WriteHeader(appError.HTTPStatus)
	_ = json.NewEncoder(writer).Encode(map[string]string{
		constants.FieldCode:  appError.Code,
		constants.FieldError: appError.Message,
	})
}
