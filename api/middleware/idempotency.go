package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/baabuu/storefront-web/api/responses"
	pkgAuth "github.com/baabuu/storefront-web/pkg/auth"
	pkgerrors "github.com/baabuu/storefront-web/pkg/errors"
	"github.com/baabuu/storefront-web/pkg/logger"
	pkgredis "github.com/baabuu/storefront-web/pkg/redis"
)

const (
	IdempotencyKeyHeader      = "Idempotency-Key"
	IdempotentReplayedHeader  = "Idempotent-Replayed"
	idempotencyTTL            = 24 * time.Hour
	maxIdempotencyKeyLength   = 255
	idempotencyRecordedHeader = "Location"
)

// idempotentWrite reports whether a request creates records or fans out to
// many on the catalog API. Only those are recorded.
func idempotentWrite(method, path string) bool {
	if method != http.MethodPost {
		return false
	}
	path = strings.TrimRight(path, "/")
	switch {
	case path == "/api/admin/products", path == "/api/admin/categories":
		return true
	case strings.HasPrefix(path, "/api/admin/products/bulk-"):
		return true
	case strings.HasPrefix(path, "/api/admin/products/") && strings.HasSuffix(path, "/images"):
		return true
	}
	return false
}

type storedResponse struct {
	Status      int               `json:"status"`
	Headers     map[string]string `json:"headers,omitempty"`
	Body        []byte            `json:"body"`
	RequestHash string            `json:"request_hash"`
}

// Idempotency replays the stored response when a covered admin write is
// retried with the same Idempotency-Key. Requests without a key pass through
// untouched; server errors are never recorded so they can be retried.
func Idempotency(store pkgredis.IdempotencyStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			key := strings.TrimSpace(r.Header.Get(IdempotencyKeyHeader))
			if key == "" || !idempotentWrite(r.Method, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			if len(key) > maxIdempotencyKeyLength {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "idempotency key too long").
					WithDetails(map[string]any{"max_length": maxIdempotencyKeyLength}))
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request"))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			requestHash := digest(body)
			redisKey := store.IdempotencyKey(requestScope(r), key)

			raw, err := store.Get(ctx, redisKey)
			switch {
			case err != nil && !errors.Is(err, pkgredis.Nil):
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check idempotency"))
				return
			case raw != "":
				var prior storedResponse
				if err := json.Unmarshal([]byte(raw), &prior); err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode idempotency record"))
					return
				}
				if prior.RequestHash != requestHash {
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeConflict, "idempotency key reused with different request body"))
					return
				}
				replay(w, prior)
				return
			}

			capture := &responseCapture{ResponseWriter: w}
			next.ServeHTTP(capture, r)
			status := capture.statusCode()
			if status >= http.StatusInternalServerError {
				return
			}

			record := storedResponse{
				Status:      status,
				Headers:     map[string]string{},
				Body:        capture.body.Bytes(),
				RequestHash: requestHash,
			}
			for _, name := range []string{"Content-Type", idempotencyRecordedHeader} {
				if v := capture.Header().Get(name); v != "" {
					record.Headers[name] = v
				}
			}
			payload, err := json.Marshal(record)
			if err != nil {
				logg.Error(ctx, "idempotency.marshal_failed", err)
				return
			}
			if _, err := store.SetNX(ctx, redisKey, string(payload), idempotencyTTL); err != nil {
				logg.Error(ctx, "idempotency.persist_failed", err)
			}
		})
	}
}

// requestScope ties a key to the caller's token and the exact route so two
// admins cannot collide on the same key.
func requestScope(r *http.Request) string {
	sum := sha256.Sum256([]byte(strings.Join([]string{
		pkgAuth.TokenFromContext(r.Context()),
		r.Method,
		r.URL.Path,
	}, "|")))
	return hex.EncodeToString(sum[:12])
}

func digest(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

func replay(w http.ResponseWriter, prior storedResponse) {
	for name, value := range prior.Headers {
		w.Header().Set(name, value)
	}
	w.Header().Set(IdempotentReplayedHeader, "true")
	w.WriteHeader(prior.Status)
	_, _ = w.Write(prior.Body)
}

type responseCapture struct {
	http.ResponseWriter
	body   bytes.Buffer
	status int
}

func (c *responseCapture) statusCode() int {
	if c.status == 0 {
		return http.StatusOK
	}
	return c.status
}

func (c *responseCapture) WriteHeader(code int) {
	c.status = code
	c.ResponseWriter.WriteHeader(code)
}

func (c *responseCapture) Write(b []byte) (int, error) {
	if c.status == 0 {
		c.status = http.StatusOK
	}
	c.body.Write(b)
	return c.ResponseWriter.Write(b)
}
