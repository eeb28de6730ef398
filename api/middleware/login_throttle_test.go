package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baabuu/storefront-web/pkg/logger"
)

type memoryCounter struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func newMemoryCounter() *memoryCounter {
	return &memoryCounter{counts: map[string]int64{}}
}

func (m *memoryCounter) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key]++
	return m.counts[key], nil
}

func (m *memoryCounter) RateLimitKey(scope string) string {
	return "test:rl:" + scope
}

func loginRequest(body, remote string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.RemoteAddr = remote
	return req
}

func TestLoginThrottleForwardsBody(t *testing.T) {
	handler := LoginThrottle(LoginLimits{Window: time.Minute, PerIP: 2, PerUsername: 2}, newMemoryCounter(), logger.Nop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			assert.Contains(t, string(body), `"username":"tester"`)
			w.WriteHeader(http.StatusOK)
		}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, loginRequest(`{"username":"tester","password":"secret"}`, "1.2.3.4:5678"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginThrottleUsernameBucket(t *testing.T) {
	counter := newMemoryCounter()
	handler := LoginThrottle(LoginLimits{Window: time.Minute, PerUsername: 2}, counter, logger.Nop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }))

	codes := make([]int, 0, 3)
	for _, name := range []string{"Admin", " admin ", "ADMIN"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, loginRequest(`{"username":"`+name+`","password":"x"}`, "10.0.0.1:1"))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)
}

func TestLoginThrottleIPBucketWithRetryAfter(t *testing.T) {
	handler := LoginThrottle(LoginLimits{Window: 90 * time.Second, PerIP: 1}, newMemoryCounter(), logger.Nop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }))

	var last *httptest.ResponseRecorder
	for _, name := range []string{"a", "b"} {
		req := loginRequest("username="+name+"&password=x", "9.9.9.9:1")
		req.Header.Set("X-Forwarded-For", "5.6.7.8, 10.0.0.1")
		last = httptest.NewRecorder()
		handler.ServeHTTP(last, req)
	}
	require.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.Equal(t, "90", last.Header().Get("Retry-After"))
	assert.Contains(t, last.Body.String(), "RATE_LIMIT_EXCEEDED")
}

func TestLoginThrottleCounterFailure(t *testing.T) {
	counter := newMemoryCounter()
	counter.err = errors.New("redis down")
	handler := LoginThrottle(LoginLimits{Window: time.Minute, PerIP: 1}, counter, logger.Nop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { t.Fatalf("handler must not run") }))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, loginRequest(`{}`, "1.1.1.1:1"))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLoginThrottleDisabled(t *testing.T) {
	for _, tc := range []struct {
		name    string
		limits  LoginLimits
		counter attemptCounter
	}{
		{"no counter", LoginLimits{Window: time.Minute, PerIP: 1}, nil},
		{"no window", LoginLimits{PerIP: 1}, newMemoryCounter()},
		{"no limits", LoginLimits{Window: time.Minute}, newMemoryCounter()},
	} {
		handler := LoginThrottle(tc.limits, tc.counter, nil)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) }))
		for i := 0; i < 3; i++ {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, loginRequest(`{"username":"x"}`, "1.1.1.1:1"))
			assert.Equal(t, http.StatusNoContent, rec.Code, tc.name)
		}
	}
}

func TestLoginName(t *testing.T) {
	assert.Equal(t, "admin", loginName([]byte(`{"username":" Admin "}`)))
	assert.Equal(t, "bob", loginName([]byte("username=Bob&password=x")))
	assert.Equal(t, "", loginName([]byte(`{"password":"x"}`)))
}
