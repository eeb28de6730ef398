package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/baabuu/storefront-web/api/responses"
	pkgerrors "github.com/baabuu/storefront-web/pkg/errors"
	"github.com/baabuu/storefront-web/pkg/logger"
)

const maxLoginBodyBytes = 64 << 10

type attemptCounter interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	RateLimitKey(scope string) string
}

// LoginLimits caps login attempts inside a fixed window, per client address
// and per username. A zero limit disables that bucket.
type LoginLimits struct {
	Window      time.Duration
	PerIP       int
	PerUsername int
}

func (l LoginLimits) active() bool {
	return l.Window > 0 && (l.PerIP > 0 || l.PerUsername > 0)
}

type attemptBucket struct {
	kind  string
	scope string
	limit int
}

// LoginThrottle answers 429 with Retry-After once a bucket is exhausted. The
// username is hashed before it reaches redis or the logs.
func LoginThrottle(limits LoginLimits, counter attemptCounter, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !limits.active() || counter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			body, err := io.ReadAll(io.LimitReader(r.Body, maxLoginBodyBytes))
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request"))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			for _, b := range loginBuckets(limits, remoteAddress(r), loginName(body)) {
				count, err := counter.IncrWithTTL(ctx, counter.RateLimitKey(b.scope), limits.Window)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "login throttle"))
					return
				}
				if count > int64(b.limit) {
					logg.Warn(logg.WithFields(ctx, map[string]any{
						"bucket":   b.kind,
						"scope":    b.scope,
						"attempts": count,
						"limit":    b.limit,
					}), "auth.login.throttled")
					w.Header().Set("Retry-After", strconv.Itoa(int(limits.Window.Round(time.Second).Seconds())))
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many login attempts"))
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func loginBuckets(limits LoginLimits, ip, username string) []attemptBucket {
	var buckets []attemptBucket
	if limits.PerIP > 0 && ip != "" {
		buckets = append(buckets, attemptBucket{kind: "ip", scope: "login:ip:" + ip, limit: limits.PerIP})
	}
	if limits.PerUsername > 0 && username != "" {
		sum := sha256.Sum256([]byte(username))
		buckets = append(buckets, attemptBucket{
			kind:  "username",
			scope: "login:user:" + hex.EncodeToString(sum[:]),
			limit: limits.PerUsername,
		})
	}
	return buckets
}

// remoteAddress prefers the first X-Forwarded-For hop since the web tier runs
// behind a proxy.
func remoteAddress(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// loginName pulls the username out of a JSON or form body, lowercased.
func loginName(body []byte) string {
	var payload struct {
		Username string `json:"username"`
	}
	name := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		name = payload.Username
	} else if values, err := url.ParseQuery(string(body)); err == nil {
		name = values.Get("username")
	}
	return strings.ToLower(strings.TrimSpace(name))
}
