// Package auth carries the catalog API's opaque session token. The token is
// never parsed or validated here; it is only extracted, stored on the request
// context and forwarded.
package auth

import (
	"context"
	"strings"
)

// Scheme is the authorization scheme the catalog API expects.
const Scheme = "Token"

type ctxKey struct{}

// ParseAuthorization extracts the token from an Authorization header value.
// Both "Token <t>" and "Bearer <t>" are accepted, as is a bare token.
func ParseAuthorization(header string) (string, bool) {
	raw := strings.TrimSpace(header)
	if raw == "" {
		return "", false
	}
	if scheme, rest, ok := strings.Cut(raw, " "); ok {
		switch strings.ToLower(scheme) {
		case "token", "bearer":
			raw = strings.TrimSpace(rest)
		default:
			return "", false
		}
	} else if strings.EqualFold(raw, "token") || strings.EqualFold(raw, "bearer") {
		return "", false
	}
	if raw == "" || strings.ContainsAny(raw, " \t") {
		return "", false
	}
	return raw, true
}

// Header renders the Authorization value forwarded to the catalog API.
func Header(token string) string {
	return Scheme + " " + token
}

// WithToken stores the token on ctx.
func WithToken(ctx context.Context, token string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, token)
}

// TokenFromContext returns the token stored by WithToken, if any.
func TokenFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxKey{}).(string); ok {
		return v
	}
	return ""
}
