// Package backend is the HTTP client for the catalog REST API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/baabuu/storefront-web/pkg/auth"
	"github.com/baabuu/storefront-web/pkg/config"
	pkgerrors "github.com/baabuu/storefront-web/pkg/errors"
	"github.com/baabuu/storefront-web/pkg/logger"
	"github.com/baabuu/storefront-web/pkg/metrics"
)

const maxErrorBody = 64 << 10

// Client talks to the catalog API. Requests carry the caller's token when one
// is present on the context (see auth.WithToken).
type Client struct {
	http    *http.Client
	base    string
	buffer  int
	logg    *logger.Logger
	metrics *metrics.CatalogMetrics
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithMetrics records request latency.
func WithMetrics(m *metrics.CatalogMetrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New builds a Client for the API origin resolved from cfg.
func New(cfg config.BackendConfig, publicOrigin string, logg *logger.Logger, opts ...Option) (*Client, error) {
	base := cfg.APIBase(publicOrigin)
	if base == "" {
		return nil, errors.New("catalog api base url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	buffer := cfg.BufferPageSize
	if buffer <= 0 {
		buffer = 1000
	}
	c := &Client{
		http:   &http.Client{Timeout: timeout},
		base:   base,
		buffer: buffer,
		logg:   logg,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Base returns the API origin.
func (c *Client) Base() string {
	return c.base
}

// APIURL builds an absolute URL for endpoint against this client's origin.
func (c *Client) APIURL(endpoint string) string {
	return APIURL(c.base, endpoint)
}

type request struct {
	operation   string
	method      string
	endpoint    string
	query       url.Values
	body        any
	rawBody     io.Reader
	contentType string
}

func (c *Client) do(ctx context.Context, req request, dest any) error {
	target := c.APIURL(req.endpoint)
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader
	contentType := req.contentType
	switch {
	case req.rawBody != nil:
		body = req.rawBody
	case req.body != nil:
		payload, err := json.Marshal(req.body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode catalog request")
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build catalog request")
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if token := auth.TokenFromContext(ctx); token != "" {
		httpReq.Header.Set("Authorization", auth.Header(token))
	}

	started := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.metrics.ObserveBackend(req.operation, 0, time.Since(started))
		c.logFailure(ctx, req, 0, err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog api unreachable")
	}
	defer resp.Body.Close()
	c.metrics.ObserveBackend(req.operation, resp.StatusCode, time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeError(resp)
		c.logFailure(ctx, req, resp.StatusCode, apiErr)
		return apiErr
	}

	if dest == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode catalog response")
	}
	return nil
}

func (c *Client) logFailure(ctx context.Context, req request, status int, err error) {
	if c.logg == nil {
		return
	}
	ctx = c.logg.WithFields(ctx, map[string]any{
		"backend_operation": req.operation,
		"backend_method":    req.method,
		"backend_endpoint":  req.endpoint,
		"backend_status":    status,
	})
	if status == 0 || status >= http.StatusInternalServerError {
		c.logg.Error(ctx, "catalog api request failed", err)
		return
	}
	c.logg.Debug(ctx, "catalog api rejected request")
}

// decodeError maps a non-2xx response to a typed error. The API reports
// failures as {"error": "..."} or {"detail": "..."}; field errors on 400 are
// passed through as details.
func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	code := pkgerrors.CodeForStatus(resp.StatusCode)

	var payload map[string]any
	_ = json.Unmarshal(raw, &payload)

	message := ""
	for _, key := range []string{"error", "detail", "message"} {
		if v, ok := payload[key].(string); ok && strings.TrimSpace(v) != "" {
			message = strings.TrimSpace(v)
			break
		}
	}
	if message == "" {
		message = fmt.Sprintf("catalog api returned %d", resp.StatusCode)
	}

	cause := fmt.Errorf("catalog api status %d", resp.StatusCode)
	typed := pkgerrors.Wrap(code, cause, message)
	switch code {
	case pkgerrors.CodeValidation:
		if len(payload) > 0 {
			typed = typed.WithDetails(payload)
		}
	case pkgerrors.CodeDependency:
		typed = typed.WithDetails(map[string]any{"status": resp.StatusCode})
	}
	return typed
}

// Ping checks that the catalog API answers.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, request{
		operation: "ping",
		method:    http.MethodGet,
		endpoint:  "/categories/",
		query:     url.Values{"page_size": []string{"1"}},
	}, nil)
}
