package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-ess/internal/shared/config"
	"go-ess/internal/shared/contextutil"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx answer from the payroll API. Errors carries the
// field messages of a 422 response.
type APIError struct {
	Status  int
	Message string
	Errors  map[string]string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("upstream responded with status %d", e.Status)
}

func (e *APIError) IsValidation() bool {
	return e.Status == http.StatusUnprocessableEntity
}

func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
	Message string          `json:"message"`
	Errors  map[string]any  `json:"errors"`
}

type Client struct {
	http     *fasthttp.Client
	baseURL  string
	timeout  time.Duration
	provider string
	logger   *zap.Logger
}

type Option func(*Client)

// WithDial replaces the dialer, used to point the client at an in-memory
// listener.
func WithDial(dial fasthttp.DialFunc) Option {
	return func(c *Client) {
		c.http.Dial = dial
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger.Named("upstream.client")
	}
}

func NewClient(cfg config.UpstreamConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	provider := cfg.Provider
	if provider == "" {
		provider = "paystack"
	}

	c := &Client{
		http: &fasthttp.Client{
			Name:                "go-ess",
			MaxConnsPerHost:     64,
			MaxIdleConnDuration: time.Minute,
		},
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		timeout:  timeout,
		provider: provider,
		logger:   zap.L().Named("upstream.client"),
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do sends one request and decodes the envelope. out receives data, meta
// (when non-nil) receives the pagination block.
func (c *Client) do(
	ctx context.Context,
	method, path string,
	query map[string]string,
	body any,
	out any,
	meta any,
) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + "/" + strings.TrimLeft(path, "/"))
	req.Header.SetMethod(method)
	req.Header.Set("Accept", "application/json")

	args := req.URI().QueryArgs()
	for k, v := range query {
		if v != "" {
			args.Add(k, v)
		}
	}

	if token := contextutil.GetAccessToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if requestID := contextutil.GetRequestID(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return ctx.Err()
		}
		if remaining < timeout {
			timeout = remaining
		}
	}

	start := time.Now()
	if err := c.http.DoTimeout(req, resp, timeout); err != nil {
		c.logger.Warn("upstream call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	status := resp.StatusCode()
	c.logger.Debug("upstream call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("elapsed", time.Since(start)),
	)

	var env envelope
	if raw := resp.Body(); len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil && status < 300 {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}

	if status < 200 || status >= 300 {
		return &APIError{
			Status:  status,
			Message: env.Message,
			Errors:  flattenErrors(env.Errors),
		}
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode %s %s data: %w", method, path, err)
		}
	}
	if meta != nil && len(env.Meta) > 0 && string(env.Meta) != "null" {
		if err := json.Unmarshal(env.Meta, meta); err != nil {
			return fmt.Errorf("decode %s %s meta: %w", method, path, err)
		}
	}
	return nil
}

// flattenErrors keeps the first message per field. The API sends either a
// string or a list of strings per field.
func flattenErrors(raw map[string]any) map[string]string {
	if len(raw) == 0 {
		return nil
	}

	out := make(map[string]string, len(raw))
	for field, v := range raw {
		switch msg := v.(type) {
		case string:
			out[field] = msg
		case []any:
			if len(msg) > 0 {
				out[field] = fmt.Sprint(msg[0])
			}
		default:
			out[field] = fmt.Sprint(msg)
		}
	}
	return out
}
