package connection

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/leasedesk-go/internal/core/domain"
	"github.com/yndnr/leasedesk-go/internal/telemetry/logger"
)

// DefaultUserAgent identifies the CLI to the backend.
const DefaultUserAgent = "leasedesk-cli"

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// TokenSource yields the current bearer token, empty when signed out.
type TokenSource interface {
	Token() string
}

// TokenSourceFunc adapts a function to TokenSource.
type TokenSourceFunc func() string

// Token implements TokenSource.
func (f TokenSourceFunc) Token() string { return f() }

// RequestRecorder receives one observation per call, typically metrics.
type RequestRecorder interface {
	ObserveRequest(resource, outcome string, d time.Duration)
}

// Request describes one backend call.
type Request struct {
	Method string
	Path   string     // joined to the base URL, e.g. "/api/v1/people"
	Query  url.Values // optional
	Body   any        // JSON-encoded when non-nil

	// Resource labels the call in logs and metrics; defaults to the first
	// path segment after /api/v1.
	Resource string
}

// HTTPClient sends REST calls to the backend and classifies each answer
// into a domain.Outcome. It is the only place that interprets a 401.
type HTTPClient struct {
	baseURL   string
	client    *http.Client
	tokens    TokenSource
	limiter   *rate.Limiter
	userAgent string
	logger    logger.Logger
	metrics   RequestRecorder

	entropyMu sync.Mutex
	entropy   io.Reader
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithTokenSource sets where the bearer token comes from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *HTTPClient) { c.tokens = ts }
}

// WithRateLimit caps outgoing calls per second. Zero or less disables it.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *HTTPClient) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithTLSConfig sets the transport TLS configuration.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(c *HTTPClient) {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.TLSClientConfig = cfg
		c.client.Transport = t
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.client = hc }
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// WithMetrics sets the request recorder.
func WithMetrics(r RequestRecorder) Option {
	return func(c *HTTPClient) { c.metrics = r }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *HTTPClient) { c.userAgent = ua }
}

// NewHTTPClient creates a client for server. A scheme-less server is
// taken as http://. The client has no timeout of its own; callers bound
// calls through their context.
func NewHTTPClient(server string, opts ...Option) *HTTPClient {
	baseURL := strings.TrimRight(server, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}

	c := &HTTPClient{
		baseURL:   baseURL,
		client:    &http.Client{},
		userAgent: DefaultUserAgent,
		logger:    logger.Nop(),
		entropy:   ulid.Monotonic(rand.Reader, 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the base URL of the client.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// Do sends req and classifies the answer:
//
//   - 2xx: OutcomeOK, with the body decoded into out when out is non-nil
//   - 401: OutcomeAuthExpired
//   - any other status: OutcomeRejected with the server's message
//   - no response (transport error, cancelled context): OutcomeNetworkError
//
// A 2xx body that cannot be decoded is reported as Rejected.
func (c *HTTPClient) Do(ctx context.Context, req Request, out any) domain.Outcome {
	resource := req.Resource
	if resource == "" {
		resource = resourceOf(req.Path)
	}
	reqID := c.newRequestID()
	ctx = logger.WithRequestID(ctx, reqID)
	log := c.logger.WithContext(ctx).With("method", req.Method, "resource", resource)

	start := time.Now()
	outcome := c.do(ctx, req, reqID, out)
	elapsed := time.Since(start)

	log.Debug("request done", "path", req.Path, "outcome", outcome.Kind.String(), "status", outcome.Status, "elapsed", elapsed)
	if c.metrics != nil {
		c.metrics.ObserveRequest(resource, outcome.Kind.String(), elapsed)
	}
	return outcome
}

func (c *HTTPClient) do(ctx context.Context, req Request, reqID string, out any) domain.Outcome {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return domain.NetworkError(fmt.Errorf("rate limit wait: %w", err))
		}
	}

	httpReq, err := c.newRequest(ctx, req, reqID)
	if err != nil {
		// A request that cannot be built never left the client.
		return domain.Rejected(0, err.Error())
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return domain.NetworkError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.AuthExpired(readMessage(resp.Body))

	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return domain.Rejected(resp.StatusCode, readMessage(resp.Body))
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
			return domain.Rejected(resp.StatusCode, "malformed response")
		}
	}
	return domain.OK(resp.StatusCode)
}

func (c *HTTPClient) newRequest(ctx context.Context, req Request, reqID string) (*http.Request, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("X-Request-ID", reqID)
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return httpReq, nil
}

func (c *HTTPClient) newRequestID() string {
	c.entropyMu.Lock()
	defer c.entropyMu.Unlock()
	return ulid.MustNew(ulid.Now(), c.entropy).String()
}

// readMessage extracts a human message from an error body: the "message"
// or "error" field of a JSON object, else the trimmed text.
func readMessage(r io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	var errResp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &errResp); err == nil {
		if errResp.Message != "" {
			return errResp.Message
		}
		if errResp.Error != "" {
			return errResp.Error
		}
	}
	return strings.TrimSpace(string(data))
}

// resourceOf turns "/api/v1/contracts/42/renew" into "contracts".
func resourceOf(path string) string {
	p := strings.TrimPrefix(path, "/")
	p = strings.TrimPrefix(p, "api/v1/")
	head, _, _ := strings.Cut(p, "/")
	head, _, _ = strings.Cut(head, "?")
	if head == "" {
		return "root"
	}
	return head
}
