package spendee

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Dan9191/spendee/pkg/config"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Endpoint identifies one upstream operation. Paths and versions are
// upstream-defined and used verbatim.
type Endpoint struct {
	Method  string
	Version string
	Path    string
	// Public endpoints are callable without a session
	Public bool
	// secret endpoints carry credentials or tokens, their bodies are not logged
	secret bool
}

func (e Endpoint) String() string {
	return e.Version + "/" + e.Path
}

// RawResponse is a successful upstream response
type RawResponse struct {
	StatusCode int
	Body       []byte
	// Result is the payload with the service envelope removed, if there was one
	Result json.RawMessage
}

// Client talks to the Spendee API on behalf of one session
type Client struct {
	baseURL        string
	clientVersion  string
	clientPlatform string
	client         *http.Client
	log            *logrus.Logger
	session        *Session
	now            func() time.Time
	deviceID       func() string
}

// Option customises a Client
type Option func(*Client)

// WithHTTPClient replaces the HTTP client, e.g. to set a transport or timeout
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithClock replaces the time source used for session expiry and budget defaults
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// WithDeviceID replaces the device_uuid generator used on login and registration
func WithDeviceID(gen func() string) Option {
	return func(c *Client) {
		c.deviceID = gen
	}
}

// NewClient initializes a new Spendee client. A nil logger gets one built from cfg.
func NewClient(cfg *config.Config, log *logrus.Logger, opts ...Option) (*Client, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if log == nil {
		log = cfg.NewLogger()
	}

	c := &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		clientVersion:  cfg.ClientVersion,
		clientPlatform: cfg.ClientPlatform,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		log:      log,
		now:      time.Now,
		deviceID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.session = newSession(cfg.SessionTTL, c.now)

	return c, nil
}

// Session returns the session owned by this client
func (c *Client) Session() *Session {
	return c.session
}

// Request sends one call to ep. Non-public endpoints require a session and
// fail with ErrNotAuthenticated before any network I/O when there is none.
// Public endpoints still carry the token when one is held, except the
// credential exchanges.
func (c *Client) Request(ctx context.Context, ep Endpoint, query url.Values, body any) (*RawResponse, error) {
	token, err := c.session.Token()
	if err != nil {
		if !ep.Public {
			return nil, err
		}
		token = ""
	}
	if ep.Public && ep.secret {
		token = ""
	}

	req, err := c.newRequest(ctx, ep, query, body)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
		// Older API versions still read the token from here
		req.Header.Set("api-uuid", token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Endpoint: ep.String(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Endpoint: ep.String(), Err: fmt.Errorf("failed to read response: %w", err)}
	}

	entry := c.log.WithFields(logrus.Fields{
		"method":   ep.Method,
		"endpoint": ep.String(),
		"status":   resp.StatusCode,
	})
	if ep.secret {
		entry.Debug("Spendee response received")
	} else {
		entry.Debugf("Spendee response: %s", raw)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			Endpoint:   ep.String(),
			StatusCode: resp.StatusCode,
			Payload:    raw,
			Message:    errorMessage(raw),
		}
	}

	result, err := unwrapEnvelope(ep, resp.StatusCode, raw)
	if err != nil {
		return nil, err
	}

	return &RawResponse{StatusCode: resp.StatusCode, Body: raw, Result: result}, nil
}

func (c *Client) newRequest(ctx context.Context, ep Endpoint, query url.Values, body any) (*http.Request, error) {
	params := url.Values{}
	params.Set("clientVersion", c.clientVersion)
	params.Set("clientPlatform", c.clientPlatform)
	for key, values := range query {
		params[key] = values
	}
	target := fmt.Sprintf("%s/%s/%s?%s", c.baseURL, ep.Version, ep.Path, params.Encode())

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &ValidationError{Field: "body", Reason: fmt.Sprintf("failed to encode %s request: %v", ep, err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, ep.Method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// call sends the request and hands back the unwrapped payload for decoding
func (c *Client) call(ctx context.Context, ep Endpoint, query url.Values, body any) (json.RawMessage, error) {
	resp, err := c.Request(ctx, ep, query, body)
	if err != nil {
		return nil, err
	}
	return resp.Result, nil
}
