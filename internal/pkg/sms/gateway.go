package sms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

var (
	// ErrGatewayBaseURLRequired is returned when the gateway base URL is missing.
	ErrGatewayBaseURLRequired = errors.New("sms gateway base url is required")
	// ErrGatewayAPIKeyRequired is returned when the gateway API key is missing.
	ErrGatewayAPIKeyRequired = errors.New("sms gateway api key is required")
)

// Gateway is an SMS implementation backed by an HTTP form-post provider.
type Gateway struct {
	baseURL string
	apiKey  string
	sender  string
	client  *http.Client
	retries uint64
	backoff time.Duration
}

// GatewayConfig configures the Gateway implementation.
type GatewayConfig struct {
	// BaseURL is the provider's send endpoint.
	BaseURL string
	// APIKey authenticates requests to the provider.
	APIKey string
	// Sender is an optional sender ID included when non-empty.
	Sender string
	// Timeout bounds a single delivery attempt; defaults to 10s.
	Timeout time.Duration
	// MaxRetries caps retry attempts on transient failures; defaults to 2.
	MaxRetries uint64
	// Backoff is the initial retry delay; defaults to 500ms.
	Backoff time.Duration
}

type gatewayResponse struct {
	Code int `json:"code"`
	Data struct {
		MessageID string `json:"messageId"`
	} `json:"data"`
}

// NewGateway constructs an HTTP SMS gateway client.
func NewGateway(cfg GatewayConfig) (*Gateway, error) {
	if cfg.BaseURL == "" {
		return nil, ErrGatewayBaseURLRequired
	}
	if cfg.APIKey == "" {
		return nil, ErrGatewayAPIKeyRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	retries := cfg.MaxRetries
	if retries == 0 {
		retries = 2
	}

	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}

	return &Gateway{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		sender:  cfg.Sender,
		client:  &http.Client{Timeout: timeout},
		retries: retries,
		backoff: backoff,
	}, nil
}

// Send delivers a message through the gateway, retrying transient failures
// with exponential backoff.
func (g *Gateway) Send(ctx context.Context, msg Message) error {
	form := url.Values{
		"apiKey":    {g.apiKey},
		"recipient": {msg.To},
		"text":      {msg.Text},
	}
	if g.sender != "" {
		form.Set("from", g.sender)
	}

	b := retry.WithMaxRetries(g.retries, retry.NewExponential(g.backoff))

	return retry.Do(ctx, b, func(ctx context.Context) error {
		return g.attempt(ctx, form)
	})
}

func (g *Gateway) attempt(ctx context.Context, form url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return retry.RetryableError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return retry.RetryableError(err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return retry.RetryableError(fmt.Errorf("sms gateway status %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sms gateway status %d", resp.StatusCode)
	}

	var result gatewayResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("parse sms gateway response: %w", err)
	}
	if result.Code != 0 {
		return fmt.Errorf("sms gateway error code %d", result.Code)
	}

	return nil
}
