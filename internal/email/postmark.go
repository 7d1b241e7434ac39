package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/guttosm/quote-service/internal/circuitbreaker"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	// DefaultAPIURL is Postmark's single-message endpoint.
	DefaultAPIURL  = "https://api.postmarkapp.com/email"
	defaultStream  = "outbound"
	defaultTimeout = 30 * time.Second
)

// APIError is a non-200 reply from Postmark.
type APIError struct {
	StatusCode int
	ErrorCode  int    `json:"ErrorCode"`
	Message    string `json:"Message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("postmark: status %d, error code %d: %s", e.StatusCode, e.ErrorCode, e.Message)
}

// Temporary reports whether retrying later could succeed. Postmark answers 422 for
// rejected messages such as an inactive recipient.
func (e *APIError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

type postmarkPayload struct {
	From          string `json:"From"`
	To            string `json:"To"`
	Bcc           string `json:"Bcc,omitempty"`
	ReplyTo       string `json:"ReplyTo,omitempty"`
	Subject       string `json:"Subject"`
	TextBody      string `json:"TextBody,omitempty"`
	HTMLBody      string `json:"HtmlBody,omitempty"`
	Tag           string `json:"Tag,omitempty"`
	MessageStream string `json:"MessageStream"`
}

// PostmarkClient sends mail through the Postmark HTTP API.
type PostmarkClient struct {
	cfg        Config
	httpClient *http.Client
	breaker    *circuitbreaker.CircuitBreaker
}

// NewPostmarkClient creates a Postmark client. cb may be nil.
func NewPostmarkClient(cfg Config, cb *circuitbreaker.CircuitBreaker) *PostmarkClient {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.Stream == "" {
		cfg.Stream = defaultStream
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &PostmarkClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: cb,
	}
}

// CountsAsOutage reports whether err should count toward opening the mail
// circuit breaker. Rejected messages and canceled requests do not.
func CountsAsOutage(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	return !errors.Is(err, context.Canceled)
}

// Configured reports whether the client can send at all.
func (c *PostmarkClient) Configured() bool {
	return c.cfg.Token != "" && c.cfg.From != ""
}

// Send delivers msg. It returns ErrNotConfigured when the token or sender is missing.
func (c *PostmarkClient) Send(ctx context.Context, msg Message) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	if strings.TrimSpace(msg.To) == "" {
		return errors.New("email: recipient is required")
	}
	if c.breaker == nil {
		return c.send(ctx, msg)
	}
	return c.breaker.Execute(ctx, func() error {
		return c.send(ctx, msg)
	})
}

func (c *PostmarkClient) send(ctx context.Context, msg Message) error {
	replyTo := msg.ReplyTo
	if replyTo == "" {
		replyTo = c.cfg.ReplyTo
	}
	body, err := json.Marshal(postmarkPayload{
		From:          c.cfg.From,
		To:            msg.To,
		Bcc:           msg.Bcc,
		ReplyTo:       replyTo,
		Subject:       msg.Subject,
		TextBody:      msg.TextBody,
		HTMLBody:      msg.HTMLBody,
		Tag:           msg.Tag,
		MessageStream: c.cfg.Stream,
	})
	if err != nil {
		return fmt.Errorf("encode postmark payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build postmark request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Postmark-Server-Token", c.cfg.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("postmark request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(raw, apiErr) != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}
