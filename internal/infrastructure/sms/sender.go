// Package sms wraps the external SMS gateway used for phone
// verification. The gateway is a collaborator, not part of the core:
// failures surface as upstream errors and never block other flows.
package sms

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oral0005/backend-posylka/internal/apperr"
)

// Sender delivers a short text to a phone number.
type Sender interface {
	Send(ctx context.Context, phoneNumber, text string) error
}

// Client posts messages to a Twilio-style REST endpoint.
type Client struct {
	baseURL    string
	accountSID string
	authToken  string
	from       string
	httpClient *http.Client
}

type ClientConfig struct {
	BaseURL    string
	AccountSID string
	AuthToken  string
	From       string
}

func NewClient(cfg ClientConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		from:       cfg.From,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Send(ctx context.Context, phoneNumber, text string) error {
	form := url.Values{}
	form.Set("To", phoneNumber)
	form.Set("From", c.from)
	form.Set("Body", text)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", c.baseURL, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: sms gateway: %v", apperr.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: sms gateway returned %s", apperr.ErrUpstream, resp.Status)
	}

	return nil
}

// LogSender writes messages to the log instead of a gateway. Used in
// development and by the notifier when no gateway is configured.
type LogSender struct{}

func (LogSender) Send(_ context.Context, phoneNumber, text string) error {
	slog.Info("sms (dev sender)", "to", phoneNumber, "text", text)
	return nil
}
