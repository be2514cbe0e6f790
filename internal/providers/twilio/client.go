package twilio

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

	"github.com/rs/zerolog"

	"rakta/internal/infra"
)

// ErrMissingCredentials indicates that the client was configured without a
// full set of account credentials.
var ErrMissingCredentials = errors.New("twilio: account sid, auth token and from phone are required")

// Options configures the Twilio messaging client. Credentials are injected
// here at construction time; they are never read from package-level state.
type Options struct {
	AccountSID     string
	AuthToken      string
	FromPhone      string
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls to the Twilio Messages API.
type Client struct {
	accountSID string
	authToken  string
	fromPhone  string
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

// Message is the normalized result of a successful send.
type Message struct {
	SID    string
	To     string
	Status string
}

type messageResponse struct {
	SID     string `json:"sid"`
	To      string `json:"to"`
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewClient constructs a client with sane defaults and injected dependencies.
func NewClient(opts Options) (*Client, error) {
	accountSID := strings.TrimSpace(opts.AccountSID)
	authToken := strings.TrimSpace(opts.AuthToken)
	fromPhone := strings.TrimSpace(opts.FromPhone)
	if accountSID == "" || authToken == "" || fromPhone == "" {
		return nil, ErrMissingCredentials
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.twilio.com/2010-04-01"
	}

	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}

	return &Client{
		accountSID: accountSID,
		authToken:  authToken,
		fromPhone:  fromPhone,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Send dispatches a single SMS. A response carrying a message SID means
// success; anything else is reported as an error with the provider's message
// when present, defaulting to "Unknown error".
func (c *Client) Send(ctx context.Context, to, body string) (*Message, error) {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.fromPhone)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", c.baseURL, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("twilio: build request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("twilio: send: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("twilio: read response: %w", err)
	}

	var parsed messageResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, fmt.Errorf("twilio: decode response (status %d): %w", resp.StatusCode, err)
	}

	if parsed.SID == "" {
		msg := parsed.Message
		if msg == "" {
			msg = "Unknown error"
		}
		c.logger.Warn().Int("status", resp.StatusCode).Str("to", to).Msg("twilio send rejected")
		return nil, fmt.Errorf("twilio: %s", msg)
	}

	c.logger.Debug().Str("sid", parsed.SID).Str("to", to).Msg("twilio send accepted")
	return &Message{SID: parsed.SID, To: parsed.To, Status: parsed.Status}, nil
}
