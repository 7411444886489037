package ncp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	headerAPIKeyID = "x-ncp-apigw-api-key-id"
	headerAPIKey   = "x-ncp-apigw-api-key"

	// Traffic-optimal driving route.
	DefaultRouteOption = "traoptimal"
)

type Options struct {
	APIKeyID     string
	APIKey       string
	GeocodeURL   string
	DirectionURL string
	// Minimum spacing between two outbound calls. Zero disables pacing.
	Interval time.Duration
	Timeout  time.Duration
	// Optional; a client with Timeout is created when nil.
	HTTPClient *http.Client
}

// Client talks to the Naver Cloud Platform Maps geocoding and driving
// directions endpoints. It implements ports.Geocoder and ports.RouteEvaluator.
//
// Every outbound call first takes a token from a shared limiter so that all
// callers of one Client are paced together. The Client is safe for concurrent use.
type Client struct {
	session      *http.Client
	apiKeyID     string
	apiKey       string
	geocodeURL   string
	directionURL string
	option       string
	limiter      *rate.Limiter
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

func NewClient(opts Options) (*Client, error) {
	if opts.APIKeyID == "" || opts.APIKey == "" {
		return nil, errors.New("NCP api key id and secret must be non-empty")
	}
	if opts.GeocodeURL == "" || opts.DirectionURL == "" {
		return nil, errors.New("NCP geocode and direction urls must be non-empty")
	}

	session := opts.HTTPClient
	if session == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		session = &http.Client{Timeout: timeout}
	}

	limit := rate.Inf
	if opts.Interval > 0 {
		limit = rate.Every(opts.Interval)
	}

	return &Client{
		session:      session,
		apiKeyID:     opts.APIKeyID,
		apiKey:       opts.APIKey,
		geocodeURL:   opts.GeocodeURL,
		directionURL: opts.DirectionURL,
		option:       DefaultRouteOption,
		limiter:      rate.NewLimiter(limit, 1),
	}, nil
}

func (c *Client) newRequest(ctx context.Context, endpoint string, params map[string]string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set(headerAPIKeyID, c.apiKeyID)
	req.Header.Set(headerAPIKey, c.apiKey)
	req.Header.Set("Accept", "application/json")

	q := req.URL.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	req.URL.RawQuery = q.Encode()

	return req, nil
}

// waitToken blocks until the limiter grants a call. A token that would only
// arrive after the context deadline is reported as context.DeadlineExceeded.
func (c *Client) waitToken(ctx context.Context) error {
	err := c.limiter.Wait(ctx)
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("wait for rate limiter: %w", ctxErr)
	}
	if _, ok := ctx.Deadline(); ok {
		return fmt.Errorf("wait for rate limiter: %w: %w", context.DeadlineExceeded, err)
	}
	return fmt.Errorf("wait for rate limiter: %w", err)
}

// do waits for a pacing token, sends req once, and rejects any status other than 200.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if err := c.waitToken(req.Context()); err != nil {
		return nil, err
	}

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}
