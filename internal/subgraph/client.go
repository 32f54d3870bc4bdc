package subgraph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// maxBackoffShift caps the exponential backoff at baseDelay * 2^maxBackoffShift.
const maxBackoffShift = 6

// Client is a GraphQL client for a subgraph endpoint with retry on 429 and 5xx responses.
type Client struct {
	endpoint   string
	secrets    []string
	httpClient *retryablehttp.Client
}

// NewClient creates a new subgraph client. maxRetries is the number of retries after the
// first attempt; the wait between attempts starts at baseDelay and doubles.
func NewClient(endpoint string, maxRetries int, baseDelay, timeout time.Duration) *Client {
	rc := retryablehttp.NewClient()
	rc.HTTPClient.Timeout = timeout
	rc.RetryMax = maxRetries
	rc.RetryWaitMin = baseDelay
	rc.RetryWaitMax = baseDelay << min(max(maxRetries, 0), maxBackoffShift)
	rc.Logger = slog.Default()

	// The gateway URL carries the API key in its path; keep it out of error messages.
	secrets := []string{endpoint}
	if u, err := url.Parse(endpoint); err == nil && len(u.Path) > 1 {
		secrets = append(secrets, u.Path)
	}

	return &Client{
		endpoint:   endpoint,
		secrets:    secrets,
		httpClient: rc,
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// query POSTs a GraphQL query and unmarshals the "data" member of the response into dest.
func (c *Client) query(ctx context.Context, query string, variables map[string]any, dest any) error {
	payload, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("encoding query: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, payload)
	if err != nil {
		return c.redact(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.redact(fmt.Errorf("executing request: %w", err))
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from subgraph: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var envelope graphQLResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("parsing JSON response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		msgs := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			msgs = append(msgs, e.Message)
		}
		return fmt.Errorf("graphql: %s", strings.Join(msgs, "; "))
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return errors.New("graphql: response has no data")
	}

	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		return fmt.Errorf("parsing query data: %w", err)
	}
	return nil
}

func (c *Client) redact(err error) error {
	return &redactedError{err: err, secrets: c.secrets}
}

// redactedError masks endpoint secrets in the message while keeping the error chain intact.
type redactedError struct {
	err     error
	secrets []string
}

func (e *redactedError) Error() string {
	msg := e.err.Error()
	for _, s := range e.secrets {
		msg = strings.ReplaceAll(msg, s, "[subgraph]")
	}
	return msg
}

func (e *redactedError) Unwrap() error {
	return e.err
}
