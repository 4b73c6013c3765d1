package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/crewlog/crewlog/errors"
	"github.com/crewlog/crewlog/internal/httpclient"
)

// DefaultTimeout bounds a single catalog request
const DefaultTimeout = 30 * time.Second

// Client is the HTTP implementation of Provider and Sink
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

var (
	_ Provider = (*Client)(nil)
	_ Sink     = (*Client)(nil)
)

// NewClient creates a catalog client for the given API base URL
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: httpclient.New(timeout),
	}
}

// SetHTTPClient allows overriding the HTTP client for testing
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// ListSquads returns all squads with their nested members
func (c *Client) ListSquads(ctx context.Context) ([]Squad, error) {
	var squads []Squad
	if err := c.get(ctx, "/squads", &squads); err != nil {
		return nil, errors.Wrap(err, "failed to list squads")
	}
	return squads, nil
}

// ListLogTypes returns all log types
func (c *Client) ListLogTypes(ctx context.Context) ([]LogType, error) {
	var types []LogType
	if err := c.get(ctx, "/log-types", &types); err != nil {
		return nil, errors.Wrap(err, "failed to list log types")
	}
	return types, nil
}

// ListCategories returns all categories
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var cats []Category
	if err := c.get(ctx, "/categories", &cats); err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}
	return cats, nil
}

// CreateLog posts one finished log record
func (c *Client) CreateLog(ctx context.Context, rec LogRecord) error {
	if err := c.send(ctx, http.MethodPost, "/logs", rec); err != nil {
		return errors.Wrap(err, "failed to create log")
	}
	return nil
}

// UpdateLog replaces an existing log record
func (c *Client) UpdateLog(ctx context.Context, id int64, rec LogRecord) error {
	if err := c.send(ctx, http.MethodPut, fmt.Sprintf("/logs/%d", id), rec); err != nil {
		return errors.Wrapf(err, "failed to update log %d", id)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp.StatusCode); err != nil {
		body, _ := io.ReadAll(resp.Body)
		return errors.WithDetail(err, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp.StatusCode); err != nil {
		respBody, _ := io.ReadAll(resp.Body)
		return errors.WithDetail(err, string(respBody))
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// classifyTransportError maps a transport failure onto a typed sentinel
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(errors.ErrTimeout, err.Error())
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errors.Wrap(errors.ErrTimeout, err.Error())
	}
	return errors.Wrap(errors.ErrUnavailable, err.Error())
}

// classifyStatus maps a non-2xx status onto a typed sentinel
func classifyStatus(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return errors.Wrapf(errors.ErrUnauthorized, "status %d", status)
	case status == http.StatusNotFound:
		return errors.Wrapf(errors.ErrNotFound, "status %d", status)
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return errors.Wrapf(errors.ErrTimeout, "status %d", status)
	default:
		return errors.Newf("catalog request failed with status %d", status)
	}
}
