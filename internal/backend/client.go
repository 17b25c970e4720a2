package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Fetcher is the read surface the UI layers consume. Implemented by
// *Client; fakes implement it in tests.
type Fetcher interface {
	Ready(ctx context.Context) (bool, error)
	HasSavedAccounts(ctx context.Context) (bool, error)
	FetchRooms(ctx context.Context, accountID string) ([]Room, error)
	FetchMembers(ctx context.Context, accountID, roomID string) ([]Member, error)
	FetchMessages(ctx context.Context, accountID, roomID string) ([]Message, error)
}

var _ Fetcher = (*Client)(nil)

// Client talks to the parlor daemon's HTTP API. The daemon owns protocol
// handling, storage and sync; this client only reads the views the
// presentation layer needs.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultDaemonBind = "127.0.0.1:8449"
	defaultUserAgent  = "parlor/0.1"
	requestTimeout    = 5 * time.Second
)

// NewClient builds a Client for the daemon at bind (host:port or URL).
func NewClient(bind string) (*Client, error) {
	base, err := parseBaseURL(bind)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Ready reports whether the daemon has finished its startup work and the
// main UI can mount.
func (c *Client) Ready(ctx context.Context) (bool, error) {
	if c == nil {
		return false, fmt.Errorf("client is nil")
	}
	var payload struct {
		Ready bool `json:"ready"`
	}
	if err := c.do(ctx, "/api/ready", &payload); err != nil {
		return false, err
	}
	return payload.Ready, nil
}

// HasSavedAccounts reports whether any account session is saved on the
// daemon. Queried once at startup to decide the first-run path.
func (c *Client) HasSavedAccounts(ctx context.Context) (bool, error) {
	if c == nil {
		return false, fmt.Errorf("client is nil")
	}
	accounts, err := c.FetchAccounts(ctx)
	if err != nil {
		return false, err
	}
	return len(accounts) > 0, nil
}

// FetchAccounts retrieves the saved accounts.
func (c *Client) FetchAccounts(ctx context.Context) ([]Account, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload struct {
		Accounts []Account `json:"accounts"`
	}
	if err := c.do(ctx, "/api/accounts", &payload); err != nil {
		return nil, err
	}
	return payload.Accounts, nil
}

// FetchRooms retrieves the room list for an account.
func (c *Client) FetchRooms(ctx context.Context, accountID string) ([]Room, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload struct {
		Rooms []Room `json:"rooms"`
	}
	if err := c.doQuery(ctx, "/api/rooms", url.Values{"account": {accountID}}, &payload); err != nil {
		return nil, err
	}
	return payload.Rooms, nil
}

// FetchMembers retrieves the member list for a room.
func (c *Client) FetchMembers(ctx context.Context, accountID, roomID string) ([]Member, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload struct {
		Members []Member `json:"members"`
	}
	values := url.Values{"account": {accountID}, "room": {roomID}}
	if err := c.doQuery(ctx, "/api/members", values, &payload); err != nil {
		return nil, err
	}
	return payload.Members, nil
}

// FetchMessages retrieves recent timeline events for a room.
func (c *Client) FetchMessages(ctx context.Context, accountID, roomID string) ([]Message, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload struct {
		Messages []Message `json:"messages"`
	}
	values := url.Values{"account": {accountID}, "room": {roomID}}
	if err := c.doQuery(ctx, "/api/messages", values, &payload); err != nil {
		return nil, err
	}
	return payload.Messages, nil
}

func (c *Client) do(ctx context.Context, path string, dest any) error {
	return c.doURL(ctx, &url.URL{Path: path}, dest)
}

func (c *Client) doQuery(ctx context.Context, path string, values url.Values, dest any) error {
	return c.doURL(ctx, &url.URL{Path: path, RawQuery: values.Encode()}, dest)
}

func (c *Client) doURL(ctx context.Context, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.String(), resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(bind string) (*url.URL, error) {
	trimmed := strings.TrimSpace(bind)
	if trimmed == "" {
		trimmed = defaultDaemonBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse daemon bind %q: %w", bind, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
