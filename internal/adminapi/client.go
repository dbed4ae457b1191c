package adminapi

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Client struct {
	baseURL *url.URL
	hc      *http.Client
}

type ClientOptions struct {
	Addr     string
	Insecure bool
	Timeout  time.Duration
}

func NewClient(opt ClientOptions) (*Client, error) {
	if opt.Addr == "" {
		return nil, errors.New("addr is required")
	}
	u, err := url.Parse(opt.Addr)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" {
		u.Scheme = "http"
	}
	if u.Host == "" {
		return nil, errors.New("invalid addr")
	}

	jar, _ := cookiejar.New(nil)
	t := &http.Transport{}
	if strings.EqualFold(u.Scheme, "https") {
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: opt.Insecure} //nolint:gosec
	}

	timeout := opt.Timeout
	if timeout == 0 {
		timeout = 20 * time.Second
	}

	hc := &http.Client{Transport: t, Jar: jar, Timeout: timeout}
	return &Client{baseURL: u, hc: hc}, nil
}

type Stats struct {
	Users        int `json:"users"`
	Uploads      int `json:"uploads"`
	RedactedDocs int `json:"redactedDocs"`
	SharedDocs   int `json:"sharedDocs"`
}

func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var resp Stats
	if err := c.doJSON(ctx, "GET", "/api/admin/stats", nil, &resp); err != nil {
		return Stats{}, err
	}
	return resp, nil
}

type User struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Blocked bool   `json:"blocked"`
}

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var resp []User
	if err := c.doJSON(ctx, "GET", "/api/admin/users", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) BlockUser(ctx context.Context, id int64, block bool) error {
	var req struct {
		Block bool `json:"block"`
	}
	req.Block = block
	return c.doJSON(ctx, "POST", "/api/admin/users/"+itoa(id)+"/block", req, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.doJSON(ctx, "DELETE", "/api/admin/users/"+itoa(id), nil, nil)
}

type LogEntry struct {
	ID     int64    `json:"id"`
	User   string   `json:"user"`
	Doc    string   `json:"doc"`
	Fields []string `json:"fields"`
	Date   string   `json:"date"`
	Status string   `json:"status"`
}

func (c *Client) ListLogs(ctx context.Context) ([]LogEntry, error) {
	var resp []LogEntry
	if err := c.doJSON(ctx, "GET", "/api/admin/logs", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) VerifyLog(ctx context.Context, id int64) error {
	return c.doJSON(ctx, "POST", "/api/admin/logs/"+itoa(id)+"/verify", nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		buf = bytes.NewReader(b)
	}
	u := c.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, method, u.String(), buf)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("content-type", "application/json")
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var er struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&er)
		if er.Error != "" {
			return errors.New(er.Error)
		}
		return errors.New(resp.Status)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
