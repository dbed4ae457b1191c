package redactapi

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Dyno1404/Justredact/internal/fields"
	"github.com/google/uuid"
)

// ServiceError is any non-2xx answer from the redaction service.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("redaction service: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("redaction service: status %d", e.Status)
}

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

	t := &http.Transport{}
	if strings.EqualFold(u.Scheme, "https") {
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: opt.Insecure} //nolint:gosec
	}

	timeout := opt.Timeout
	if timeout == 0 {
		// OCR plus entity detection can take a while on large documents.
		timeout = 120 * time.Second
	}

	hc := &http.Client{Transport: t, Timeout: timeout}
	return &Client{baseURL: u, hc: hc}, nil
}

// Redact uploads the document and the chosen categories and returns the
// redacted artifact bytes. It refuses to issue a request with no document
// or no categories; those are caller validation failures, not service ones.
func (c *Client) Redact(ctx context.Context, name string, data []byte, cats []fields.Category) ([]byte, error) {
	if len(data) == 0 {
		return nil, errors.New("document is required")
	}
	if len(cats) == 0 {
		return nil, fields.ErrNoFields
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(data); err != nil {
		return nil, err
	}
	encoded, err := json.Marshal(cats)
	if err != nil {
		return nil, err
	}
	if err := mw.WriteField("categories", string(encoded)); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	u := c.baseURL.ResolveReference(&url.URL{Path: "/redact"})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("content-type", mw.FormDataContentType())
	req.Header.Set("x-request-id", uuid.NewString())

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &ServiceError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var er struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&er)
		return nil, &ServiceError{Status: resp.StatusCode, Message: er.Error}
	}
	return io.ReadAll(resp.Body)
}
