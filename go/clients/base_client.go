package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultTimeout bounds every request made through a BaseClient
const DefaultTimeout = 30 * time.Second

// RequestIDHeader carries a per-request identifier for backend log correlation
const RequestIDHeader = "X-Request-ID"

// TokenSource supplies the bearer token attached to outgoing requests.
// An empty token means the request is sent anonymously.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to TokenSource
type TokenFunc func() string

// Token implements TokenSource
func (f TokenFunc) Token() string { return f() }

// ErrNetwork wraps transport failures, including timeouts
var ErrNetwork = errors.New("network error")

// APIError is returned for every non-2xx response
type APIError struct {
	StatusCode int
	// Detail is the backend's "detail" field, flattened to a single string
	Detail string
	Body   []byte
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("API returned status code: %d, detail: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("API returned status code: %d, response: %s", e.StatusCode, string(e.Body))
}

// RequestOption customizes a single request
type RequestOption func(*http.Request)

// WithBearerToken overrides the TokenSource for one request
func WithBearerToken(token string) RequestOption {
	return func(req *http.Request) {
		if token == "" {
			req.Header.Del("Authorization")
			return
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// WithQuery sets URL query parameters, skipping empty values
func WithQuery(params map[string]string) RequestOption {
	return func(req *http.Request) {
		q := req.URL.Query()
		for key, value := range params {
			if value != "" {
				q.Set(key, value)
			}
		}
		req.URL.RawQuery = q.Encode()
	}
}

type BaseClient struct {
	baseURL string
	client  *http.Client
	headers map[string]string
	tokens  TokenSource
}

func NewBaseClient(baseURL string) *BaseClient {
	return &BaseClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: DefaultTimeout,
		},
		headers: make(map[string]string),
	}
}

func (c *BaseClient) SetHeader(key, value string) {
	c.headers[key] = value
}

func (c *BaseClient) SetTimeout(timeout time.Duration) {
	c.client.Timeout = timeout
}

// SetTokenSource installs the bearer token provider consulted on every request
func (c *BaseClient) SetTokenSource(tokens TokenSource) {
	c.tokens = tokens
}

// SetHTTPClient replaces the underlying transport client, keeping the configured timeout
func (c *BaseClient) SetHTTPClient(hc *http.Client) {
	if hc.Timeout == 0 {
		hc.Timeout = c.client.Timeout
	}
	c.client = hc
}

// BaseURL returns the backend root this client talks to
func (c *BaseClient) BaseURL() string {
	return c.baseURL
}

func (c *BaseClient) MakeRequest(ctx context.Context, method, endpoint string, body io.Reader, contentType string, opts ...RequestOption) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	for _, opt := range opts {
		opt(req)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("method", method).Str("endpoint", endpoint).Str("request_id", requestID).Msg("request failed")
		return nil, fmt.Errorf("failed to make request: %w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	log.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request completed")

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w: %w", ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Detail:     extractDetail(responseBody),
			Body:       responseBody,
		}
	}

	return responseBody, nil
}

func (c *BaseClient) Get(ctx context.Context, endpoint string, opts ...RequestOption) ([]byte, error) {
	return c.MakeRequest(ctx, http.MethodGet, endpoint, nil, "", opts...)
}

func (c *BaseClient) Post(ctx context.Context, endpoint string, body io.Reader, opts ...RequestOption) ([]byte, error) {
	return c.MakeRequest(ctx, http.MethodPost, endpoint, body, "application/json", opts...)
}

func (c *BaseClient) Put(ctx context.Context, endpoint string, body io.Reader, opts ...RequestOption) ([]byte, error) {
	return c.MakeRequest(ctx, http.MethodPut, endpoint, body, "application/json", opts...)
}

func (c *BaseClient) Delete(ctx context.Context, endpoint string, opts ...RequestOption) ([]byte, error) {
	return c.MakeRequest(ctx, http.MethodDelete, endpoint, nil, "", opts...)
}

// GetJSON issues a GET and decodes the response into out
func (c *BaseClient) GetJSON(ctx context.Context, endpoint string, out interface{}, opts ...RequestOption) error {
	body, err := c.Get(ctx, endpoint, opts...)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// SendJSON encodes in, issues the request and decodes the response into out (when non-nil)
func (c *BaseClient) SendJSON(ctx context.Context, method, endpoint string, in, out interface{}, opts ...RequestOption) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	body, err := c.MakeRequest(ctx, method, endpoint, bytes.NewReader(payload), "application/json", opts...)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decode(body, out)
}

// FilePart is a file attached to a multipart request
type FilePart struct {
	Field string
	Path  string
}

// PostMultipart sends form fields and an optional file as multipart/form-data
func (c *BaseClient) PostMultipart(ctx context.Context, endpoint string, fields map[string]string, file *FilePart, out interface{}, opts ...RequestOption) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", key, err)
		}
	}

	if file != nil {
		f, err := os.Open(file.Path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", file.Path, err)
		}
		defer f.Close()

		part, err := writer.CreateFormFile(file.Field, filepath.Base(file.Path))
		if err != nil {
			return fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := io.Copy(part, f); err != nil {
			return fmt.Errorf("failed to copy %s: %w", file.Path, err)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	body, err := c.MakeRequest(ctx, http.MethodPost, endpoint, &buf, writer.FormDataContentType(), opts...)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decode(body, out)
}

// QueryString encodes params, dropping empty values, with a leading "?" when non-empty
func QueryString(params map[string]string) string {
	q := url.Values{}
	for key, value := range params {
		if value != "" {
			q.Set(key, value)
		}
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func decode(body []byte, out interface{}) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}
	return nil
}

// extractDetail reads the backend's error detail, which is either a string or
// a list of validation entries carrying "msg" fields.
func extractDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(envelope.Detail, &text); err == nil {
		return text
	}

	var entries []struct {
		Loc []interface{} `json:"loc"`
		Msg string        `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &entries); err == nil {
		msgs := make([]string, 0, len(entries))
		for _, entry := range entries {
			if entry.Msg == "" {
				continue
			}
			if len(entry.Loc) > 0 {
				msgs = append(msgs, fmt.Sprintf("%v: %s", entry.Loc[len(entry.Loc)-1], entry.Msg))
				continue
			}
			msgs = append(msgs, entry.Msg)
		}
		return strings.Join(msgs, "; ")
	}

	return string(envelope.Detail)
}
