package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tosika/pkg/listquery"
)

// APIError is a non-2xx reply from the backend, surfaced verbatim.
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
	Code       string `json:"code"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Client is an SDK over the platform's HTTP surface. Authenticated calls
// attach the session's bearer token; public calls never do.
type Client struct {
	baseURL    string
	session    *Session
	httpClient *http.Client
}

func New(baseURL string, session *Session) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: session,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *Client) Session() *Session {
	return c.session
}

// Get issues a public GET and decodes the reply into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	body, err := c.do(ctx, http.MethodGet, path, query, nil, false)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// GetAuthed issues an authenticated GET and decodes the reply into out.
func (c *Client) GetAuthed(ctx context.Context, path string, query url.Values, out interface{}) error {
	body, err := c.do(ctx, http.MethodGet, path, query, nil, true)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// Post issues a public POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, in, out interface{}) error {
	body, err := c.do(ctx, http.MethodPost, path, nil, in, false)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// PostAuthed issues an authenticated POST with a JSON body.
func (c *Client) PostAuthed(ctx context.Context, path string, in, out interface{}) error {
	body, err := c.do(ctx, http.MethodPost, path, nil, in, true)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// PatchAuthed issues an authenticated PATCH with a JSON body.
func (c *Client) PatchAuthed(ctx context.Context, path string, in, out interface{}) error {
	body, err := c.do(ctx, http.MethodPatch, path, nil, in, true)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// DeleteAuthed issues an authenticated DELETE.
func (c *Client) DeleteAuthed(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil, true)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in interface{}, authed bool) ([]byte, error) {
	var token string
	if authed {
		// Expired sessions fail locally, no request is issued
		var err error
		token, err = c.session.Token()
		if err != nil {
			return nil, err
		}
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.session.Clear()
		return nil, ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return nil, apiErr
	}

	return body, nil
}

func decode(body []byte, out interface{}) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

type listEnvelope struct {
	Data json.RawMessage `json:"data"`
	Meta *listquery.Meta `json:"meta"`
}

// DecodeList normalizes the two shapes list endpoints reply with: a bare
// JSON array, or an envelope of {data, meta}. For a bare array the meta is
// synthesized from the item count.
func DecodeList[T any](body []byte) ([]T, listquery.Meta, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, listquery.Meta{}, err
		}
		limit := len(items)
		if limit == 0 {
			limit = listquery.DefaultLimit
		}
		return items, listquery.Meta{
			Total:      int64(len(items)),
			TotalPages: 1,
			Page:       1,
			Limit:      limit,
		}, nil
	}

	var envelope listEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, listquery.Meta{}, err
	}

	var items []T
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &items); err != nil {
			return nil, listquery.Meta{}, err
		}
	}

	meta := listquery.Meta{}
	if envelope.Meta != nil {
		meta = *envelope.Meta
	}
	return items, meta, nil
}

// List issues a GET against a list endpoint and decodes either envelope
// shape. Authed controls whether the session token is attached.
func List[T any](ctx context.Context, c *Client, path string, query url.Values, authed bool) ([]T, listquery.Meta, error) {
	body, err := c.do(ctx, http.MethodGet, path, query, nil, authed)
	if err != nil {
		return nil, listquery.Meta{}, err
	}
	return DecodeList[T](body)
}
