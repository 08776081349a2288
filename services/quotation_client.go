package services

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

	"github.com/google/uuid"
)

// QuotationAPI is the remote quotation store.
type QuotationAPI interface {
	List(ctx context.Context) ([]Quotation, error)
	Update(ctx context.Context, key string, q Quotation) (Quotation, error)
}

// Client talks to the quotation API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for the API rooted at baseURL, for example
// "http://localhost:5000/api".
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type listEnvelope struct {
	Success bool        `json:"success"`
	Data    []Quotation `json:"data"`
	Message string      `json:"message,omitempty"`
}

type updateEnvelope struct {
	Success *bool     `json:"success,omitempty"`
	Data    Quotation `json:"data"`
	Message string    `json:"message,omitempty"`
}

type errorEnvelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// List fetches every quotation. A response without success:true is an
// *APIError even when the status is 2xx.
func (c *Client) List(ctx context.Context) ([]Quotation, error) {
	resp, err := c.do(ctx, http.MethodGet, "/quotations", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, readAPIError(resp)
	}

	var env listEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode quotation list: %w", err)
	}
	if !env.Success {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	if env.Data == nil {
		env.Data = []Quotation{}
	}
	return env.Data, nil
}

// Update replaces the quotation stored under key with q and returns the
// server's copy.
func (c *Client) Update(ctx context.Context, key string, q Quotation) (Quotation, error) {
	body, err := json.Marshal(q)
	if err != nil {
		return Quotation{}, fmt.Errorf("encode quotation %s: %w", q.ID, err)
	}

	resp, err := c.do(ctx, http.MethodPut, "/quotations/"+url.PathEscape(key), body)
	if err != nil {
		return Quotation{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Quotation{}, readAPIError(resp)
	}

	var env updateEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return Quotation{}, fmt.Errorf("decode updated quotation: %w", err)
	}
	if env.Success != nil && !*env.Success {
		return Quotation{}, &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	if env.Data.ID == "" {
		// Some deployments answer with an empty body; keep what was sent.
		return q, nil
	}
	return env.Data, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

func readAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var env errorEnvelope
	msg := ""
	if json.Unmarshal(raw, &env) == nil {
		msg = env.Message
		if msg == "" {
			msg = env.Error
		}
	}
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
