package storage

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

	"github.com/eshaffer321/orderparser/internal/domain/orders"
)

// RemoteStore talks to the persistence endpoint of a running server.
type RemoteStore struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check that RemoteStore implements Repository
var _ Repository = (*RemoteStore)(nil)

// NewRemoteStore creates a client for the server at baseURL
// (e.g. "http://localhost:3001").
func NewRemoteStore(baseURL string) *RemoteStore {
	return &RemoteStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Close does nothing for the HTTP client
func (s *RemoteStore) Close() error {
	return nil
}

// List handles GET /api/history.
func (s *RemoteStore) List(ctx context.Context) ([]orders.HistoryItem, error) {
	var history []orders.HistoryItem
	if err := s.do(ctx, http.MethodGet, "/api/history", nil, &history); err != nil {
		return nil, err
	}
	if history == nil {
		history = []orders.HistoryItem{}
	}
	return history, nil
}

// Get handles GET /api/history/{id}.
func (s *RemoteStore) Get(ctx context.Context, id string) (*orders.HistoryItem, error) {
	var item orders.HistoryItem
	if err := s.do(ctx, http.MethodGet, "/api/history/"+url.PathEscape(id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Save handles POST /api/history.
func (s *RemoteStore) Save(ctx context.Context, item orders.HistoryItem) error {
	if item.ID == "" {
		return ErrInvalidItem
	}
	return s.do(ctx, http.MethodPost, "/api/history", item, nil)
}

// Update handles PUT /api/history/{id}.
func (s *RemoteStore) Update(ctx context.Context, id string, result orders.ParsingResult) error {
	body := struct {
		Result orders.ParsingResult `json:"result"`
	}{Result: result}
	return s.do(ctx, http.MethodPut, "/api/history/"+url.PathEscape(id), body, nil)
}

func (s *RemoteStore) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("server unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("server error: %d %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
