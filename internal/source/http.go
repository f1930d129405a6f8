// Package source implements the external job-feed collaborator: opaque raw
// records over HTTP, with failure tolerance owned by the transport layer.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/OctavioMinteguia/jobhub/internal/model"
)

// Ensure HTTPSource implements model.Source.
var _ model.Source = (*HTTPSource)(nil)

// StatusError wraps a non-200 response so retry logic can inspect it.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// HTTPSource fetches raw job records from an external feed URL.
// Feeds disagree even on the response envelope: some return a bare JSON
// array, others wrap it as {"status": ..., "data": [...]}.
type HTTPSource struct {
	name   string
	url    string
	client *http.Client
}

// NewHTTPSource creates a source for the named feed.
func NewHTTPSource(name, url string, client *http.Client) *HTTPSource {
	return &HTTPSource{name: name, url: url, client: client}
}

// Name returns the source name, used as the ID namespace for its records.
func (s *HTTPSource) Name() string {
	return s.name
}

// FetchRaw retrieves the feed and returns its records as opaque mappings.
func (s *HTTPSource) FetchRaw(ctx context.Context) ([]map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch from %s: %w", s.name, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch from %s: %w", s.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch from %s: %w", s.name, &StatusError{StatusCode: resp.StatusCode})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch from %s: %w", s.name, err)
	}

	records, err := decodeRecords(body)
	if err != nil {
		return nil, fmt.Errorf("fetch from %s: %w", s.name, err)
	}
	return records, nil
}

// IsAvailable does a fast liveness probe against the feed URL. It is advisory
// only; FetchRaw independently tolerates failure.
func (s *HTTPSource) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return false
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

// decodeRecords accepts either a bare array of records or a wrapped
// {"data": [...]} envelope.
func decodeRecords(body []byte) ([]map[string]any, error) {
	var records []map[string]any
	if err := json.Unmarshal(body, &records); err == nil {
		return records, nil
	}

	var envelope struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding feed body: %w", err)
	}
	return envelope.Data, nil
}
