package viewer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/srazzak/tutorsite/internal/contenttree"
)

// FetchError is a non-200 answer from the conversion endpoint.
type FetchError struct {
	Status  int
	Message string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("conversion endpoint returned %d: %s", e.Status, e.Message)
}

// HTTPFetcher loads documents from a running server's conversion endpoints.
type HTTPFetcher struct {
	BaseURL  string
	Registry *contenttree.Registry
	Client   *http.Client
}

// NewHTTPFetcher returns a fetcher for the server at baseURL.
func NewHTTPFetcher(baseURL string, reg *contenttree.Registry) *HTTPFetcher {
	return &HTTPFetcher{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Registry: reg,
		Client:   &http.Client{Timeout: 60 * time.Second},
	}
}

type convertResponse struct {
	HTML  string `json:"html"`
	Error string `json:"error"`
}

// Fetch posts the document request to the route of its tree.
func (f *HTTPFetcher) Fetch(ctx context.Context, doc Document) (string, error) {
	tree, ok := f.Registry.Get(doc.Kind)
	if !ok {
		return "", fmt.Errorf("unknown content tree %q", doc.Kind)
	}

	body, err := json.Marshal(doc.Request())
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.BaseURL+tree.Route, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("posting to %s: %w", tree.Route, err)
	}
	defer resp.Body.Close()

	var out convertResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{Status: resp.StatusCode, Message: out.Error}
	}
	return out.HTML, nil
}
