// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package remote

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// Wire encodings of the field-value sentinels understood by the emulator.
const (
	WireServerTimestamp = "__SERVER_TIMESTAMP__"
	WireDeleteField     = "__DELETE_FIELD__"
)

// documentResponse is the emulator's shape for a single document.
type documentResponse struct {
	ID   string         `json:"id"`
	Data map[string]any `json:"data"`
}

// collectionResponse is the emulator's shape for a collection listing.
type collectionResponse struct {
	Documents []documentResponse `json:"documents"`
}

// HTTPStore is the [DocumentStore] backed by the local emulator server.
// Calls carry the bearer token obtained from the emulator's anonymous
// sign-in endpoint; SetToken swaps it safely from any goroutine.
type HTTPStore struct {
	client *resty.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPStore builds an [HTTPStore] talking to the emulator at baseURL.
// Every request is bounded by timeout.
func NewHTTPStore(baseURL string, timeout time.Duration) *HTTPStore {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	return &HTTPStore{client: client}
}

// SetToken installs the bearer token used for subsequent requests.
func (h *HTTPStore) SetToken(token string) {
	h.mu.Lock()
	h.token = token
	h.mu.Unlock()
}

func (h *HTTPStore) bearer() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *HTTPStore) GetDocument(ctx context.Context, path string) (map[string]any, error) {
	result := &documentResponse{}
	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(h.bearer()).
		SetResult(result).
		Get("/api/data/" + path)
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", path, err)
	}
	if err := mapHTTPError(resp.StatusCode()); err != nil {
		return nil, fmt.Errorf("get document %s: %w", path, err)
	}

	return result.Data, nil
}

func (h *HTTPStore) ListCollection(ctx context.Context, path string) ([]Document, error) {
	result := &collectionResponse{}
	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(h.bearer()).
		SetResult(result).
		Get("/api/data/" + path)
	if err != nil {
		return nil, fmt.Errorf("list collection %s: %w", path, err)
	}
	if err := mapHTTPError(resp.StatusCode()); err != nil {
		return nil, fmt.Errorf("list collection %s: %w", path, err)
	}

	documents := make([]Document, 0, len(result.Documents))
	for _, doc := range result.Documents {
		documents = append(documents, Document{ID: doc.ID, Data: doc.Data})
	}

	return documents, nil
}

func (h *HTTPStore) SetDocument(ctx context.Context, path string, data map[string]any, merge bool) error {
	request := h.client.R().
		SetContext(ctx).
		SetAuthToken(h.bearer()).
		SetBody(encodeWireSentinels(data))
	if merge {
		request.SetQueryParam("merge", "true")
	}

	resp, err := request.Put("/api/data/" + path)
	if err != nil {
		return fmt.Errorf("set document %s: %w", path, err)
	}
	if err := mapHTTPError(resp.StatusCode()); err != nil {
		return fmt.Errorf("set document %s: %w", path, err)
	}

	return nil
}

func (h *HTTPStore) DeleteDocument(ctx context.Context, path string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(h.bearer()).
		Delete("/api/data/" + path)
	if err != nil {
		return fmt.Errorf("delete document %s: %w", path, err)
	}
	if err := mapHTTPError(resp.StatusCode()); err != nil {
		return fmt.Errorf("delete document %s: %w", path, err)
	}

	return nil
}

func (h *HTTPStore) Close() error {
	return nil
}

// encodeWireSentinels swaps the backend-neutral sentinels for their JSON
// wire tokens without mutating the input map.
func encodeWireSentinels(data map[string]any) map[string]any {
	encoded := make(map[string]any, len(data))
	for key, value := range data {
		switch value {
		case ServerTimestamp:
			encoded[key] = WireServerTimestamp
		case Delete:
			encoded[key] = WireDeleteField
		default:
			if nested, ok := value.(map[string]any); ok {
				encoded[key] = encodeWireSentinels(nested)
				continue
			}
			encoded[key] = value
		}
	}
	return encoded
}

func mapHTTPError(statusCode int) error {
	switch {
	case statusCode < 300:
		return nil
	case statusCode == http.StatusNotFound:
		return ErrDocumentNotFound
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return ErrUnauthorized
	case statusCode == http.StatusBadRequest:
		return ErrBadDocumentPath
	default:
		return fmt.Errorf("unexpected status code %d", statusCode)
	}
}
