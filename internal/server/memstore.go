// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server implements the local document-store emulator: an HTTP
// server with Firestore-like path semantics, anonymous JWT auth, and an
// in-memory document tree. It exists so the client can be developed and
// tested without a real Firebase project.
package server

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/vetfinder/internal/remote"
)

// MemStore is the emulator's in-memory document tree. Paths follow the
// Firestore convention: an even number of segments names a document, an
// odd number names a collection.
type MemStore struct {
	mu   sync.RWMutex
	data map[string]map[string]any

	// now is swappable so tests get deterministic server timestamps.
	now func() time.Time
}

// NewMemStore returns an empty [MemStore].
func NewMemStore() *MemStore {
	return &MemStore{
		data: map[string]map[string]any{},
		now:  time.Now,
	}
}

// splitPath validates and splits a document-tree path. Empty segments and
// an empty path are rejected.
func splitPath(path string) ([]string, error) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil, remote.ErrBadDocumentPath
	}

	segments := strings.Split(trimmed, "/")
	for _, segment := range segments {
		if segment == "" {
			return nil, remote.ErrBadDocumentPath
		}
	}

	return segments, nil
}

// GetDoc returns a copy of the document at path.
func (m *MemStore) GetDoc(path string) (map[string]any, error) {
	segments, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	if len(segments)%2 != 0 {
		return nil, remote.ErrBadDocumentPath
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	fields, ok := m.data[strings.Join(segments, "/")]
	if !ok {
		return nil, remote.ErrDocumentNotFound
	}

	return copyFields(fields), nil
}

// SetDoc writes data to the document at path, resolving the wire
// sentinels: the server-timestamp token becomes the current server clock
// in RFC 3339 form, the delete-field token removes the field.
func (m *MemStore) SetDoc(path string, data map[string]any, merge bool) error {
	segments, err := splitPath(path)
	if err != nil {
		return err
	}
	if len(segments)%2 != 0 {
		return remote.ErrBadDocumentPath
	}
	key := strings.Join(segments, "/")

	m.mu.Lock()
	defer m.mu.Unlock()

	fields := m.data[key]
	if fields == nil || !merge {
		fields = map[string]any{}
	}

	for name, value := range data {
		switch value {
		case remote.WireServerTimestamp:
			fields[name] = m.now().UTC().Format(time.RFC3339Nano)
		case remote.WireDeleteField:
			delete(fields, name)
		default:
			fields[name] = value
		}
	}

	m.data[key] = fields
	return nil
}

// DeleteDoc removes the document at path. Absent documents are ignored.
func (m *MemStore) DeleteDoc(path string) error {
	segments, err := splitPath(path)
	if err != nil {
		return err
	}
	if len(segments)%2 != 0 {
		return remote.ErrBadDocumentPath
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, strings.Join(segments, "/"))
	return nil
}

// ListDocs returns every document directly inside the collection at path,
// sorted by id.
func (m *MemStore) ListDocs(path string) ([]remote.Document, error) {
	segments, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	if len(segments)%2 != 1 {
		return nil, remote.ErrBadDocumentPath
	}
	prefix := strings.Join(segments, "/") + "/"

	m.mu.RLock()
	defer m.mu.RUnlock()

	var documents []remote.Document
	for key, fields := range m.data {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		id := key[len(prefix):]
		if strings.Contains(id, "/") {
			// Document of a nested subcollection, not of this collection.
			continue
		}
		documents = append(documents, remote.Document{ID: id, Data: copyFields(fields)})
	}

	sort.Slice(documents, func(i, j int) bool {
		return documents[i].ID < documents[j].ID
	})

	return documents, nil
}

func copyFields(fields map[string]any) map[string]any {
	copied := make(map[string]any, len(fields))
	for name, value := range fields {
		copied[name] = value
	}
	return copied
}
