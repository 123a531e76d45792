// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package remote

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// firestoreStore is the [DocumentStore] backed by a real Firebase project.
type firestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore connects to the Firestore database of the given
// project. When credentialsFile is empty, application default credentials
// are used.
func NewFirestoreStore(ctx context.Context, projectID, credentialsFile string) (DocumentStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}

	return &firestoreStore{client: client}, nil
}

func (f *firestoreStore) GetDocument(ctx context.Context, path string) (map[string]any, error) {
	snapshot, err := f.client.Doc(path).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", path, err)
	}

	return snapshot.Data(), nil
}

func (f *firestoreStore) ListCollection(ctx context.Context, path string) ([]Document, error) {
	iter := f.client.Collection(path).Documents(ctx)
	defer iter.Stop()

	var documents []Document
	for {
		snapshot, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate collection %s: %w", path, err)
		}
		documents = append(documents, Document{ID: snapshot.Ref.ID, Data: snapshot.Data()})
	}

	return documents, nil
}

func (f *firestoreStore) SetDocument(ctx context.Context, path string, data map[string]any, merge bool) error {
	resolved := resolveFirestoreSentinels(data)

	var err error
	if merge {
		_, err = f.client.Doc(path).Set(ctx, resolved, firestore.MergeAll)
	} else {
		_, err = f.client.Doc(path).Set(ctx, resolved)
	}
	if err != nil {
		return fmt.Errorf("set document %s: %w", path, err)
	}

	return nil
}

func (f *firestoreStore) DeleteDocument(ctx context.Context, path string) error {
	if _, err := f.client.Doc(path).Delete(ctx); err != nil {
		return fmt.Errorf("delete document %s: %w", path, err)
	}
	return nil
}

func (f *firestoreStore) Close() error {
	return f.client.Close()
}

// resolveFirestoreSentinels maps the backend-neutral sentinels onto the
// firestore SDK's field values without mutating the input.
func resolveFirestoreSentinels(data map[string]any) map[string]any {
	resolved := make(map[string]any, len(data))
	for key, value := range data {
		switch value {
		case ServerTimestamp:
			resolved[key] = firestore.ServerTimestamp
		case Delete:
			resolved[key] = firestore.Delete
		default:
			if nested, ok := value.(map[string]any); ok {
				resolved[key] = resolveFirestoreSentinels(nested)
				continue
			}
			resolved[key] = value
		}
	}
	return resolved
}
