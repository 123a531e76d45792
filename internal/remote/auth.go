// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package remote

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/MKhiriev/vetfinder/models"
)

// AuthBackend authenticates the device against the remote backend.
//
//go:generate mockgen -source=auth.go -destination=../mock/auth_mock.go -package=mock
type AuthBackend interface {
	// SignInAnonymously establishes a fresh anonymous identity and returns
	// the resulting session.
	SignInAnonymously(ctx context.Context) (models.Session, error)

	// Resume re-installs the credentials of a previously persisted session
	// so document calls work after a restart. It returns an error when the
	// session carries no usable credentials.
	Resume(ctx context.Context, session models.Session) error

	// SignOut discards the identity's credentials.
	SignOut(ctx context.Context, session models.Session) error
}

// firebaseAuthBackend creates anonymous users through the Firebase Admin
// SDK.
type firebaseAuthBackend struct {
	client *auth.Client
}

// NewFirebaseAuthBackend connects to the Firebase Auth service of the
// given project.
func NewFirebaseAuthBackend(ctx context.Context, projectID, credentialsFile string) (AuthBackend, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("create firebase auth client: %w", err)
	}

	return &firebaseAuthBackend{client: client}, nil
}

func (f *firebaseAuthBackend) SignInAnonymously(ctx context.Context) (models.Session, error) {
	user, err := f.client.CreateUser(ctx, &auth.UserToCreate{})
	if err != nil {
		return models.Session{}, fmt.Errorf("create anonymous user: %w", err)
	}

	return models.Session{UID: user.UID, Anonymous: true}, nil
}

func (f *firebaseAuthBackend) Resume(_ context.Context, _ models.Session) error {
	// The Admin SDK authenticates with its own service-account credentials;
	// the restored session only names the identity.
	return nil
}

func (f *firebaseAuthBackend) SignOut(ctx context.Context, session models.Session) error {
	if !session.Anonymous || session.UID == "" {
		return nil
	}

	// Anonymous identities are single-device; deleting the user revokes
	// everything tied to it.
	if err := f.client.DeleteUser(ctx, session.UID); err != nil {
		return fmt.Errorf("delete anonymous user: %w", err)
	}

	return nil
}

// httpAuthBackend signs in against the emulator server and installs the
// returned bearer token into the shared [HTTPStore].
type httpAuthBackend struct {
	store *HTTPStore
}

// NewHTTPAuthBackend builds an [AuthBackend] over the emulator transport.
func NewHTTPAuthBackend(store *HTTPStore) AuthBackend {
	return &httpAuthBackend{store: store}
}

func (h *httpAuthBackend) SignInAnonymously(ctx context.Context) (models.Session, error) {
	result := &struct {
		UID   string `json:"uid"`
		Token string `json:"token"`
	}{}

	resp, err := h.store.client.R().
		SetContext(ctx).
		SetResult(result).
		Post("/api/auth/anonymous")
	if err != nil {
		return models.Session{}, fmt.Errorf("anonymous sign-in: %w", err)
	}
	if err := mapHTTPError(resp.StatusCode()); err != nil {
		return models.Session{}, fmt.Errorf("anonymous sign-in: %w", err)
	}

	h.store.SetToken(result.Token)

	return models.Session{UID: result.UID, Anonymous: true, Token: result.Token}, nil
}

func (h *httpAuthBackend) Resume(_ context.Context, session models.Session) error {
	if session.Token == "" {
		return fmt.Errorf("resume session of %s: %w", session.UID, ErrUnauthorized)
	}

	h.store.SetToken(session.Token)
	return nil
}

func (h *httpAuthBackend) SignOut(context.Context, models.Session) error {
	h.store.SetToken("")
	return nil
}
