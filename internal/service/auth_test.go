package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/vetfinder/internal/logger"
	"github.com/MKhiriev/vetfinder/internal/mock"
	"github.com/MKhiriev/vetfinder/models"
)

func newTestAuthSvc(t *testing.T) (AuthService, *mock.MockAuthBackend, *memStore) {
	t.Helper()

	ctrl := gomock.NewController(t)
	backend := mock.NewMockAuthBackend(ctrl)
	store := newMemStore()

	return NewAuthService(backend, store, logger.Nop()), backend, store
}

func TestAuthService_SignIn_PersistsAndNotifies(t *testing.T) {
	ctx := context.Background()
	svc, backend, store := newTestAuthSvc(t)

	var observed []models.Session
	svc.Subscribe(func(s models.Session) { observed = append(observed, s) })

	backend.EXPECT().
		SignInAnonymously(ctx).
		Return(models.Session{UID: "u1", Anonymous: true}, nil)

	session, err := svc.SignIn(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", session.UID)
	assert.True(t, session.Anonymous)

	assert.Equal(t, session, svc.Session(ctx))
	assert.Contains(t, store.values, "session")
	require.Len(t, observed, 1)
	assert.Equal(t, session, observed[0])
}

func TestAuthService_SignIn_BackendError(t *testing.T) {
	ctx := context.Background()
	svc, backend, store := newTestAuthSvc(t)

	backend.EXPECT().SignInAnonymously(ctx).Return(models.Session{}, errors.New("unreachable"))

	_, err := svc.SignIn(ctx)
	require.Error(t, err)
	assert.False(t, svc.Session(ctx).SignedIn())
	assert.NotContains(t, store.values, "session")
}

func TestAuthService_SignOut_ClearsStateEvenOnBackendError(t *testing.T) {
	ctx := context.Background()
	svc, backend, store := newTestAuthSvc(t)

	backend.EXPECT().
		SignInAnonymously(ctx).
		Return(models.Session{UID: "u1", Anonymous: true}, nil)
	_, err := svc.SignIn(ctx)
	require.NoError(t, err)

	var observed []models.Session
	svc.Subscribe(func(s models.Session) { observed = append(observed, s) })

	backend.EXPECT().SignOut(ctx, gomock.Any()).Return(errors.New("unreachable"))

	err = svc.SignOut(ctx)
	require.Error(t, err)

	assert.False(t, svc.Session(ctx).SignedIn())
	assert.NotContains(t, store.values, "session")
	require.Len(t, observed, 1)
	assert.False(t, observed[0].SignedIn())
}

func TestAuthService_Restore_LoadsPersistedSession(t *testing.T) {
	ctx := context.Background()
	svc, backend, store := newTestAuthSvc(t)

	store.values["session"] = `{"uid":"u9","anonymous":true,"token":"t9"}`
	backend.EXPECT().
		Resume(ctx, models.Session{UID: "u9", Anonymous: true, Token: "t9"}).
		Return(nil)

	var observed []models.Session
	svc.Subscribe(func(s models.Session) { observed = append(observed, s) })

	svc.Restore(ctx)

	assert.Equal(t, "u9", svc.Session(ctx).UID)
	require.Len(t, observed, 1)
}

func TestAuthService_Restore_DiscardsSessionBackendCannotResume(t *testing.T) {
	ctx := context.Background()
	svc, backend, store := newTestAuthSvc(t)

	store.values["session"] = `{"uid":"u9","anonymous":true}`
	backend.EXPECT().Resume(ctx, gomock.Any()).Return(errors.New("no credentials"))

	svc.Restore(ctx)

	assert.False(t, svc.Session(ctx).SignedIn())
	assert.NotContains(t, store.values, "session")
}

func TestAuthService_Initializing_ClearsAfterRestore(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuthSvc(t)

	assert.True(t, svc.Initializing(ctx))

	svc.Restore(ctx)

	assert.False(t, svc.Initializing(ctx))
	assert.False(t, svc.Session(ctx).SignedIn())
}

func TestAuthService_Restore_DiscardsCorruptSession(t *testing.T) {
	ctx := context.Background()
	svc, _, store := newTestAuthSvc(t)

	store.values["session"] = "{broken"

	svc.Restore(ctx)

	assert.False(t, svc.Session(ctx).SignedIn())
	assert.NotContains(t, store.values, "session")
}

func TestAuthService_Unsubscribe(t *testing.T) {
	ctx := context.Background()
	svc, backend, _ := newTestAuthSvc(t)

	calls := 0
	unsubscribe := svc.Subscribe(func(models.Session) { calls++ })
	unsubscribe()

	backend.EXPECT().
		SignInAnonymously(ctx).
		Return(models.Session{UID: "u1", Anonymous: true}, nil)

	_, err := svc.SignIn(ctx)
	require.NoError(t, err)
	assert.Zero(t, calls)
}
