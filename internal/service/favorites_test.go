package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/vetfinder/internal/logger"
	"github.com/MKhiriev/vetfinder/internal/mock"
	"github.com/MKhiriev/vetfinder/models"
)

// staticAuth is an AuthService stub returning a fixed session.
type staticAuth struct {
	session models.Session
}

func (a *staticAuth) Session(context.Context) models.Session { return a.session }
func (a *staticAuth) Initializing(context.Context) bool      { return false }
func (a *staticAuth) Restore(context.Context)                {}
func (a *staticAuth) SignIn(context.Context) (models.Session, error) {
	return a.session, nil
}
func (a *staticAuth) SignOut(context.Context) error         { return nil }
func (a *staticAuth) Subscribe(func(models.Session)) func() { return func() {} }

func newTestFavoritesSvc(t *testing.T, session models.Session) (FavoritesService, *mock.MockGateway) {
	t.Helper()

	ctrl := gomock.NewController(t)
	gateway := mock.NewMockGateway(ctrl)

	svc := NewFavoritesService(gateway, &staticAuth{session: session}, logger.Nop())
	return svc, gateway
}

func signedIn() models.Session {
	return models.Session{UID: "u1", Anonymous: true}
}

func TestFavoritesService_ToggleAddsThenRemoves(t *testing.T) {
	ctx := context.Background()
	svc, gateway := newTestFavoritesSvc(t, signedIn())

	gateway.EXPECT().AddFavorite(ctx, "u1", "p1").Return(nil)
	gateway.EXPECT().ListFavorites(ctx, "u1").Return([]models.Favorite{
		{ProviderID: "p1", CreatedAt: time.Now()},
	}, nil)
	require.NoError(t, svc.Toggle(ctx, "p1"))
	assert.True(t, svc.IsFavorite(ctx, "p1"))
	assert.Equal(t, []string{"p1"}, svc.Favorites(ctx))

	gateway.EXPECT().RemoveFavorite(ctx, "u1", "p1").Return(nil)
	gateway.EXPECT().ListFavorites(ctx, "u1").Return(nil, nil)
	require.NoError(t, svc.Toggle(ctx, "p1"))
	assert.False(t, svc.IsFavorite(ctx, "p1"))
	assert.Empty(t, svc.Favorites(ctx))
}

func TestFavoritesService_ToggleRollsBackOnAddFailure(t *testing.T) {
	ctx := context.Background()
	svc, gateway := newTestFavoritesSvc(t, signedIn())

	// Both the write and the trailing reconcile fail, so the assertion
	// sees the rolled-back snapshot rather than a refreshed cache.
	gateway.EXPECT().AddFavorite(ctx, "u1", "p1").Return(errors.New("network down"))
	gateway.EXPECT().ListFavorites(ctx, "u1").Return(nil, errors.New("network down"))

	err := svc.Toggle(ctx, "p1")
	require.Error(t, err)
	assert.False(t, svc.IsFavorite(ctx, "p1"))
}

func TestFavoritesService_ToggleRollsBackOnRemoveFailure(t *testing.T) {
	ctx := context.Background()
	svc, gateway := newTestFavoritesSvc(t, signedIn())

	gateway.EXPECT().AddFavorite(ctx, "u1", "p1").Return(nil)
	gateway.EXPECT().ListFavorites(ctx, "u1").Return([]models.Favorite{
		{ProviderID: "p1", CreatedAt: time.Now()},
	}, nil)
	require.NoError(t, svc.Toggle(ctx, "p1"))

	gateway.EXPECT().RemoveFavorite(ctx, "u1", "p1").Return(errors.New("network down"))
	gateway.EXPECT().ListFavorites(ctx, "u1").Return(nil, errors.New("network down"))

	err := svc.Toggle(ctx, "p1")
	require.Error(t, err)
	assert.True(t, svc.IsFavorite(ctx, "p1"))
}

func TestFavoritesService_ToggleReconcilesConcurrentRemoteChanges(t *testing.T) {
	ctx := context.Background()
	svc, gateway := newTestFavoritesSvc(t, signedIn())

	// Another device favorited p9 in the meantime; the post-toggle fetch
	// folds it into the cache.
	gateway.EXPECT().AddFavorite(ctx, "u1", "p1").Return(nil)
	gateway.EXPECT().ListFavorites(ctx, "u1").Return([]models.Favorite{
		{ProviderID: "p1", CreatedAt: time.Now()},
		{ProviderID: "p9", CreatedAt: time.Now()},
	}, nil)

	require.NoError(t, svc.Toggle(ctx, "p1"))
	assert.Equal(t, []string{"p1", "p9"}, svc.Favorites(ctx))
}

func TestFavoritesService_ToggleRequiresSession(t *testing.T) {
	svc, _ := newTestFavoritesSvc(t, models.Session{})

	err := svc.Toggle(context.Background(), "p1")
	require.ErrorIs(t, err, ErrNotSignedIn)
}

func TestFavoritesService_RefreshReplacesCache(t *testing.T) {
	ctx := context.Background()
	svc, gateway := newTestFavoritesSvc(t, signedIn())

	gateway.EXPECT().AddFavorite(ctx, "u1", "stale").Return(nil)
	gateway.EXPECT().ListFavorites(ctx, "u1").Return([]models.Favorite{
		{ProviderID: "stale", CreatedAt: time.Now()},
	}, nil)
	require.NoError(t, svc.Toggle(ctx, "stale"))

	gateway.EXPECT().ListFavorites(ctx, "u1").Return([]models.Favorite{
		{ProviderID: "p2", CreatedAt: time.Now()},
		{ProviderID: "p1", CreatedAt: time.Now()},
	}, nil)

	require.NoError(t, svc.Refresh(ctx))
	assert.Equal(t, []string{"p1", "p2"}, svc.Favorites(ctx))
	assert.False(t, svc.IsFavorite(ctx, "stale"))
}

func TestFavoritesService_RefreshRequiresSession(t *testing.T) {
	svc, _ := newTestFavoritesSvc(t, models.Session{})

	err := svc.Refresh(context.Background())
	require.ErrorIs(t, err, ErrNotSignedIn)
}

func TestFavoritesService_RefreshErrorKeepsCache(t *testing.T) {
	ctx := context.Background()
	svc, gateway := newTestFavoritesSvc(t, signedIn())

	gateway.EXPECT().AddFavorite(ctx, "u1", "p1").Return(nil)
	gateway.EXPECT().ListFavorites(ctx, "u1").Return([]models.Favorite{
		{ProviderID: "p1", CreatedAt: time.Now()},
	}, nil)
	require.NoError(t, svc.Toggle(ctx, "p1"))

	gateway.EXPECT().ListFavorites(ctx, "u1").Return(nil, errors.New("network down"))

	require.Error(t, svc.Refresh(ctx))
	assert.True(t, svc.IsFavorite(ctx, "p1"))
}

func TestFavoritesService_Invalidate(t *testing.T) {
	ctx := context.Background()
	svc, gateway := newTestFavoritesSvc(t, signedIn())

	gateway.EXPECT().AddFavorite(ctx, "u1", "p1").Return(nil)
	gateway.EXPECT().ListFavorites(ctx, "u1").Return([]models.Favorite{
		{ProviderID: "p1", CreatedAt: time.Now()},
	}, nil)
	require.NoError(t, svc.Toggle(ctx, "p1"))

	svc.Invalidate(ctx)
	assert.Empty(t, svc.Favorites(ctx))
}
