package remote_test

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
	"github.com/MKhiriev/vetfinder/internal/remote"
)

func newTestGateway(t *testing.T, countries []string) (remote.Gateway, *mock.MockDocumentStore) {
	t.Helper()

	ctrl := gomock.NewController(t)
	store := mock.NewMockDocumentStore(ctrl)

	return remote.NewGateway(store, countries, logger.Nop()), store
}

func TestGateway_ListProviders_FiltersAndSorts(t *testing.T) {
	ctx := context.Background()
	gw, store := newTestGateway(t, []string{"TH", "PH"})

	store.EXPECT().ListCollection(ctx, "providers").Return([]remote.Document{
		{ID: "p3", Data: map[string]any{"name": "St. Luke's", "country": "Philippines"}},
		{ID: "p1", Data: map[string]any{"name": "Bangkok Hospital", "country": "TH"}},
		{ID: "p2", Data: map[string]any{"name": "Seoul Hospital", "country": "KR"}},
		{ID: "p4", Data: map[string]any{"country": "TH"}}, // nameless, skipped
	}, nil)

	providers, err := gw.ListProviders(ctx)
	require.NoError(t, err)

	require.Len(t, providers, 2)
	assert.Equal(t, "Bangkok Hospital", providers[0].Name)
	assert.Equal(t, "St. Luke's", providers[1].Name)
}

func TestGateway_ListProviders_StoreError(t *testing.T) {
	ctx := context.Background()
	gw, store := newTestGateway(t, nil)

	store.EXPECT().ListCollection(ctx, "providers").Return(nil, errors.New("network down"))

	_, err := gw.ListProviders(ctx)
	require.Error(t, err)
}

func TestGateway_GetProvider_NormalizesLegacyFields(t *testing.T) {
	ctx := context.Background()
	gw, store := newTestGateway(t, []string{"TH"})

	store.EXPECT().GetDocument(ctx, "providers/p9").Return(map[string]any{
		"name":          "Clinic",
		"country":       "KR", // direct lookups bypass the country filter
		"googleMapsUrl": "https://maps.app.goo.gl/legacy",
		"mapsUrl":       "https://maps.app.goo.gl/new",
	}, nil)

	provider, err := gw.GetProvider(ctx, "p9")
	require.NoError(t, err)

	assert.Equal(t, "p9", provider.ID)
	assert.Equal(t, "https://maps.app.goo.gl/legacy", provider.MapsURL)
}

func TestGateway_GetProvider_NotFound(t *testing.T) {
	ctx := context.Background()
	gw, store := newTestGateway(t, nil)

	store.EXPECT().GetDocument(ctx, "providers/absent").Return(nil, remote.ErrDocumentNotFound)

	_, err := gw.GetProvider(ctx, "absent")
	require.ErrorIs(t, err, remote.ErrDocumentNotFound)
}

func TestGateway_UpdateProvider_StripsIDField(t *testing.T) {
	ctx := context.Background()
	gw, store := newTestGateway(t, nil)

	store.EXPECT().
		SetDocument(ctx, "providers/p1", map[string]any{"phone": "+66-1"}, true).
		Return(nil)

	err := gw.UpdateProvider(ctx, "p1", map[string]any{"id": "evil", "phone": "+66-1"})
	require.NoError(t, err)
}

func TestGateway_UpdateProvider_EmptyPatchIsNoop(t *testing.T) {
	gw, _ := newTestGateway(t, nil)

	err := gw.UpdateProvider(context.Background(), "p1", map[string]any{"id": "only"})
	require.NoError(t, err)
}

func TestGateway_ListFavorites_ParsesTimestamps(t *testing.T) {
	ctx := context.Background()
	gw, store := newTestGateway(t, nil)

	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store.EXPECT().ListCollection(ctx, "users/u1/favorites").Return([]remote.Document{
		{ID: "p2", Data: map[string]any{"createdAt": created.Format(time.RFC3339Nano)}},
		{ID: "p1", Data: map[string]any{"createdAt": created}},
		{ID: "p3", Data: map[string]any{}},
	}, nil)

	favorites, err := gw.ListFavorites(ctx, "u1")
	require.NoError(t, err)

	require.Len(t, favorites, 3)
	assert.Equal(t, "p1", favorites[0].ProviderID)
	assert.True(t, created.Equal(favorites[0].CreatedAt))
	assert.True(t, created.Equal(favorites[1].CreatedAt))
	assert.True(t, favorites[2].CreatedAt.IsZero())
}

func TestGateway_AddFavorite_UsesServerTimestamp(t *testing.T) {
	ctx := context.Background()
	gw, store := newTestGateway(t, nil)

	store.EXPECT().
		SetDocument(ctx, "users/u1/favorites/p5", map[string]any{"createdAt": remote.ServerTimestamp}, true).
		Return(nil)

	require.NoError(t, gw.AddFavorite(ctx, "u1", "p5"))
}

func TestGateway_RemoveFavorite(t *testing.T) {
	ctx := context.Background()
	gw, store := newTestGateway(t, nil)

	store.EXPECT().DeleteDocument(ctx, "users/u1/favorites/p5").Return(nil)

	require.NoError(t, gw.RemoveFavorite(ctx, "u1", "p5"))
}
