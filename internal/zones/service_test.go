package zones_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazardroute/hazardroute/internal/api/models"
	"github.com/hazardroute/hazardroute/internal/zones"
)

func newService() *zones.Service {
	return zones.NewService(zones.NewInMemoryRepository())
}

func validCreateRequest(name string) *models.ZoneCreateRequest {
	return &models.ZoneCreateRequest{
		Name:     name,
		Center:   models.Point{Lat: 34.05, Lon: -118.05},
		RadiusKm: 10,
	}
}

func TestService_Create(t *testing.T) {
	service := newService()
	ctx := context.Background()

	created, err := service.Create(ctx, validCreateRequest("Test Fault Zone"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(created.ID, "hz_"), "zone ID should start with hz_, got %q", created.ID)
	assert.Equal(t, "Test Fault Zone", created.Name)
	assert.Equal(t, 10.0, created.RadiusKm)
	assert.Nil(t, created.Weight)
}

func TestService_Create_ValidationErrors(t *testing.T) {
	service := newService()
	ctx := context.Background()

	badWeight := -1.0

	tests := []struct {
		name      string
		input     *models.ZoneCreateRequest
		wantField string
	}{
		{
			name: "empty name",
			input: &models.ZoneCreateRequest{
				Center:   models.Point{Lat: 34, Lon: -118},
				RadiusKm: 10,
			},
			wantField: "name",
		},
		{
			name: "name too long",
			input: &models.ZoneCreateRequest{
				Name:     strings.Repeat("z", 81),
				Center:   models.Point{Lat: 34, Lon: -118},
				RadiusKm: 10,
			},
			wantField: "name",
		},
		{
			name: "latitude out of range",
			input: &models.ZoneCreateRequest{
				Name:     "Zone",
				Center:   models.Point{Lat: 91, Lon: -118},
				RadiusKm: 10,
			},
			wantField: "center.lat",
		},
		{
			name: "longitude out of range",
			input: &models.ZoneCreateRequest{
				Name:     "Zone",
				Center:   models.Point{Lat: 34, Lon: -181},
				RadiusKm: 10,
			},
			wantField: "center.lon",
		},
		{
			name: "zero radius",
			input: &models.ZoneCreateRequest{
				Name:   "Zone",
				Center: models.Point{Lat: 34, Lon: -118},
			},
			wantField: "radiusKm",
		},
		{
			name: "negative weight",
			input: &models.ZoneCreateRequest{
				Name:     "Zone",
				Center:   models.Point{Lat: 34, Lon: -118},
				RadiusKm: 10,
				Weight:   &badWeight,
			},
			wantField: "weight",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(ctx, tt.input)
			require.Error(t, err)

			var validationErr *zones.ValidationError
			require.ErrorAs(t, err, &validationErr)

			found := false
			for _, fe := range validationErr.Errors {
				if fe.Field == tt.wantField {
					found = true
				}
			}
			assert.True(t, found, "expected a field error on %q, got %+v", tt.wantField, validationErr.Errors)
		})
	}
}

func TestService_Get(t *testing.T) {
	service := newService()
	ctx := context.Background()

	created, err := service.Create(ctx, validCreateRequest("Lookup Zone"))
	require.NoError(t, err)

	got, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Lookup Zone", got.Name)

	_, err = service.Get(ctx, "hz_doesnotexist")
	assert.ErrorIs(t, err, zones.ErrZoneNotFound)
}

func TestService_List_Pagination(t *testing.T) {
	service := newService()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		req := validCreateRequest("Zone " + string(rune('A'+i)))
		_, err := service.Create(ctx, req)
		require.NoError(t, err)
	}

	page, err := service.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 5, page.Meta.Total)
	assert.Equal(t, 2, page.Meta.Limit)

	rest, err := service.List(ctx, 10, 2)
	require.NoError(t, err)
	assert.Len(t, rest.Items, 3)
	assert.Equal(t, 2, rest.Meta.Offset)
}

func TestService_List_CapsLimit(t *testing.T) {
	service := newService()

	page, err := service.List(context.Background(), 10000, 0)
	require.NoError(t, err)
	assert.Equal(t, zones.MaxListLimit, page.Meta.Limit)
}

func TestService_Update(t *testing.T) {
	service := newService()
	ctx := context.Background()

	created, err := service.Create(ctx, validCreateRequest("Original"))
	require.NoError(t, err)

	newName := "Renamed"
	newRadius := 25.0
	updated, err := service.Update(ctx, created.ID, &models.ZoneUpdateRequest{
		Name:     &newName,
		RadiusKm: &newRadius,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, 25.0, updated.RadiusKm)
	// Center untouched
	assert.Equal(t, created.Center, updated.Center)

	badRadius := -5.0
	_, err = service.Update(ctx, created.ID, &models.ZoneUpdateRequest{RadiusKm: &badRadius})
	var validationErr *zones.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	_, err = service.Update(ctx, "hz_missing", &models.ZoneUpdateRequest{Name: &newName})
	assert.ErrorIs(t, err, zones.ErrZoneNotFound)
}

func TestService_Delete(t *testing.T) {
	service := newService()
	ctx := context.Background()

	created, err := service.Create(ctx, validCreateRequest("Doomed"))
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, created.ID))

	_, err = service.Get(ctx, created.ID)
	assert.ErrorIs(t, err, zones.ErrZoneNotFound)

	assert.ErrorIs(t, service.Delete(ctx, created.ID), zones.ErrZoneNotFound)
}

func TestService_UpsertByName(t *testing.T) {
	service := newService()
	ctx := context.Background()

	createdNew, err := service.UpsertByName(ctx, zones.Upsert{
		Name:     "Feed Zone",
		Center:   zones.Point{Lat: 34, Lon: -118},
		RadiusKm: 30,
	})
	require.NoError(t, err)
	assert.True(t, createdNew)

	// Same name updates in place
	createdNew, err = service.UpsertByName(ctx, zones.Upsert{
		Name:     "Feed Zone",
		Center:   zones.Point{Lat: 35, Lon: -119},
		RadiusKm: 40,
	})
	require.NoError(t, err)
	assert.False(t, createdNew)

	page, err := service.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 40.0, page.Items[0].RadiusKm)
	assert.Equal(t, 35.0, page.Items[0].Center.Lat)
}

func TestService_SeedSampleZones_Idempotent(t *testing.T) {
	service := newService()
	ctx := context.Background()

	created, err := service.SeedSampleZones(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, created)

	created, err = service.SeedSampleZones(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	page, err := service.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, page.Items, 4)
}

func TestToHazardZone(t *testing.T) {
	z := &zones.Zone{
		ID:       "hz_test",
		Name:     "Convertible",
		Center:   zones.Point{Lat: 34.05, Lon: -118.05},
		RadiusKm: 10,
	}

	hz, err := zones.ToHazardZone(z)
	require.NoError(t, err)
	assert.Equal(t, "Convertible", hz.Name)
	assert.Equal(t, 10.0, hz.RadiusKm)
	assert.Equal(t, 34.05, hz.Center.Lat)
}
