package georisk_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazardroute/hazardroute/internal/georisk"
)

func TestNewHazardZone(t *testing.T) {
	center, err := georisk.NewCoordinate(34.00, -118.00)
	require.NoError(t, err)

	tests := []struct {
		name     string
		radiusKm float64
		wantErr  bool
	}{
		{name: "typical radius", radiusKm: 80},
		{name: "small radius", radiusKm: 0.5},
		{name: "zero radius", radiusKm: 0, wantErr: true},
		{name: "negative radius", radiusKm: -10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zone, err := georisk.NewHazardZone("San Andreas Fault Zone", center, tt.radiusKm)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, georisk.ErrInvalidHazardZone)

				var zoneErr *georisk.HazardZoneError
				require.True(t, errors.As(err, &zoneErr))
				assert.Equal(t, "San Andreas Fault Zone", zoneErr.Name)
				assert.Equal(t, tt.radiusKm, zoneErr.RadiusKm)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "San Andreas Fault Zone", zone.Name)
			assert.Equal(t, center, zone.Center)
			assert.Equal(t, tt.radiusKm, zone.RadiusKm)
		})
	}
}

func TestHazardZone_String(t *testing.T) {
	center, err := georisk.NewCoordinate(34.00, -118.00)
	require.NoError(t, err)

	zone, err := georisk.NewHazardZone("San Andreas Fault Zone", center, 80)
	require.NoError(t, err)

	assert.Equal(t, "San Andreas Fault Zone: Center (34.000000, -118.000000), Radius 80.00 km", zone.String())
}
