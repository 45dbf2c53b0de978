package georisk_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazardroute/hazardroute/internal/georisk"
)

func TestNewCoordinate(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		wantErr  bool
		axis     string
	}{
		{name: "los angeles", lat: 34.0522, lon: -118.2437},
		{name: "origin", lat: 0, lon: 0},
		{name: "north pole", lat: 90, lon: 0},
		{name: "south pole", lat: -90, lon: 0},
		{name: "antimeridian east", lat: 0, lon: 180},
		{name: "antimeridian west", lat: 0, lon: -180},
		{name: "latitude too high", lat: 90.001, lon: 0, wantErr: true, axis: "latitude"},
		{name: "latitude too low", lat: -91, lon: 0, wantErr: true, axis: "latitude"},
		{name: "longitude too high", lat: 0, lon: 180.5, wantErr: true, axis: "longitude"},
		{name: "longitude too low", lat: 0, lon: -181, wantErr: true, axis: "longitude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := georisk.NewCoordinate(tt.lat, tt.lon)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, georisk.ErrInvalidCoordinate)

				var coordErr *georisk.CoordinateError
				require.True(t, errors.As(err, &coordErr))
				assert.Equal(t, tt.axis, coordErr.Axis)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.lat, c.Lat)
			assert.Equal(t, tt.lon, c.Lon)
		})
	}
}

func TestCoordinate_String(t *testing.T) {
	c, err := georisk.NewCoordinate(34.0522, -118.2437)
	require.NoError(t, err)

	assert.Equal(t, "(34.052200, -118.243700)", c.String())
}

func TestCoordinateError_Message(t *testing.T) {
	_, err := georisk.NewCoordinate(91.5, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "latitude must be between -90 and 90 degrees")

	_, err = georisk.NewCoordinate(0, -200)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "longitude must be between -180 and 180 degrees")
}
