package marketplace

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utaskhq/utask/internal/domain"
)

func ptr(v float64) *float64 { return &v }

func TestHaversineKm(t *testing.T) {
	// Same point.
	assert.InDelta(t, 0, haversineKm(-23.5505, -46.6333, -23.5505, -46.6333), 0.001)

	// One degree of latitude is about 111.19 km on a 6371 km sphere.
	assert.InDelta(t, 111.19, haversineKm(0, 0, 1, 0), 0.05)

	// São Paulo to Rio de Janeiro, roughly 360 km.
	got := haversineKm(-23.5505, -46.6333, -22.9068, -43.1729)
	assert.InDelta(t, 360, got, 5)
}

func TestRankNearbyFiltersSortsAndSetsDistance(t *testing.T) {
	services := []domain.Service{
		{ID: "far", Latitude: ptr(-23.0), Longitude: ptr(-46.6333)},     // ~61 km away
		{ID: "near", Latitude: ptr(-23.5510), Longitude: ptr(-46.6333)}, // ~55 m away
		{ID: "nocoords"},
		{ID: "mid", Latitude: ptr(-23.60), Longitude: ptr(-46.6333)}, // ~5.5 km away
	}

	got := rankNearby(services, -23.5505, -46.6333, 10)

	require.Len(t, got, 2)
	assert.Equal(t, "near", got[0].ID)
	assert.Equal(t, "mid", got[1].ID)

	require.NotNil(t, got[0].Distance)
	assert.InDelta(t, 55, *got[0].Distance, 10)
	require.NotNil(t, got[1].Distance)
	assert.InDelta(t, 5500, *got[1].Distance, 100)
}

func TestRankNearbyCapsResults(t *testing.T) {
	var services []domain.Service
	for i := 0; i < maxNearbyResults+10; i++ {
		services = append(services, domain.Service{
			ID:        fmt.Sprintf("svc%d", i),
			Latitude:  ptr(-23.5505 + float64(i)*0.0001),
			Longitude: ptr(-46.6333),
		})
	}

	got := rankNearby(services, -23.5505, -46.6333, 10)
	assert.Len(t, got, maxNearbyResults)
	// Nearest first after the cap.
	assert.Equal(t, "svc0", got[0].ID)
}
