package marketplace

import (
	"math"
	"sort"

	"github.com/utaskhq/utask/internal/domain"
)

const (
	earthRadiusKm    = 6371.0
	maxNearbyResults = 50
)

// haversineKm is the great-circle distance between two coordinates in km.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// rankNearby keeps services within radiusKm of (lat, lng), sets their
// distance in meters, sorts nearest first and caps the result.
func rankNearby(services []domain.Service, lat, lng, radiusKm float64) []domain.Service {
	nearby := make([]domain.Service, 0, len(services))
	for _, svc := range services {
		if svc.Latitude == nil || svc.Longitude == nil {
			continue
		}
		meters := haversineKm(lat, lng, *svc.Latitude, *svc.Longitude) * 1000
		if meters > radiusKm*1000 {
			continue
		}
		svc.Distance = &meters
		nearby = append(nearby, svc)
	}

	sort.Slice(nearby, func(i, j int) bool {
		return *nearby[i].Distance < *nearby[j].Distance
	})
	if len(nearby) > maxNearbyResults {
		nearby = nearby[:maxNearbyResults]
	}
	return nearby
}
