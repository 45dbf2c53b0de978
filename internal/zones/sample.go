package zones

// Sample dataset: a Los Angeles to San Diego route with the major Southern
// California earthquake fault zones. Exposed by the metadata API and
// seedable into the registry for demos and dev mode.

// SampleRouteName is the display name of the sample route.
const SampleRouteName = "Los Angeles to San Diego"

// SampleWaypoints returns the sample route waypoints in travel order.
func SampleWaypoints() []Point {
	return []Point{
		{Lat: 34.0522, Lon: -118.2437}, // Los Angeles
		{Lat: 33.8121, Lon: -117.9190}, // Anaheim
		{Lat: 33.6846, Lon: -117.8265}, // Irvine
		{Lat: 33.4936, Lon: -117.1484}, // Temecula
		{Lat: 33.1959, Lon: -117.3795}, // Escondido
		{Lat: 32.7157, Lon: -117.1611}, // San Diego
	}
}

// SampleZoneSeeds returns the sample hazard zones as upsert inputs.
func SampleZoneSeeds() []Upsert {
	return []Upsert{
		{
			Name:     "San Andreas Fault Zone",
			Center:   Point{Lat: 34.00, Lon: -118.00},
			RadiusKm: 80,
			Weight:   sampleWeight(8.5),
		},
		{
			Name:     "Newport-Inglewood Fault",
			Center:   Point{Lat: 33.85, Lon: -118.10},
			RadiusKm: 45,
			Weight:   sampleWeight(6.0),
		},
		{
			Name:     "Elsinore Fault Zone",
			Center:   Point{Lat: 33.50, Lon: -117.30},
			RadiusKm: 60,
			Weight:   sampleWeight(7.0),
		},
		{
			Name:     "Rose Canyon Fault",
			Center:   Point{Lat: 32.85, Lon: -117.20},
			RadiusKm: 35,
			Weight:   sampleWeight(5.5),
		},
	}
}

func sampleWeight(w float64) *float64 {
	return &w
}
