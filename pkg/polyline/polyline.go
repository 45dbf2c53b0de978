// Package polyline implements Google's encoded polyline algorithm as a
// compact wire form for route waypoint sequences, at the standard
// precision of 5 decimal places.
//
// Format reference: https://developers.google.com/maps/documentation/utilities/polylinealgorithm
package polyline

import "math"

// Coordinate is a geographic point with latitude and longitude in degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Decode expands an encoded polyline into its coordinate sequence.
// An empty string decodes to nil.
func Decode(encoded string) []Coordinate {
	if encoded == "" {
		return nil
	}

	var coords []Coordinate
	index := 0
	lat := 0
	lon := 0

	for index < len(encoded) {
		latDelta, next := decodeValue(encoded, index)
		index = next
		lat += latDelta

		lonDelta, next := decodeValue(encoded, index)
		index = next
		lon += lonDelta

		coords = append(coords, Coordinate{
			Lat: float64(lat) / 1e5,
			Lon: float64(lon) / 1e5,
		})
	}

	return coords
}

// Encode packs a coordinate sequence into an encoded polyline.
// Coordinates are rounded to 5 decimal places; an empty sequence encodes
// to the empty string.
func Encode(coords []Coordinate) string {
	if len(coords) == 0 {
		return ""
	}

	encoded := make([]byte, 0, len(coords)*4)
	prevLat := 0
	prevLon := 0

	for _, coord := range coords {
		lat := int(math.Round(coord.Lat * 1e5))
		lon := int(math.Round(coord.Lon * 1e5))

		encoded = encodeValue(encoded, lat-prevLat)
		encoded = encodeValue(encoded, lon-prevLon)

		prevLat = lat
		prevLon = lon
	}

	return string(encoded)
}

// decodeValue reads one delta starting at index and returns it with the
// index of the next unread byte.
func decodeValue(encoded string, index int) (int, int) {
	shift := 0
	result := 0

	for index < len(encoded) {
		b := int(encoded[index]) - 63
		index++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}

	// Low bit carries the sign
	if result&1 != 0 {
		return ^(result >> 1), index
	}
	return result >> 1, index
}

// encodeValue appends one delta in 5-bit chunks.
func encodeValue(buf []byte, value int) []byte {
	if value < 0 {
		value = ^(value << 1)
	} else {
		value <<= 1
	}

	for value >= 0x20 {
		buf = append(buf, byte((value&0x1f)|0x20)+63)
		value >>= 5
	}
	buf = append(buf, byte(value)+63)

	return buf
}
