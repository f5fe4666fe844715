// Package geometry derives centroid and planar area from polygon text
// returned by the cadastral service (WGS84, "lng lat" vertex order).
package geometry

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// metersPerDegree is the equirectangular scale at the equator.
const metersPerDegree = 111320.0

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

var (
	sridPrefix = regexp.MustCompile(`^\s*SRID=\d+;`)
	// first parenthesised vertex list; for POLYGON((outer),(hole)) and
	// MULTIPOLYGON(((outer),...)) this is the first outer ring.
	firstRing = regexp.MustCompile(`\(\s*([^()]+?)\s*\)`)
)

// StripSRID removes an optional "SRID=n;" prefix.
func StripSRID(text string) string {
	return strings.TrimSpace(sridPrefix.ReplaceAllString(text, ""))
}

// ParseRing extracts the outer ring of a polygon. Non-numeric pairs are
// dropped, and so is a closing vertex equal to the first one.
func ParseRing(text string) []Point {
	m := firstRing.FindStringSubmatch(StripSRID(text))
	if m == nil {
		return nil
	}

	var ring []Point
	for _, pair := range strings.Split(m[1], ",") {
		fields := strings.Fields(pair)
		if len(fields) < 2 {
			continue
		}
		lng, err1 := strconv.ParseFloat(fields[0], 64)
		lat, err2 := strconv.ParseFloat(fields[1], 64)
		if err1 != nil || err2 != nil || !finite(lng) || !finite(lat) {
			continue
		}
		ring = append(ring, Point{Lat: lat, Lng: lng})
	}

	if n := len(ring); n > 1 && ring[0] == ring[n-1] {
		ring = ring[:n-1]
	}
	return ring
}

// Centroid is the arithmetic mean of the ring vertices. Nil below three vertices.
// Rings from ParseRing carry no closing duplicate, so every corner counts once:
// the 4x4 square POLYGON((0 0,4 0,4 4,0 4,0 0)) has its centroid at (2, 2),
// not at (1.6, 1.6) as a five-vertex mean would give.
func Centroid(ring []Point) *Point {
	if len(ring) < 3 {
		return nil
	}
	var sumLat, sumLng float64
	for _, p := range ring {
		sumLat += p.Lat
		sumLng += p.Lng
	}
	n := float64(len(ring))
	return &Point{Lat: sumLat / n, Lng: sumLng / n}
}

// Area projects the ring onto a local plane anchored at its first vertex and
// applies the shoelace formula. The result is rounded to whole square metres.
// Nil below three vertices.
func Area(ring []Point) *int64 {
	if len(ring) < 3 {
		return nil
	}
	origin := ring[0]
	mLat := metersPerDegree
	mLng := metersPerDegree * math.Cos(origin.Lat*math.Pi/180)

	xs := make([]float64, len(ring))
	ys := make([]float64, len(ring))
	for i, p := range ring {
		xs[i] = (p.Lng - origin.Lng) * mLng
		ys[i] = (p.Lat - origin.Lat) * mLat
	}

	var sum float64
	for i := range ring {
		j := (i + 1) % len(ring)
		sum += xs[i]*ys[j] - xs[j]*ys[i]
	}
	area := int64(math.Round(math.Abs(sum) / 2))
	return &area
}

// Measure parses polygon text and returns its centroid and area.
func Measure(text string) (*Point, *int64) {
	ring := ParseRing(text)
	return Centroid(ring), Area(ring)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
