package geo

import (
	"fmt"
	"log"
	"strconv"
	"strings"
)

// Point is a latitude/longitude pair. The reports table stores it in
// the textual form "(lat,lng)".
type Point struct {
	Lat float64
	Lng float64
}

// ParsePoint parses user-supplied "lat,lng" text. Malformed input
// (wrong token count, non-numeric tokens) degrades to the origin
// instead of failing the submission, so every submission flow produces
// a storable value.
func ParsePoint(val string) Point {
	parts := strings.Split(val, ",")
	if len(parts) != 2 {
		log.Printf("malformed location %q, falling back to origin", val)
		return Point{}
	}
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, lngErr := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if latErr != nil || lngErr != nil {
		log.Printf("malformed location %q, falling back to origin", val)
		return Point{}
	}
	return Point{Lat: lat, Lng: lng}
}

// String encodes the point in the exact form the storage layer's
// geographic column expects.
func (p Point) String() string {
	return fmt.Sprintf("(%v,%v)",
		strconv.FormatFloat(p.Lat, 'f', -1, 64),
		strconv.FormatFloat(p.Lng, 'f', -1, 64))
}

// DecodePoint is the inverse of String for read paths. Unlike
// ParsePoint it reports failure instead of degrading.
func DecodePoint(val string) (Point, bool) {
	if len(val) < 2 || val[0] != '(' || val[len(val)-1] != ')' {
		return Point{}, false
	}
	parts := strings.Split(val[1:len(val)-1], ",")
	if len(parts) != 2 {
		return Point{}, false
	}
	lat, latErr := strconv.ParseFloat(parts[0], 64)
	lng, lngErr := strconv.ParseFloat(parts[1], 64)
	if latErr != nil || lngErr != nil {
		return Point{}, false
	}
	return Point{Lat: lat, Lng: lng}, true
}
