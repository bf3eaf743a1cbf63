// README: Polyline encoding so clients can draw routes with standard map widgets.
package location

import (
	"googlemaps.github.io/maps"

	"tollsim/internal/types"
)

// EncodePolyline encodes path using the Google encoded polyline format.
func EncodePolyline(path []types.Point) string {
	if len(path) == 0 {
		return ""
	}
	latLngs := make([]maps.LatLng, len(path))
	for i, p := range path {
		latLngs[i] = maps.LatLng{Lat: p.Lat, Lng: p.Lng}
	}
	return maps.Encode(latLngs)
}

// DecodePolyline is the inverse of EncodePolyline. The format keeps five
// decimal places.
func DecodePolyline(encoded string) ([]types.Point, error) {
	if encoded == "" {
		return nil, nil
	}
	latLngs, err := maps.DecodePolyline(encoded)
	if err != nil {
		return nil, err
	}
	path := make([]types.Point, len(latLngs))
	for i, ll := range latLngs {
		path[i] = types.Point{Lat: ll.Lat, Lng: ll.Lng}
	}
	return path, nil
}
