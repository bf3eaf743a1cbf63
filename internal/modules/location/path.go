// README: Straight-line route generation between two points.
package location

import (
	"errors"
	"fmt"

	"tollsim/internal/types"
)

var ErrInvalidPointCount = errors.New("number of path points must be at least 1")

// GeneratePath returns numPoints+1 waypoints from start to end, interpolating
// latitude and longitude independently. The last waypoint is end itself so
// rounding never leaves a vehicle short of its destination.
func GeneratePath(start, end types.Point, numPoints int) ([]types.Point, error) {
	if numPoints < 1 {
		return nil, fmt.Errorf("generate path with %d points: %w", numPoints, ErrInvalidPointCount)
	}
	latStep := (end.Lat - start.Lat) / float64(numPoints)
	lngStep := (end.Lng - start.Lng) / float64(numPoints)

	path := make([]types.Point, numPoints+1)
	for i := 0; i < numPoints; i++ {
		path[i] = types.Point{
			Lat: start.Lat + float64(i)*latStep,
			Lng: start.Lng + float64(i)*lngStep,
		}
	}
	path[numPoints] = end
	return path, nil
}
