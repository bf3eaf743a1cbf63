// README: Ordered toll booth registry with validated inserts.
package toll

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"tollsim/internal/types"
)

var ErrInvalidBooth = errors.New("invalid toll booth")

// Registry holds booths keyed by name in insertion order. It is not safe for
// concurrent use; the tracking service serialises access.
type Registry struct {
	order  []string
	byName map[string]types.Point
}

func NewRegistry(booths ...Booth) (*Registry, error) {
	r := &Registry{byName: make(map[string]types.Point, len(booths))}
	for _, b := range booths {
		if err := r.Add(b); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add inserts b, or moves an existing booth of the same name to b's location
// while keeping its scan position.
func (r *Registry) Add(b Booth) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if _, ok := r.byName[b.Name]; !ok {
		r.order = append(r.order, b.Name)
	}
	r.byName[b.Name] = b.Location
	return nil
}

func (r *Registry) Get(name string) (Booth, bool) {
	loc, ok := r.byName[name]
	return Booth{Name: name, Location: loc}, ok
}

func (r *Registry) Len() int {
	return len(r.order)
}

// Booths returns a copy of the registry in scan order.
func (r *Registry) Booths() []Booth {
	out := make([]Booth, len(r.order))
	for i, name := range r.order {
		out[i] = Booth{Name: name, Location: r.byName[name]}
	}
	return out
}

// Clone returns an independent copy.
func (r *Registry) Clone() *Registry {
	c := &Registry{
		order:  append([]string(nil), r.order...),
		byName: make(map[string]types.Point, len(r.byName)),
	}
	for k, v := range r.byName {
		c.byName[k] = v
	}
	return c
}

func (b Booth) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("%w: name is blank", ErrInvalidBooth)
	}
	if !finite(b.Location.Lat) || !finite(b.Location.Lng) {
		return fmt.Errorf("%w: coordinates of %q must be finite numbers", ErrInvalidBooth, b.Name)
	}
	return nil
}

// ParseBooth builds a booth from raw user input.
func ParseBooth(name, lat, lng string) (Booth, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Booth{}, fmt.Errorf("%w: name is blank", ErrInvalidBooth)
	}
	latV, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return Booth{}, fmt.Errorf("%w: latitude %q is not a number", ErrInvalidBooth, lat)
	}
	lngV, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err != nil {
		return Booth{}, fmt.Errorf("%w: longitude %q is not a number", ErrInvalidBooth, lng)
	}
	b := Booth{Name: name, Location: types.Point{Lat: latV, Lng: lngV}}
	if err := b.Validate(); err != nil {
		return Booth{}, err
	}
	return b, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
