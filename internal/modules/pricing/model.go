// README: Toll tariff definition.
package pricing

import "errors"

var ErrInvalidTariff = errors.New("invalid toll tariff")

// Tariff is the inclusive range a triggered booth charges from.
type Tariff struct {
	Min int64
	Max int64
}

// DefaultTariff matches the simulator's stock 5..15 range.
var DefaultTariff = Tariff{Min: 5, Max: 15}

func (t Tariff) Validate() error {
	switch {
	case t.Min < 0:
		return errors.Join(ErrInvalidTariff, errors.New("minimum toll must not be negative"))
	case t.Min > t.Max:
		return errors.Join(ErrInvalidTariff, errors.New("minimum toll must not exceed maximum toll"))
	}
	return nil
}
