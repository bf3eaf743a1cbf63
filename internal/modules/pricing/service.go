// README: Pricing service draws toll amounts from the tariff.
package pricing

import (
	"tollsim/internal/types"
)

// Source is the randomness the service draws from. *rand.Rand from
// math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

type Service struct {
	tariff Tariff
	rng    Source
}

func NewService(tariff Tariff, rng Source) (*Service, error) {
	if err := tariff.Validate(); err != nil {
		return nil, err
	}
	return &Service{tariff: tariff, rng: rng}, nil
}

// Quote returns a toll uniformly drawn from [Min, Max].
func (s *Service) Quote() types.Money {
	span := s.tariff.Max - s.tariff.Min + 1
	return types.Money(s.tariff.Min + int64(s.rng.IntN(int(span))))
}

func (s *Service) Tariff() Tariff {
	return s.tariff
}
