package ports

import "context"

// CityResolver maps a free-text city name to an IATA-style airport code.
// The match is a case-insensitive exact-name lookup; there is no fuzzy
// matching and no disambiguation between multiple airports per city.
// Returns domain.ErrCityNotFound (possibly wrapped) when no entry matches.
type CityResolver interface {
	Resolve(ctx context.Context, cityName string) (string, error)
}

// CityValidatorFunc is the input-time validity check for a city answer.
// The production dialogue accepts every answer and defers all city-validity
// failure to the terminal resolution step; a resolver-backed implementation
// can be plugged in without touching the state machine.
type CityValidatorFunc func(ctx context.Context, cityName string) bool

// AcceptAllCities is the default CityValidatorFunc.
func AcceptAllCities(context.Context, string) bool { return true }
