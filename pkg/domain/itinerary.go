package domain

import "time"

// ItineraryCandidate is one priced round-trip option returned by fare search.
// Produced by the fare adapter, read-only for the rest of the system. String
// fields may be empty and Price may be zero when the upstream omits them; the
// presenter renders placeholders instead of failing.
type ItineraryCandidate struct {
	Airline      string
	FlightNumber string
	DepartureAt  string
	ReturnAt     string
	DurationTo   int // minutes, outbound
	DurationBack int // minutes, return
	Price        float64
	Link         string // booking-link suffix, relative to aviasales.com
}

// FareQuery describes one round-trip fare search. Direct flights only,
// results sorted by ascending price, capped by Limit.
type FareQuery struct {
	Origin      string // IATA code
	Destination string // IATA code
	DepartDate  time.Time
	ReturnDate  time.Time
	Currency    string
	Limit       int
}
