package present

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/askarpov/farebot/pkg/domain"
)

func TestRender_Empty(t *testing.T) {
	assert.Equal(t, NoFlights, Render(nil))
	assert.Equal(t, NoFlights, Render([]domain.ItineraryCandidate{}))
}

func TestRender_FullCandidate(t *testing.T) {
	out := Render([]domain.ItineraryCandidate{{
		Airline:      "SU",
		FlightNumber: "2468",
		DepartureAt:  "2099-01-01T10:20:00+03:00",
		ReturnAt:     "2099-01-10T18:40:00+01:00",
		DurationTo:   230,
		DurationBack: 95,
		Price:        14250,
		Link:         "/search/MOW0101PAR1001",
	}})

	assert.Contains(t, out, "✈️ *Top Flights Found:*")
	assert.Contains(t, out, "*SU 2468*")
	assert.Contains(t, out, "_Departure:_ 2099-01-01T10:20:00+03:00")
	assert.Contains(t, out, "_Return:_ 2099-01-10T18:40:00+01:00")
	assert.Contains(t, out, "_Duration there:_ 3h 50m")
	assert.Contains(t, out, "_Duration back:_ 1h 35m")
	assert.Contains(t, out, "_Price:_ 14250")
	assert.Contains(t, out, "(https://www.aviasales.com/search/MOW0101PAR1001)")
}

func TestRender_MissingFieldsUsePlaceholders(t *testing.T) {
	out := Render([]domain.ItineraryCandidate{{}})

	assert.Contains(t, out, "*n/a n/a*")
	assert.Contains(t, out, "_Departure:_ n/a")
	assert.Contains(t, out, "_Price:_ n/a")
	assert.NotContains(t, out, "Book Here", "no link block without a link suffix")
}

func TestRender_PreservesProviderOrder(t *testing.T) {
	out := Render([]domain.ItineraryCandidate{
		{Airline: "S7", FlightNumber: "100", Price: 9000},
		{Airline: "AF", FlightNumber: "200", Price: 12000},
	})

	first := strings.Index(out, "S7 100")
	second := strings.Index(out, "AF 200")
	assert.Greater(t, first, -1)
	assert.Greater(t, second, first)
}
