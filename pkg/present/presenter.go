// Package present formats fare-search results into a single outbound message.
package present

import (
	"fmt"
	"strings"

	"github.com/askarpov/farebot/pkg/domain"
)

// NoFlights is the fixed notice for an empty result list.
const NoFlights = "🚫 No flights found for the given dates. Try different dates or cities."

const bookingBase = "https://www.aviasales.com/"

// placeholder stands in for any field the provider omitted.
const placeholder = "n/a"

// Render builds the result message in Telegram Markdown. Candidates are kept
// in the order the search returned them (the provider ranks by price).
// Missing fields never abort rendering; they show up as placeholders.
func Render(candidates []domain.ItineraryCandidate) string {
	if len(candidates) == 0 {
		return NoFlights
	}

	var b strings.Builder
	b.WriteString("✈️ *Top Flights Found:*\n")
	for _, c := range candidates {
		fmt.Fprintf(&b, "\n• *%s %s*\n", orPlaceholder(c.Airline), orPlaceholder(c.FlightNumber))
		fmt.Fprintf(&b, "  _Departure:_ %s\n", orPlaceholder(c.DepartureAt))
		fmt.Fprintf(&b, "  _Return:_ %s\n", orPlaceholder(c.ReturnAt))
		fmt.Fprintf(&b, "  _Duration there:_ %s\n", formatDuration(c.DurationTo))
		fmt.Fprintf(&b, "  _Duration back:_ %s\n", formatDuration(c.DurationBack))
		fmt.Fprintf(&b, "  _Price:_ %s\n", formatPrice(c.Price))
		if c.Link != "" {
			fmt.Fprintf(&b, "  [Book Here](%s%s)\n", bookingBase, strings.TrimPrefix(c.Link, "/"))
		}
	}
	return b.String()
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

func formatDuration(minutes int) string {
	if minutes <= 0 {
		return placeholder
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}

func formatPrice(p float64) string {
	if p <= 0 {
		return placeholder
	}
	// Whole units; the provider quotes integral fares.
	return fmt.Sprintf("%.0f", p)
}
