package dialogue

import "fmt"

// Welcome greets a user outside of any interview. Transports send it in
// response to their own start/help command.
const Welcome = "🌍 Welcome to your Travel Assistant Bot! Use /plan_trip to start planning your vacation."

const (
	msgPromptStartDate = "📅 Please enter your vacation START date (YYYY-MM-DD, e.g., 2025-10-28):"
	msgPromptEndDate   = "📅 Now enter your vacation END date (YYYY-MM-DD):"
	msgPromptOrigin    = "🏠 Now enter your CURRENT city (e.g., Moscow):"
	msgPromptDest      = "✈️ Now enter your DESTINATION city:"

	// One message covers both unparseable input and dates in the past; the
	// validator does not distinguish them.
	msgInvalidDate    = "❌ Invalid date. Use YYYY-MM-DD format and ensure it's not in the past. Try again:"
	msgEndBeforeStart = "❌ End date must be AFTER start date. Try again:"

	msgRouteNotFound = "❌ Could not find flight routes for these cities. Try another pair."
	msgSearchFailed  = "⚠️ Flight search is unavailable right now. Please try again later."
	msgCanceled      = "🚫 Trip planning canceled."
	msgNothingToDo   = "You are not planning a trip right now. Use /plan_trip to start."
)

func msgCityNotFound(city string) string {
	return fmt.Sprintf("❌ City '%s' not found. Try again (e.g., Moscow):", city)
}
