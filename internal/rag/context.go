package rag

import (
	"fmt"

	"github.com/Swuzz123/Tourism-chatbot-demo/internal/knowledge"
)

// NoMatchContext is the context block used when the search returned
// nothing. It is passed to the model as-is; downstream code never
// special-cases its absence.
const NoMatchContext = "No relevant search found in the dataset."

// BuildContext renders a search result into the fixed five-line context
// block. A nil result yields NoMatchContext. Pure and deterministic.
func BuildContext(result *knowledge.SearchResult) string {
	if result == nil {
		return NoMatchContext
	}
	return fmt.Sprintf(
		"Destination: %s\nState: %s\nDescription: %s\nTourist Attractions: %s\nActivities: %s",
		result.Destination.Destination,
		result.State,
		result.Description,
		result.TouristAttractions,
		result.Activities,
	)
}
