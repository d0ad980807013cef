package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Swuzz123/Tourism-chatbot-demo/internal/knowledge"
)

func goaResult() *knowledge.SearchResult {
	return &knowledge.SearchResult{
		Destination: knowledge.Destination{
			ID:                 7,
			Destination:        "Goa Beaches",
			State:              "Goa",
			Description:        "Golden sand and nightlife",
			TouristAttractions: "Baga Beach, Fort Aguada",
			Activities:         "Swimming, parasailing, beach shacks",
		},
		Distance: 0.42,
	}
}

func TestBuildContext(t *testing.T) {
	t.Parallel()

	got := BuildContext(goaResult())

	want := "Destination: Goa Beaches\n" +
		"State: Goa\n" +
		"Description: Golden sand and nightlife\n" +
		"Tourist Attractions: Baga Beach, Fort Aguada\n" +
		"Activities: Swimming, parasailing, beach shacks"
	assert.Equal(t, want, got)
}

func TestBuildContext_NoResult(t *testing.T) {
	t.Parallel()

	assert.Equal(t, NoMatchContext, BuildContext(nil))
}

func TestBuildContext_Deterministic(t *testing.T) {
	t.Parallel()

	r := goaResult()
	first := BuildContext(r)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, BuildContext(r))
	}
}

func TestBuildContext_EmptyFields(t *testing.T) {
	t.Parallel()

	got := BuildContext(&knowledge.SearchResult{})
	assert.Equal(t,
		"Destination: \nState: \nDescription: \nTourist Attractions: \nActivities: ",
		got)
}
