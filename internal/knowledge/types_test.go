package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDestination_CombinedText(t *testing.T) {
	t.Parallel()

	d := Destination{
		ID:                 1,
		Destination:        "Goa Beaches",
		State:              "Goa",
		Description:        "Sun and sand",
		TouristAttractions: "Baga Beach",
		Activities:         "Swimming, parasailing",
	}

	assert.Equal(t,
		"Goa Beaches Goa Sun and sand Baga Beach Swimming, parasailing",
		d.CombinedText())
}

func TestDestination_CombinedText_EmptyFields(t *testing.T) {
	t.Parallel()

	// Blank attributes still occupy a slot, mirroring the source rows
	// where nulls are replaced by empty strings before embedding.
	d := Destination{Destination: "Manali", State: "Himachal Pradesh"}
	assert.Equal(t, "Manali Himachal Pradesh   ", d.CombinedText())
}
