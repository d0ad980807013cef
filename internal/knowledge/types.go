package knowledge

import "strings"

// VectorDimension is the embedding dimension fixed by the embedding model
// (Gemini embedding-001) and by the collection schema.
const VectorDimension = 768

// Field names of the tourism_search collection.
const (
	FieldID                 = "ID"
	FieldDestination        = "Destination"
	FieldState              = "State"
	FieldDescription        = "Description"
	FieldTouristAttractions = "TouristAttractions"
	FieldActivities         = "Activities"
	FieldEmbedding          = "embedding"
)

// VarChar limits of the collection schema.
const (
	maxTextLength       = 255
	maxActivitiesLength = 500
)

// Destination is one travel-destination record. Records are written once
// during ingestion and never mutated in the serving path; re-ingestion
// replaces the whole collection.
type Destination struct {
	ID                 int64
	Destination        string
	State              string
	Description        string
	TouristAttractions string
	Activities         string
}

// CombinedText returns the text that is embedded for this record: the five
// textual attributes joined by single spaces.
func (d Destination) CombinedText() string {
	return strings.Join([]string{
		d.Destination,
		d.State,
		d.Description,
		d.TouristAttractions,
		d.Activities,
	}, " ")
}

// SearchResult is a destination returned by a similarity query, annotated
// with its L2 distance from the query vector (smaller is closer).
type SearchResult struct {
	Destination
	Distance float32
}
