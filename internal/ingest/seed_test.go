package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Swuzz123/Tourism-chatbot-demo/internal/knowledge"
)

func TestParseCSV(t *testing.T) {
	t.Parallel()

	data := "Destination,State,Description,Tourist Attractions,Activities\n" +
		"Goa Beaches,Goa,Golden sand,\"Baga Beach, Fort Aguada\",Swimming\n" +
		"Manali,Himachal Pradesh,Hill station,Solang Valley,Skiing\n"

	records, err := ParseCSV(strings.NewReader(data))

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, knowledge.Destination{
		Destination:        "Goa Beaches",
		State:              "Goa",
		Description:        "Golden sand",
		TouristAttractions: "Baga Beach, Fort Aguada",
		Activities:         "Swimming",
	}, records[0])
	assert.Equal(t, "Manali", records[1].Destination)
	assert.Zero(t, records[0].ID, "IDs come from the database, not the file")
}

func TestParseCSV_ColumnOrderIndependent(t *testing.T) {
	t.Parallel()

	data := "Activities,Destination,Extra,State,Description,Tourist Attractions\n" +
		"Rafting,Rishikesh,ignored,Uttarakhand,On the Ganges,Laxman Jhula\n"

	records, err := ParseCSV(strings.NewReader(data))

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Rishikesh", records[0].Destination)
	assert.Equal(t, "Rafting", records[0].Activities)
	assert.Equal(t, "Laxman Jhula", records[0].TouristAttractions)
}

func TestParseCSV_MissingColumn(t *testing.T) {
	t.Parallel()

	data := "Destination,State,Description,Activities\nGoa,Goa,x,y\n"

	_, err := ParseCSV(strings.NewReader(data))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Tourist Attractions")
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	t.Parallel()

	data := "Destination,State,Description,Tourist Attractions,Activities\n"

	records, err := ParseCSV(strings.NewReader(data))

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseCSV_MalformedRow(t *testing.T) {
	t.Parallel()

	data := "Destination,State,Description,Tourist Attractions,Activities\n" +
		"only,two\n"

	_, err := ParseCSV(strings.NewReader(data))

	require.Error(t, err)
}
