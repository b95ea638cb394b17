package catalog

import (
	"context"
	"testing"

	"parts-finder/feature/catalog/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestBuildSuggestionsShortQuery(t *testing.T) {
	db, sqlMock := setupMockDB(t)

	// No queries run for a query under the minimum length. The limit
	// counts characters, so a two-character accented query stays below
	// it despite its byte length.
	for _, query := range []string{"NA", "ñé"} {
		suggestions, err := buildSuggestions(context.Background(), db, query)
		assert.NoError(t, err, query)
		assert.Empty(t, suggestions, query)
		assert.NotNil(t, suggestions, query)
	}
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestBuildSuggestionsPriorityAndLabels(t *testing.T) {
	db, sqlMock := setupMockDB(t)

	sqlMock.ExpectQuery("SELECT DISTINCT part_number, description FROM `parts`").
		WithArgs("%NAV%", maxSuggestionsPerSource).
		WillReturnRows(sqlmock.NewRows([]string{"part_number", "description"}).
			AddRow("NAV1", "Filtro de aceite"))

	sqlMock.ExpectQuery("SELECT DISTINCT pc.compatible_part_number, pc.equipment_model, p.part_number").
		WithArgs("%NAV%", maxSuggestionsPerSource).
		WillReturnRows(sqlmock.NewRows([]string{"compatible_part_number", "equipment_model", "part_number"}).
			AddRow("NAV-X", "Excavadora 320", "NAV1"))

	sqlMock.ExpectQuery("SELECT DISTINCT pc.equipment_model, p.part_number, p.description").
		WithArgs("%NAV%", maxSuggestionsPerSource).
		WillReturnRows(sqlmock.NewRows([]string{"equipment_model", "part_number", "description"}).
			AddRow("NAVE 500", "NAV1", "Filtro de aceite"))

	suggestions, err := buildSuggestions(context.Background(), db, "NAV")
	assert.NoError(t, err)
	assert.Equal(t, []models.Suggestion{
		{Value: "NAV1", Label: "Filtro de aceite", Type: models.SuggestionPart},
		{Value: "NAV-X", Label: "Compatible con NAV1 - Excavadora 320", Type: models.SuggestionCompatible},
		{Value: "NAVE 500", Label: "NAV1 - Filtro de aceite", Type: models.SuggestionEquipment},
	}, suggestions)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestBuildSuggestionsDedupesAcrossSources(t *testing.T) {
	db, sqlMock := setupMockDB(t)

	sqlMock.ExpectQuery("SELECT DISTINCT part_number, description FROM `parts`").
		WillReturnRows(sqlmock.NewRows([]string{"part_number", "description"}).
			AddRow("NAV1", "Filtro"))

	// The same value appearing as a compatible number keeps the first
	// label and type.
	sqlMock.ExpectQuery("SELECT DISTINCT pc.compatible_part_number").
		WillReturnRows(sqlmock.NewRows([]string{"compatible_part_number", "equipment_model", "part_number"}).
			AddRow("NAV1", "Excavadora", "NAV9"))

	sqlMock.ExpectQuery("SELECT DISTINCT pc.equipment_model").
		WillReturnRows(sqlmock.NewRows([]string{"equipment_model", "part_number", "description"}))

	suggestions, err := buildSuggestions(context.Background(), db, "NAV1")
	assert.NoError(t, err)
	assert.Len(t, suggestions, 1)
	assert.Equal(t, models.SuggestionPart, suggestions[0].Type)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestBuildSuggestionsCapsMergedList(t *testing.T) {
	db, sqlMock := setupMockDB(t)

	partRows := sqlmock.NewRows([]string{"part_number", "description"})
	for _, pn := range []string{"NAV1", "NAV2", "NAV3", "NAV4", "NAV5"} {
		partRows.AddRow(pn, "Filtro")
	}
	sqlMock.ExpectQuery("SELECT DISTINCT part_number, description FROM `parts`").
		WillReturnRows(partRows)

	compRows := sqlmock.NewRows([]string{"compatible_part_number", "equipment_model", "part_number"})
	for _, pn := range []string{"C1", "C2", "C3", "C4", "C5"} {
		compRows.AddRow(pn, "Excavadora", "NAV1")
	}
	sqlMock.ExpectQuery("SELECT DISTINCT pc.compatible_part_number").
		WillReturnRows(compRows)

	eqRows := sqlmock.NewRows([]string{"equipment_model", "part_number", "description"}).
		AddRow("E1", "NAV1", "Filtro").
		AddRow("E2", "NAV1", "Filtro")
	sqlMock.ExpectQuery("SELECT DISTINCT pc.equipment_model").
		WillReturnRows(eqRows)

	suggestions, err := buildSuggestions(context.Background(), db, "NAV")
	assert.NoError(t, err)
	assert.Len(t, suggestions, maxSuggestions)
	// Equipment candidates past the cap fall off the end.
	assert.Equal(t, models.SuggestionCompatible, suggestions[len(suggestions)-1].Type)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
