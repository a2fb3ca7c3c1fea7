package position_pipeline_service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveColumns_CzechHeaders(t *testing.T) {
	cols := resolveColumns([]string{"Poř. číslo", "Kód položky", "Popis položky", "MJ", "Množství", "Cena celkem"})

	assert.Equal(t, 1, cols.Code)
	assert.Equal(t, 2, cols.Description)
	assert.Equal(t, 3, cols.Unit)
	assert.Equal(t, 4, cols.Quantity)
	assert.Equal(t, 5, cols.Price)
}

func TestResolveColumns_EnglishHeaders(t *testing.T) {
	cols := resolveColumns([]string{"Code", "Description", "Unit", "Quantity", "Unit price"})

	assert.Equal(t, 0, cols.Code)
	assert.Equal(t, 1, cols.Description)
	assert.Equal(t, 2, cols.Unit)
	assert.Equal(t, 3, cols.Quantity)
	assert.Equal(t, 4, cols.Price)
}

func TestResolveColumns_DiacriticsAndCase(t *testing.T) {
	cols := resolveColumns([]string{"NÁZEV", "VÝMĚRA", "JEDNOTKA"})

	assert.Equal(t, 0, cols.Description)
	assert.Equal(t, 1, cols.Quantity)
	assert.Equal(t, 2, cols.Unit)
}

func TestResolveColumns_ColumnClaimedOnce(t *testing.T) {
	// "Položka" could be code or description; code resolves first and
	// claims it, description falls through to the next candidate.
	cols := resolveColumns([]string{"Položka č.", "Popis"})

	assert.Equal(t, 0, cols.Code)
	assert.Equal(t, 1, cols.Description)
}

func TestResolveColumns_MissingFields(t *testing.T) {
	cols := resolveColumns([]string{"A", "B"})

	assert.Equal(t, -1, cols.Code)
	assert.Equal(t, -1, cols.Description)
	assert.Equal(t, -1, cols.Unit)
	assert.Equal(t, -1, cols.Quantity)
	assert.Equal(t, -1, cols.Price)
}
