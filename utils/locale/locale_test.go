package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type overlayRow struct {
	Code string
	Name string
}

func (r overlayRow) OverlayLocale() string {
	return r.Code
}

func TestMatchReturnsRequestedLocale(t *testing.T) {
	rows := []overlayRow{
		{Code: "en", Name: "Mentoring Program"},
		{Code: "es", Name: "Programa de Mentoria"},
	}

	row, ok := Match(rows, "es")
	require.True(t, ok)
	assert.Equal(t, "Programa de Mentoria", row.Name)
}

func TestMatchMissingLocale(t *testing.T) {
	rows := []overlayRow{{Code: "en", Name: "Mentoring Program"}}

	_, ok := Match(rows, "fr")
	assert.False(t, ok)
}

func TestMatchEmptyRows(t *testing.T) {
	_, ok := Match([]overlayRow(nil), "en")
	assert.False(t, ok)
}

func TestMatchIsCaseSensitive(t *testing.T) {
	rows := []overlayRow{{Code: "en", Name: "Mentoring Program"}}

	_, ok := Match(rows, "EN")
	assert.False(t, ok)
}

func TestHas(t *testing.T) {
	rows := []overlayRow{
		{Code: "en", Name: "Mentoring Program"},
		{Code: "es", Name: "Programa de Mentoria"},
	}

	assert.True(t, Has(rows, "en"))
	assert.True(t, Has(rows, "es"))
	assert.False(t, Has(rows, "de"))
}
