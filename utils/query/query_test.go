package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID       uint
	Name     string
	Duration int
}

var itemDefinition = Definition[item]{
	DefaultSort: "id",
	Comparators: map[string]Comparator[item]{
		"id": func(a, b item) int {
			return CompareUint(a.ID, b.ID)
		},
		"name": func(a, b item) int {
			switch {
			case a.Name < b.Name:
				return -1
			case a.Name > b.Name:
				return 1
			default:
				return 0
			}
		},
		"duration": func(a, b item) int {
			return CompareInt(a.Duration, b.Duration)
		},
	},
}

func fixtureItems() []item {
	return []item{
		{ID: 1, Name: "delta", Duration: 25},
		{ID: 2, Name: "alpha", Duration: 15},
		{ID: 3, Name: "charlie", Duration: 10},
		{ID: 4, Name: "alpha", Duration: 18},
		{ID: 5, Name: "bravo", Duration: 12},
		{ID: 6, Name: "echo", Duration: 5},
	}
}

func intPtr(v int) *int {
	return &v
}

func ids(entities []item) []uint {
	result := make([]uint, 0, len(entities))
	for _, e := range entities {
		result = append(result, e.ID)
	}
	return result
}

func TestSearchDefaultSortIsAscendingID(t *testing.T) {
	result, err := Search(fixtureItems(), nil, Options{}, itemDefinition)
	require.NoError(t, err)

	assert.Equal(t, []uint{1, 2, 3, 4, 5, 6}, ids(result.Entities))
	assert.Equal(t, int64(6), result.Total)
	assert.Equal(t, int64(1), result.TotalPages)
}

func TestSearchSortDescending(t *testing.T) {
	result, err := Search(fixtureItems(), nil, Options{SortColumn: "duration", SortOrder: "DESC"}, itemDefinition)
	require.NoError(t, err)

	assert.Equal(t, []uint{1, 4, 2, 5, 3, 6}, ids(result.Entities))
}

func TestSearchSortOrderIsCaseInsensitive(t *testing.T) {
	result, err := Search(fixtureItems(), nil, Options{SortColumn: "duration", SortOrder: "desc"}, itemDefinition)
	require.NoError(t, err)

	assert.Equal(t, uint(1), result.Entities[0].ID)
}

func TestSearchTiesKeepAscendingID(t *testing.T) {
	// Items 2 and 4 share the name "alpha". Ties must come back in ascending
	// id order in both sort directions.
	asc, err := Search(fixtureItems(), nil, Options{SortColumn: "name"}, itemDefinition)
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 4, 5, 3, 1, 6}, ids(asc.Entities))

	desc, err := Search(fixtureItems(), nil, Options{SortColumn: "name", SortOrder: "DESC"}, itemDefinition)
	require.NoError(t, err)
	assert.Equal(t, []uint{6, 1, 3, 5, 2, 4}, ids(desc.Entities))
}

func TestSearchUnknownSortColumn(t *testing.T) {
	_, err := Search(fixtureItems(), nil, Options{SortColumn: "nope"}, itemDefinition)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestSearchBadSortOrder(t *testing.T) {
	_, err := Search(fixtureItems(), nil, Options{SortOrder: "SIDEWAYS"}, itemDefinition)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestSearchPredicatesAreANDed(t *testing.T) {
	predicates := []Predicate[item]{
		func(i item) bool { return i.Duration >= 10 },
		func(i item) bool { return i.Name == "alpha" },
	}
	result, err := Search(fixtureItems(), predicates, Options{}, itemDefinition)
	require.NoError(t, err)

	assert.Equal(t, []uint{2, 4}, ids(result.Entities))
	assert.Equal(t, int64(2), result.Total)
}

func TestSearchPagination(t *testing.T) {
	opts := Options{PageNumber: intPtr(1), PageSize: intPtr(2)}
	result, err := Search(fixtureItems(), nil, opts, itemDefinition)
	require.NoError(t, err)

	assert.Equal(t, []uint{3, 4}, ids(result.Entities))
	assert.Equal(t, int64(6), result.Total)
	assert.Equal(t, int64(3), result.TotalPages)
}

func TestSearchPaginationRoundsTotalPagesUp(t *testing.T) {
	opts := Options{PageSize: intPtr(4)}
	result, err := Search(fixtureItems(), nil, opts, itemDefinition)
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.TotalPages)
	assert.Len(t, result.Entities, 4)
}

func TestSearchPageBeyondLastIsEmptyWithTotals(t *testing.T) {
	opts := Options{PageNumber: intPtr(9), PageSize: intPtr(2)}
	result, err := Search(fixtureItems(), nil, opts, itemDefinition)
	require.NoError(t, err)

	assert.Empty(t, result.Entities)
	assert.NotNil(t, result.Entities)
	assert.Equal(t, int64(6), result.Total)
	assert.Equal(t, int64(3), result.TotalPages)
}

func TestSearchLastPartialPage(t *testing.T) {
	opts := Options{PageNumber: intPtr(1), PageSize: intPtr(4)}
	result, err := Search(fixtureItems(), nil, opts, itemDefinition)
	require.NoError(t, err)

	assert.Equal(t, []uint{5, 6}, ids(result.Entities))
}

func TestSearchNegativePageNumber(t *testing.T) {
	opts := Options{PageNumber: intPtr(-1), PageSize: intPtr(2)}
	_, err := Search(fixtureItems(), nil, opts, itemDefinition)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestSearchZeroPageSize(t *testing.T) {
	opts := Options{PageNumber: intPtr(0), PageSize: intPtr(0)}
	_, err := Search(fixtureItems(), nil, opts, itemDefinition)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestSearchPageNumberWithoutPageSize(t *testing.T) {
	opts := Options{PageNumber: intPtr(1)}
	_, err := Search(fixtureItems(), nil, opts, itemDefinition)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestSearchEmptyCollection(t *testing.T) {
	result, err := Search([]item{}, nil, Options{}, itemDefinition)
	require.NoError(t, err)

	assert.Empty(t, result.Entities)
	assert.Equal(t, int64(0), result.Total)
	assert.Equal(t, int64(0), result.TotalPages)
}

func TestSearchDoesNotMutateInput(t *testing.T) {
	items := fixtureItems()
	_, err := Search(items, nil, Options{SortColumn: "name", SortOrder: "DESC"}, itemDefinition)
	require.NoError(t, err)

	assert.Equal(t, []uint{1, 2, 3, 4, 5, 6}, ids(items))
}
