// Package query implements the generic search layer shared by every catalog
// and assignment collection: AND-composed criteria predicates, explicit
// per-column comparators, stable sorting and zero-based pagination.
package query

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sort orders accepted by Search.
const (
	ASC  = "ASC"
	DESC = "DESC"
)

// ErrInvalid marks a caller error in the search request (unknown sort column,
// bad sort order, out-of-domain pagination). Handlers map it to 400.
var ErrInvalid = errors.New("invalid search query")

// Options are the caller-supplied search knobs. PageNumber is zero based.
// When both pagination fields are nil the full filtered/sorted set is
// returned as one implicit page.
type Options struct {
	SortColumn string
	SortOrder  string
	PageNumber *int
	PageSize   *int
}

// Result is the search envelope returned to API callers.
type Result[T any] struct {
	Entities   []T   `json:"entities"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// Predicate reports whether an entity matches one populated criteria field.
// Predicates are ANDed together; an unset criteria field contributes none.
type Predicate[T any] func(T) bool

// Comparator orders two entities by one sortable column. It returns a
// negative value when a sorts before b, zero when they tie.
type Comparator[T any] func(a, b T) int

// Definition enumerates the sortable columns of an entity type. Sorting is
// dispatched through this closed map, never through reflection; an unknown
// column name is an ErrInvalid, not a silent default.
type Definition[T any] struct {
	Comparators map[string]Comparator[T]
	DefaultSort string
}

// Search filters, sorts and paginates a collection. The input slice must be
// in ascending identity order; ties on the sort column keep that order, so
// equal rows always come back sorted by ascending id regardless of direction.
// The input is never mutated.
func Search[T any](items []T, predicates []Predicate[T], opts Options, def Definition[T]) (Result[T], error) {
	var result Result[T]

	column := opts.SortColumn
	if column == "" {
		column = def.DefaultSort
	}
	compare, ok := def.Comparators[column]
	if !ok {
		return result, fmt.Errorf("%w: unknown sort column %q", ErrInvalid, opts.SortColumn)
	}

	order := strings.ToUpper(opts.SortOrder)
	if order == "" {
		order = ASC
	}
	if order != ASC && order != DESC {
		return result, fmt.Errorf("%w: sort order must be ASC or DESC, got %q", ErrInvalid, opts.SortOrder)
	}

	if err := validatePaging(opts); err != nil {
		return result, err
	}

	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if matchesAll(item, predicates) {
			filtered = append(filtered, item)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		c := compare(filtered[i], filtered[j])
		if order == DESC {
			return c > 0
		}
		return c < 0
	})

	total := int64(len(filtered))
	result.Total = total

	if opts.PageSize == nil {
		result.Entities = filtered
		if total > 0 {
			result.TotalPages = 1
		}
		return result, nil
	}

	size := *opts.PageSize
	page := 0
	if opts.PageNumber != nil {
		page = *opts.PageNumber
	}

	result.TotalPages = (total + int64(size) - 1) / int64(size)

	start := page * size
	if int64(start) >= total {
		// Beyond the last page: empty entities, totals still reported.
		result.Entities = []T{}
		return result, nil
	}
	end := start + size
	if int64(end) > total {
		end = int(total)
	}
	result.Entities = filtered[start:end]
	return result, nil
}

func validatePaging(opts Options) error {
	if opts.PageNumber != nil && *opts.PageNumber < 0 {
		return fmt.Errorf("%w: pageNumber must not be negative, got %d", ErrInvalid, *opts.PageNumber)
	}
	if opts.PageSize != nil && *opts.PageSize < 1 {
		return fmt.Errorf("%w: pageSize must be at least 1, got %d", ErrInvalid, *opts.PageSize)
	}
	if opts.PageNumber != nil && opts.PageSize == nil {
		return fmt.Errorf("%w: pageNumber given without pageSize", ErrInvalid)
	}
	return nil
}

func matchesAll[T any](item T, predicates []Predicate[T]) bool {
	for _, match := range predicates {
		if !match(item) {
			return false
		}
	}
	return true
}

// CompareInt orders two ints for use inside comparators.
func CompareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// CompareUint orders two uints for use inside comparators.
func CompareUint(a, b uint) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
