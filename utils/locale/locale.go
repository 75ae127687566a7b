// Package locale resolves per-locale overlay rows against their base record.
// A base record holds default-locale values; overlay rows carry substitutions
// for one locale each. Resolution is a pure read-time projection.
package locale

// Overlay is implemented by overlay row types that know which locale they
// carry values for.
type Overlay interface {
	OverlayLocale() string
}

// Match returns the overlay row for the requested locale code, if any.
func Match[T Overlay](rows []T, code string) (T, bool) {
	for _, row := range rows {
		if row.OverlayLocale() == code {
			return row, true
		}
	}
	var zero T
	return zero, false
}

// Has reports whether an overlay row exists for the requested locale code.
// Records without one are excluded from locale-filtered result sets; there is
// no fallback to default-locale values.
func Has[T Overlay](rows []T, code string) bool {
	_, ok := Match(rows, code)
	return ok
}
