package patch

// Coalesce returns *ptr, or fallback when ptr is nil. Optional request
// fields bind to pointers so an explicit zero stays distinguishable.
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}
