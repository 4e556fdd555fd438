package utils

// Value dereferences v, returning the zero value for nil
func Value[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}

// ValueOr dereferences v, returning fallback for nil or a zero value
func ValueOr[T comparable](v *T, fallback T) T {
	var zero T
	if v == nil || *v == zero {
		return fallback
	}
	return *v
}

// Ptr returns a pointer to a copy of v, for optional request fields
func Ptr[T any](v T) *T {
	return &v
}
