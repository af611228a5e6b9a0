package utils

// Value dereferences v, returning the zero value for nil. The API leaves
// optional fields out, so most of them decode as pointers.
func Value[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}

// Ptr is used to fill optional fields of partial updates.
func Ptr[T any](v T) *T {
	return &v
}
