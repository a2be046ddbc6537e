package utils

// Value dereferences v, returning the zero value for nil.
func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}

// ValueOK dereferences v and reports whether it was set.
func ValueOK[T any](v *T) (T, bool) {
	return Value(v), v != nil
}

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T {
	return &v
}

// Clone returns a pointer to a copy of *v, or nil.
// Values holding optional fields hand out clones so callers cannot reach
// their internal state.
func Clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	return Ptr(*v)
}
