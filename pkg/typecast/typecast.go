package typecast

// ToPtr returns a pointer to a copy of v.
// It is used for optional fields that are filled from values held by the caller.
func ToPtr[T any](v T) *T {
	return &v
}
