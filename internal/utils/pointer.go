package utils

// Ptr returns a pointer to v. It is a generic convenience helper that avoids
// the need for a temporary variable when the address of a literal or computed
// value must be passed where a pointer is expected.
//
// Example:
//
//	input := perplexity.SearchInput{Query: "go", MaxResults: utils.Ptr(5)}
func Ptr[T any](v T) *T {
	return &v
}

// Deref returns *p, or fallback when p is nil. Presence is decided by the
// pointer alone, so a present zero value is returned as is.
func Deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
