package ptr

func To[T any](v T) *T {
	return &v
}

// NonEmpty returns nil for the empty string so optional text columns stay NULL.
func NonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
