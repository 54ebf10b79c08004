package uid

// NumberID generates unique int64 identifiers (database primary keys).
type NumberID interface {
	// Generate returns a new unique int64 ID.
	Generate() int64
}

// StringID generates unique string identifiers (correlation IDs, opaque tokens).
type StringID interface {
	// Generate returns a new unique string ID.
	Generate() string
}
