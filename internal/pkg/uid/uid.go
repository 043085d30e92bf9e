// Package uid provides unique identifier generators.
//
// Two shapes are supported: StringID for opaque string identifiers (UUIDs,
// object IDs) and NumberID for sortable numeric identifiers used as database
// primary keys.
package uid

// StringID generates opaque string identifiers.
type StringID interface {
	// Generate returns a new unique string identifier.
	Generate() string
}

// NumberID generates sortable numeric identifiers.
type NumberID interface {
	// Generate returns a new unique numeric identifier.
	Generate() int64
}
