// Package uid provides generators for unique identifiers.
//
// Two shapes are supported: numeric IDs (used as database primary keys) and
// string IDs (used for correlation IDs and token identifiers).
package uid

// NumberID generates unique numeric identifiers.
type NumberID interface {
	Generate() int64
}

// StringID generates unique string identifiers.
type StringID interface {
	Generate() string
}
