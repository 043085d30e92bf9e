package validator

// Validator validates request and domain structs.
//
// Business code should depend on this interface rather than a concrete
// implementation so validation can be shared and tested consistently.
type Validator interface {
	// Validate checks the given struct and returns an error describing any
	// failed rules, or nil when the data is valid.
	Validate(data any) error
}
