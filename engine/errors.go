package engine

import "errors"

// Sentinel errors for structural violations. Illegal moves are not errors;
// they surface as a false return from the move methods with no mutation.
var (
	// ErrInvalidOperation reports a precondition violation such as removing
	// a card from an empty pile. Always a programming error.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrCapacityExceeded reports an add beyond a pile's MaxCards.
	ErrCapacityExceeded = errors.New("pile capacity exceeded")

	// ErrUnknownCondition reports a blocking or win condition whose kind is
	// not recognized by the interpreter. Validation at construction makes
	// this unreachable for well-formed rules.
	ErrUnknownCondition = errors.New("unrecognized declarative condition")

	// ErrInvalidRules reports a rules bundle that failed the construction
	// time validation pass.
	ErrInvalidRules = errors.New("invalid rules configuration")
)
