package engine

import "errors"

// Errors returned by ApplyAction. All of them leave the state untouched; the
// caller re-queries LegalActions and re-prompts.
var (
	// ErrInvalidTarget is returned for empty or out-of-range slot references.
	ErrInvalidTarget = errors.New("invalid target")
	// ErrIllegalAction is returned for actions not legal in the current phase.
	ErrIllegalAction = errors.New("illegal action")
	// ErrResourceExhausted is returned when an effect needs a card that no pile can supply.
	ErrResourceExhausted = errors.New("resource exhausted")
)
