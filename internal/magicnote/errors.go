package magicnote

import (
	"errors"
	"fmt"
)

// Parse failure reasons. Every error returned by Parse wraps one of these.
var (
	ErrNoAmountFound       = errors.New("no amount found")
	ErrMalformedArithmetic = errors.New("malformed arithmetic")
	ErrNoIntentMatched     = errors.New("no sale, expense or credit keyword found")
)

// Stage names a step of the parse pipeline.
type Stage string

// Pipeline stages in the order they are reached.
const (
	StageStart             Stage = "start"
	StageAmountExtracted   Stage = "amount_extracted"
	StageIntentClassified  Stage = "intent_classified"
	StageEntitiesExtracted Stage = "entities_extracted"
	StageDone              Stage = "done"
)

// ParseError reports why a note could not be turned into a transaction.
// Stage is the last stage reached before the failure.
type ParseError struct {
	Err   error
	Stage Stage
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q after %s: %v", e.Input, e.Stage, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func failAt(stage Stage, input string, err error) *ParseError {
	return &ParseError{Stage: stage, Input: input, Err: err}
}
