package core

import (
	"errors"
	"fmt"
)

// Error classes surfaced by the engine. All of them are caller contract
// violations or bad level assets; none is retried internally.
var (
	// ErrMalformedLevel is matched by every LevelError.
	ErrMalformedLevel = errors.New("malformed level")

	// ErrOutOfBounds is matched by every BoundsError.
	ErrOutOfBounds = errors.New("out of bounds")

	// ErrInvalidState reports an operation called while its precondition
	// does not hold (remaining power time while not powered, stepping an
	// engine that has no level).
	ErrInvalidState = errors.New("invalid state")

	// ErrInvariantViolation reports a broken internal invariant.
	ErrInvariantViolation = errors.New("invariant violation")
)

// LevelErrorCode identifies why a level was rejected.
type LevelErrorCode string

const (
	CodeTooShort       LevelErrorCode = "TOO_SHORT"
	CodeTooNarrow      LevelErrorCode = "TOO_NARROW"
	CodeNotRectangular LevelErrorCode = "NOT_RECTANGULAR"
	CodeInvalidSymbol  LevelErrorCode = "INVALID_SYMBOL"
	CodeMultiplePlayer LevelErrorCode = "MULTIPLE_PLAYERS"
	CodeNoPlayer       LevelErrorCode = "NO_PLAYER"
	CodeNoSmallItems   LevelErrorCode = "NO_SMALL_ITEMS"
	CodeNoGhosts       LevelErrorCode = "NO_GHOSTS"
)

// LevelError contains details about a level validation failure.
type LevelError struct {
	Code    LevelErrorCode
	Message string
}

func (e LevelError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Is makes errors.Is(err, ErrMalformedLevel) true for any LevelError.
func (e LevelError) Is(target error) bool {
	return target == ErrMalformedLevel
}

func levelErr(code LevelErrorCode, format string, args ...any) error {
	return LevelError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Axis names the grid dimension a BoundsError refers to.
type Axis string

const (
	AxisRow    Axis = "row"
	AxisColumn Axis = "column"
)

// BoundsError reports a grid query outside the level.
type BoundsError struct {
	Axis  Axis
	Index int
	Limit int
}

func (e BoundsError) Error() string {
	return fmt.Sprintf("%s index %d out of bounds [0,%d)", e.Axis, e.Index, e.Limit)
}

// Is makes errors.Is(err, ErrOutOfBounds) true for any BoundsError.
func (e BoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}
