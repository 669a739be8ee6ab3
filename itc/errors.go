package itc

import (
	"errors"
	"fmt"
)

// SemanticErrorCode categorizes invalid-semantic-state errors (§7).
type SemanticErrorCode string

const (
	// ErrOverlappingIDs indicates Sum was asked to combine two IdTrees
	// that both claim the same point of the [0,1] interval.
	ErrOverlappingIDs SemanticErrorCode = "OVERLAPPING_IDS"

	// ErrNegativeLeaf indicates an EventTree leaf carries a negative
	// value, which violates the event-tree invariant (n ranges over ℕ₀).
	ErrNegativeLeaf SemanticErrorCode = "NEGATIVE_LEAF"

	// ErrUnnormalized indicates DecodeID or DecodeEvent read a
	// structurally well-formed node whose children are not already in
	// normal form (e.g. an encoded (0,0) node, or a node whose children
	// carry liftable common slack) rather than silently renormalizing
	// it.
	ErrUnnormalized SemanticErrorCode = "UNNORMALIZED"
)

// SemanticError represents an invalid semantic state detected by a
// kernel operation on well-formed but semantically invalid input (§7).
//
// Per §4.1, Sum must never be called by the kernel on overlapping IDs;
// SemanticError with Code == ErrOverlappingIDs is reachable only when a
// caller feeds the kernel IDs it did not obtain from a kernel Fork.
type SemanticError struct {
	Code    SemanticErrorCode
	Message string
}

// Error implements the error interface.
func (e *SemanticError) Error() string {
	return fmt.Sprintf("itc: %s: %s", e.Code, e.Message)
}

func newSemanticError(code SemanticErrorCode, format string, args ...any) *SemanticError {
	return &SemanticError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// IsOverlappingIDs reports whether err is a SemanticError for
// ErrOverlappingIDs. Uses errors.As to see through wrapping.
func IsOverlappingIDs(err error) bool {
	var se *SemanticError
	return errors.As(err, &se) && se.Code == ErrOverlappingIDs
}

// IsNegativeLeaf reports whether err is a SemanticError for
// ErrNegativeLeaf.
func IsNegativeLeaf(err error) bool {
	var se *SemanticError
	return errors.As(err, &se) && se.Code == ErrNegativeLeaf
}

// IsUnnormalized reports whether err is a SemanticError for
// ErrUnnormalized.
func IsUnnormalized(err error) bool {
	var se *SemanticError
	return errors.As(err, &se) && se.Code == ErrUnnormalized
}

// ParseError represents malformed textual input (§7).
//
// Pos is a byte offset into the input string at which parsing failed.
type ParseError struct {
	Pos     int
	Input   string
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("itc: parse error at byte %d of %q: %s", e.Pos, e.Input, e.Message)
}

func newParseError(input string, pos int, format string, args ...any) *ParseError {
	return &ParseError{Pos: pos, Input: input, Message: fmt.Sprintf(format, args...)}
}

// IsMalformed reports whether err is a ParseError or DecodeError — the
// two "Malformed input" kinds from §7.
func IsMalformed(err error) bool {
	var pe *ParseError
	if errors.As(err, &pe) {
		return true
	}
	var de *DecodeError
	return errors.As(err, &de)
}

// DecodeError represents malformed binary input (§7).
//
// Offset is a byte offset into the encoded buffer at which decoding
// failed.
type DecodeError struct {
	Offset  int
	Message string
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("itc: decode error at byte %d: %s", e.Offset, e.Message)
}

func newDecodeError(offset int, format string, args ...any) *DecodeError {
	return &DecodeError{Offset: offset, Message: fmt.Sprintf(format, args...)}
}
