// Package errors provides standardized error messaging for the xs front end.
package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/go-stack/stack"

	"github.com/xs-lang/xs/internal/position"
)

// ErrorCategory represents different categories of errors
type ErrorCategory string

const (
	CategoryLex      ErrorCategory = "LEX"
	CategoryParse    ErrorCategory = "PARSE"
	CategorySource   ErrorCategory = "SOURCE"
	CategoryInternal ErrorCategory = "INTERNAL"
)

// Error codes shared by the tokenizer and the parser.
const (
	CodeUnterminatedString   = "UNTERMINATED_STRING"
	CodeUnknownEscape        = "UNKNOWN_ESCAPE"
	CodeUnterminatedComment  = "UNTERMINATED_COMMENT"
	CodeUnmatchedCommentEnd  = "UNMATCHED_COMMENT_END"
	CodeMalformedNumber      = "MALFORMED_NUMBER"
	CodeUnexpectedChar       = "UNEXPECTED_CHARACTER"
	CodeUnreadableSource     = "UNREADABLE_SOURCE"
	CodeInvalidEncoding      = "INVALID_ENCODING"
	CodeUnexpectedToken      = "UNEXPECTED_TOKEN"
	CodeExpectedExpression   = "EXPECTED_EXPRESSION"
	CodeIncompleteExpression = "INCOMPLETE_EXPRESSION"
	CodeExpectedUnary        = "EXPECTED_UNARY_OPERATOR"
	CodeUnexpectedOperator   = "UNEXPECTED_OPERATOR"
	CodeLvalueNotFound       = "LVALUE_NOT_FOUND"
	CodeInvalidLvalue        = "INVALID_LVALUE"
	CodeUntypedVariable      = "UNTYPED_VARIABLE"
	CodeConstValueRequired   = "CONST_VALUE_REQUIRED"
	CodeUnmatchedStatement   = "UNMATCHED_STATEMENT"
	CodeMissingName          = "MISSING_NAME"
	CodeMissingBody          = "MISSING_BODY"
	CodeUnexpectedBody       = "UNEXPECTED_BODY"
	CodeInvalidArrayLength   = "INVALID_ARRAY_LENGTH"
	CodeUnknownPrecedence    = "UNKNOWN_PRECEDENCE"
)

// StandardError provides a consistent error format
type StandardError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Pos      position.Position
	End      position.Position // end of the offending token, zero when unknown
	Context  map[string]interface{}
	Caller   string
}

// Error implements the error interface. Positioned errors carry the
// "[row,col] " prefix expected by callers that display them verbatim.
func (e *StandardError) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("[%d,%d] %s", e.Pos.Line, e.Pos.Column, e.Message)
	}
	return e.Message
}

// Span returns the source range the error points at.
func (e *StandardError) Span() position.Span {
	return position.Span{Start: e.Pos, End: e.End}
}

// Detail renders the category, code and originating function as well.
func (e *StandardError) Detail() string {
	return fmt.Sprintf("[%s:%s] %s (caller: %s)", e.Category, e.Code, e.Error(), e.Caller)
}

// NewStandardError creates a new standardized error
func NewStandardError(category ErrorCategory, code, message string, pos position.Position, context map[string]interface{}) *StandardError {
	return &StandardError{
		Category: category,
		Code:     code,
		Message:  message,
		Pos:      pos,
		Context:  context,
		Caller:   fmt.Sprintf("%+n", stack.Caller(2)),
	}
}

// Lex reports a tokenizer failure at pos.
func Lex(pos position.Position, code, format string, args ...interface{}) *StandardError {
	return NewStandardError(CategoryLex, code, fmt.Sprintf(format, args...), pos, nil)
}

// Parse reports a grammar failure at pos.
func Parse(pos position.Position, code, format string, args ...interface{}) *StandardError {
	return NewStandardError(CategoryParse, code, fmt.Sprintf(format, args...), pos, nil)
}

// Source reports a file that could not be loaded.
func Source(path, code string, cause error) *StandardError {
	msg := fmt.Sprintf("cannot load %s", path)
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return NewStandardError(CategorySource, code, msg, position.Position{Filename: path},
		map[string]interface{}{"path": path, "cause": cause})
}

// Internal reports a broken invariant of the front end itself. It is raised
// with panic, never returned to users as a Lex or Parse error.
func Internal(code, format string, args ...interface{}) *StandardError {
	return NewStandardError(CategoryInternal, code, fmt.Sprintf(format, args...), position.Position{}, nil)
}

// CategoryOf returns the category of the first StandardError in err's chain.
func CategoryOf(err error) (ErrorCategory, bool) {
	var se *StandardError
	if stderrors.As(err, &se) {
		return se.Category, true
	}
	return "", false
}

// CodeOf returns the code of the first StandardError in err's chain.
func CodeOf(err error) string {
	var se *StandardError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsLex reports whether err is a tokenizer error.
func IsLex(err error) bool {
	c, ok := CategoryOf(err)
	return ok && c == CategoryLex
}

// IsParse reports whether err is a parser error.
func IsParse(err error) bool {
	c, ok := CategoryOf(err)
	return ok && c == CategoryParse
}
