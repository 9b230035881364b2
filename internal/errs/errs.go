package errs

import "fmt"

// AbstractError reports a call to an operation that has no implementation
// at this level of a hierarchy.
type AbstractError struct {
	Method string
}

func NewAbstractError(method string) *AbstractError {
	return &AbstractError{Method: method}
}

func (e *AbstractError) Error() string {
	return fmt.Sprintf("abstract method '%s' was called", e.Method)
}

// ConversionError is raised while turning a parse tree into an AST.
type ConversionError struct {
	Msg string
}

// Conversionf builds a ConversionError with a formatted message.
func Conversionf(format string, args ...any) *ConversionError {
	return &ConversionError{Msg: fmt.Sprintf(format, args...)}
}

func (e *ConversionError) Error() string {
	return e.Msg
}

// ValidationError - аргумент не прошёл проверку типа параметра.
// Line is 1-based, Column is 0-based.
type ValidationError struct {
	File   string
	Line   uint32
	Column uint32
	Msg    string
}

func NewValidationError(file string, line, column uint32, msg string) *ValidationError {
	return &ValidationError{File: file, Line: line, Column: column, Msg: msg}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Msg)
}

// ParsingError reports that a file failed to parse.
type ParsingError struct {
	File   string
	Line   uint32
	Column uint32
	Msg    string
}

func NewParsingError(file string, line, column uint32, msg string) *ParsingError {
	return &ParsingError{File: file, Line: line, Column: column, Msg: msg}
}

func (e *ParsingError) Error() string {
	return fmt.Sprintf("failed to parse %s at line %d, column %d: %s", e.File, e.Line, e.Column, e.Msg)
}

// ProjectStructureError reports an invalid project layout.
type ProjectStructureError struct {
	Path string
	Msg  string
}

func NewProjectStructureError(path, msg string) *ProjectStructureError {
	return &ProjectStructureError{Path: path, Msg: msg}
}

func (e *ProjectStructureError) Error() string {
	return fmt.Sprintf("invalid project structure at '%s': %s", e.Path, e.Msg)
}
