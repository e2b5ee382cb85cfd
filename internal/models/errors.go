package models

import "fmt"

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrPackageParse ErrorType = iota
	ErrFormat
	ErrFileOp
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrPackageParse:
		return "PackageParse"
	case ErrFormat:
		return "Format"
	case ErrFileOp:
		return "FileOp"
	default:
		return "Unknown"
	}
}

// ToolError represents an error during package inspection
type ToolError struct {
	Type ErrorType
	Path string
	Err  error
}

// Error implements the error interface
func (e *ToolError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Path, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *ToolError) Unwrap() error {
	return e.Err
}
