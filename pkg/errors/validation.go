package errors

import (
	"strings"
	"unicode"
)

// MaxDimension bounds rows and columns of a puzzle grid.
const MaxDimension = 500

// ValidateEdgeID validates an edge identifier.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters or whitespace
//   - Maximum length of 128 characters
func ValidateEdgeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidEdge, "edge id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidEdge, "edge id too long (max 128 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidEdge, "edge id %q contains whitespace or control characters", id)
		}
	}
	return nil
}

// ValidateDimensions checks that a grid has between 1 and MaxDimension rows and columns.
func ValidateDimensions(rows, columns int) error {
	if rows < 1 || columns < 1 {
		return New(ErrCodeInvalidConfig, "rows and columns must be at least 1 (got %dx%d)", rows, columns)
	}
	if rows > MaxDimension || columns > MaxDimension {
		return New(ErrCodeInvalidConfig, "rows and columns must be at most %d (got %dx%d)", MaxDimension, rows, columns)
	}
	return nil
}

// ValidateArchiveName validates a file name used inside an export archive.
// It ensures the name is a plain base name without path components.
func ValidateArchiveName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "archive entry name cannot be empty")
	}
	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "archive entry name cannot contain path separators")
	}
	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidPath, "archive entry name cannot contain path traversal sequences (..)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "archive entry name contains invalid characters")
		}
	}
	return nil
}
