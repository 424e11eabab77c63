package errors

import (
	"strings"
	"unicode"
)

// ValidateSize validates a requested subset size.
// Sizes larger than the input are allowed and simply produce nothing.
func ValidateSize(k int) error {
	if k < 0 {
		return New(ErrCodeInvalidArgument, "size must not be negative, got %d", k)
	}
	return nil
}

// ValidateCount validates an element count used for sizing an enumeration.
func ValidateCount(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidArgument, "element count must not be negative, got %d", n)
	}
	return nil
}

// ValidatePath validates an input file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateElement validates a single element read from user input.
// Elements are printed one per field, so they must not contain line breaks.
func ValidateElement(elem string) error {
	if strings.ContainsAny(elem, "\r\n\x00") {
		return New(ErrCodeInvalidInput, "element %q contains a line break or null byte", elem)
	}
	return nil
}
