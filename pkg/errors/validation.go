package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidatePath validates an output or pattern file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateStyleDeclaration checks that an SVG style attribute value can be
// embedded verbatim in a double-quoted attribute.
func ValidateStyleDeclaration(style string) error {
	if strings.TrimSpace(style) == "" {
		return New(ErrCodeInvalidStyle, "style declaration cannot be empty")
	}
	for _, r := range style {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidStyle, "style declaration contains control characters")
		}
	}
	if strings.ContainsAny(style, `"<>&`) {
		return New(ErrCodeInvalidStyle, "style declaration contains markup characters: %q", style)
	}
	return nil
}

// ValidateSize checks a drawing size pair (cell or page size).
func ValidateSize(name string, w, h float64) error {
	for _, v := range []float64{w, h} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return New(ErrCodeInvalidInput, "%s must be positive, got %gx%g", name, w, h)
		}
	}
	return nil
}
