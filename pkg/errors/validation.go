package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateFraction checks that v lies in the half-open interval [0, 1).
// name is used in the error message.
func ValidateFraction(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v >= 1 {
		return New(ErrCodeInvalidParameter, "%s must be in [0, 1), got %g", name, v)
	}
	return nil
}

// ValidatePadding checks the left, right and top paddings of a text block.
// lpad and rpad are fractions in [0, 1) that together must leave some
// drawable width; tpad only has to be non-negative.
func ValidatePadding(lpad, rpad, tpad float64) error {
	if err := ValidateFraction("lpad", lpad); err != nil {
		return err
	}
	if err := ValidateFraction("rpad", rpad); err != nil {
		return err
	}
	if err := ValidateNonNegative("tpad", tpad); err != nil {
		return err
	}
	if lpad+rpad >= 1 {
		return New(ErrCodeInvalidParameter, "lpad + rpad must be less than 1, got %g", lpad+rpad)
	}
	return nil
}

// ValidateRange checks that start < end and both are finite.
func ValidateRange(name string, start, end float64) error {
	if math.IsNaN(start) || math.IsNaN(end) || math.IsInf(start, 0) || math.IsInf(end, 0) {
		return New(ErrCodeInvalidParameter, "%s must be finite, got (%g, %g)", name, start, end)
	}
	if start >= end {
		return New(ErrCodeInvalidParameter, "%s start must be less than end, got (%g, %g)", name, start, end)
	}
	return nil
}

// ValidatePositive checks that v is strictly positive.
func ValidatePositive(name string, v float64) error {
	if math.IsNaN(v) || v <= 0 {
		return New(ErrCodeInvalidParameter, "%s must be positive, got %g", name, v)
	}
	return nil
}

// ValidateNonNegative checks that v is zero or positive.
func ValidateNonNegative(name string, v float64) error {
	if math.IsNaN(v) || v < 0 {
		return New(ErrCodeInvalidParameter, "%s must not be negative, got %g", name, v)
	}
	return nil
}

// ValidatePath validates an output or input file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No parent directory traversal after cleaning
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	if len(path) > 500 {
		return New(ErrCodeInvalidPath, "path too long (max 500 characters)")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}
	clean := filepath.ToSlash(filepath.Clean(path))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return New(ErrCodeInvalidPath, "path escapes the working directory: %s", path)
	}
	return nil
}
