package middleware

import (
	"fmt"
	"regexp"
	"strings"
)

// Input validation and sanitization utilities

// allowedImageTypes lists the image MIME types the vision backends accept.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/heic": true,
	"image/heif": true,
}

// ValidateImageType checks the uploaded photo's content type against the
// allow-list.
func ValidateImageType(contentType string) error {
	mime := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	if !allowedImageTypes[mime] {
		return fmt.Errorf("unsupported image type: %s (allowed: jpeg, png, webp, heic)", contentType)
	}
	return nil
}

// ValidateBarcode validates an EAN/UPC barcode string
func ValidateBarcode(code string) error {
	if code == "" {
		return fmt.Errorf("barcode cannot be empty")
	}
	matched, _ := regexp.MatchString(`^[0-9]{6,14}$`, code)
	if !matched {
		return fmt.Errorf("invalid barcode format (6-14 digits)")
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}

// ValidateDays validates days parameter
func ValidateDays(days int) int {
	if days <= 0 {
		return 7 // default
	}
	if days > 365 {
		return 365 // max 1 year
	}
	return days
}
