package middleware

import (
	"fmt"
	"regexp"
	"strings"
)

// Input validation and sanitization utilities

// ValidateAnalysisType checks if the analysis type is in the allowed list
func ValidateAnalysisType(analysisType string) error {
	allowed := map[string]bool{
		"bid_patterns":       true,
		"company_background": true,
	}

	if !allowed[strings.ToLower(analysisType)] {
		return fmt.Errorf("invalid analysis type: %s (allowed: bid_patterns, company_background)", analysisType)
	}
	return nil
}

// ValidateEntityID validates tender/supplier identifiers coming from callers
func ValidateEntityID(id string) error {
	if id == "" {
		return fmt.Errorf("entity ID cannot be empty")
	}

	// Allow alphanumeric, dash, underscore (max 64 chars)
	pattern := `^[a-zA-Z0-9_-]{1,64}$`
	matched, _ := regexp.MatchString(pattern, id)
	if !matched {
		return fmt.Errorf("invalid entity ID format (alphanumeric, dash, underscore only, max 64 chars)")
	}

	return nil
}

// ValidateSupplierIDs validates a supplier id list
func ValidateSupplierIDs(ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("supplier ID list cannot be empty")
	}
	for _, id := range ids {
		if err := ValidateEntityID(id); err != nil {
			return fmt.Errorf("supplier %q: %w", id, err)
		}
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

// ValidateTenantID validates tenant ID format
func ValidateTenantID(tenant string) error {
	if tenant == "" {
		return fmt.Errorf("tenant ID cannot be empty")
	}

	// Allow alphanumeric, dash, underscore (max 64 chars)
	pattern := `^[a-zA-Z0-9_-]{1,64}$`
	matched, _ := regexp.MatchString(pattern, tenant)
	if !matched {
		return fmt.Errorf("invalid tenant ID format (alphanumeric, dash, underscore only, max 64 chars)")
	}

	return nil
}

// ValidateAnalysisID validates analysis ID format
func ValidateAnalysisID(analysisID string) error {
	if analysisID == "" {
		return fmt.Errorf("analysis ID cannot be empty")
	}

	// UUID pattern with type suffix: uuid-analysisType
	pattern := `^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}-.+$`
	matched, _ := regexp.MatchString(pattern, analysisID)
	if !matched {
		return fmt.Errorf("invalid analysis ID format")
	}

	return nil
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
