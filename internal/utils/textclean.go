package utils

import (
	"regexp"
	"strings"
)

var (
	trailingJSONArray = regexp.MustCompile(`(?s)\s*\[\s*\{.*\}\s*\]\s*$`)
	inlineJSONObject  = regexp.MustCompile(`\s*\{[^}]*\}\s*`)
)

// CleanTextFromJSON drops JSON fragments the assistant sometimes appends to
// the spoken text (a trailing array of message objects, stray objects).
func CleanTextFromJSON(text string) string {
	if text == "" {
		return text
	}
	cleaned := trailingJSONArray.ReplaceAllString(text, "")
	cleaned = inlineJSONObject.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}
