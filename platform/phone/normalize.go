// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Normalize reformats an international phone number to E.164. Only numbers
// already carrying a country code are reformatted; a national-format number
// is returned trimmed but otherwise untouched, so downstream validation can
// reject submissions that omit the country code.
func Normalize(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	if !strings.HasPrefix(trimmed, "+") {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, "")
	if err != nil {
		return trimmed
	}

	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}
