// Package phone normalizes resident phone numbers.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Numbers without a country code are assumed Indonesian.
const defaultRegion = "ID"

// NormalizeE164 formats input as E.164. Input that cannot be parsed or is
// not a valid number passes through trimmed; storage never rejects a phone
// number, it only canonicalizes the ones it can.
func NormalizeE164(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}
