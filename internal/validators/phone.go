package validators

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is assumed for numbers typed without a country code.
const DefaultRegion = "BR"

// NormalizePhone returns the number as E.164 digits without the leading "+". The
// result is what the WhatsApp notifier dials and what identifies a client inside a
// barbershop.
func NormalizePhone(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	num, err := phonenumbers.Parse(raw, DefaultRegion)
	if err != nil || !phonenumbers.IsPossibleNumber(num) {
		return "", false
	}

	return strings.TrimPrefix(phonenumbers.Format(num, phonenumbers.E164), "+"), true
}
