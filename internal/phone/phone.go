// Package phone normalizes Turkish mobile numbers to E.164.
package phone

import "strings"

// normalize strips everything but digits and reduces common prefixes
// (leading 00, national 0, country code 90) to the bare 10-digit national
// number.
func normalize(input string) string {
	var b strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	digits = strings.TrimPrefix(digits, "00")

	switch {
	case len(digits) == 11 && strings.HasPrefix(digits, "0"):
		return digits[1:]
	case len(digits) == 12 && strings.HasPrefix(digits, "90"):
		return digits[2:]
	default:
		return digits
	}
}

// isValidMobile reports whether d10 is a 10-digit Turkish mobile number.
// Mobile numbers start with 5; anything else (landlines, short codes) is
// rejected.
func isValidMobile(d10 string) bool {
	if len(d10) != 10 {
		return false
	}
	for _, r := range d10 {
		if r < '0' || r > '9' {
			return false
		}
	}
	return strings.HasPrefix(d10, "5")
}

// ToE164 normalizes input to "+905XXXXXXXXX". The second return is false
// when the input is not a valid Turkish mobile number in any accepted form.
func ToE164(input string) (string, bool) {
	d10 := normalize(input)
	if !isValidMobile(d10) {
		return "", false
	}
	return "+90" + d10, true
}
