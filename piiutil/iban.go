package piiutil

import "strings"

const (
	ibanKeepHead = 4
	ibanKeepTail = 4
	ibanKeepCode = 2
)

// MaskIBAN masks an account number for logs and audit trails. Spaces are
// dropped and letters uppercased first; the country code and check digits
// stay visible along with the last four characters.
//
// Examples:
//
//	"GB82 WEST 1234 5698 7654 32" -> "GB82**************5432"
//	"DE22 8472"                   -> "DE******"   (too short, keep country only)
//	"D"                           -> "*"
//	""                            -> ""
func MaskIBAN(s string) string {
	s = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	if s == "" {
		return ""
	}

	runes := []rune(s)
	n := len(runes)

	keepHead, keepTail := ibanKeepHead, ibanKeepTail
	if n <= ibanKeepHead+ibanKeepTail {
		keepHead, keepTail = ibanKeepCode, 0
	}
	if keepHead >= n {
		keepHead = 0
	}

	for i := keepHead; i < n-keepTail; i++ {
		runes[i] = '*'
	}
	return string(runes)
}
