package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

// HashContact returns a stable SHA-256 key for an email or phone number so
// logs never carry the raw value. Phone numbers hash by their digits only.
func HashContact(contact string) string {
	contact = strings.ToLower(strings.TrimSpace(contact))
	if !strings.Contains(contact, "@") {
		contact = strings.Map(func(r rune) rune {
			if unicode.IsDigit(r) {
				return r
			}
			return -1
		}, contact)
	}
	sum := sha256.Sum256([]byte(contact))
	return hex.EncodeToString(sum[:])
}
