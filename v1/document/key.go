package document

import (
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// SanitizeID strips every character outside [a-zA-Z0-9] from a document key.
func SanitizeID(id string) string {
	return nonAlphanumeric.ReplaceAllString(id, "")
}

// PrecedingKey computes the key immediately before id in the store's native
// key ordering. Keys are 128-bit values ordered like their hex rendering, so
// this is a big-endian decrement with borrow. The REST store lists documents
// strictly after a fromID, which makes the preceding key the way to read back
// a just-written revision.
//
// The result is 32 upper-case hex characters. The mapping only holds for
// stores assigning 128-bit keys in this byte order.
func PrecedingKey(id string) (string, error) {
	key, err := uuid.Parse(id)
	if err != nil {
		return "", Validationf("key %q is not a 128-bit hex value: %v", id, err)
	}
	for i := len(key) - 1; i >= 0; i-- {
		key[i]--
		if key[i] != 0xFF {
			break
		}
	}
	return strings.ToUpper(hex.EncodeToString(key[:])), nil
}
