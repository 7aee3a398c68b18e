// internal/matching/anonymize/anonymize.go

// Package anonymize derives stable display identifiers for guides whose
// matches have not been accepted yet. The label is a display convenience, not
// a security boundary: two guide IDs may collide, and the real identifier is
// only released by the booking workflow after acceptance.
package anonymize

import (
	"crypto/sha256"
	"fmt"
	"strconv"
)

// displayRange bounds the numeric label space ("Guide #0000".."Guide #9999").
const displayRange = 10000

// GenerateAnonymousID deterministically maps a guide ID to a zero-padded
// display label like "Guide #0042".
func GenerateAnonymousID(guideID string) string {
	sum := sha256.Sum256([]byte(guideID))
	slice := fmt.Sprintf("%x", sum[:8])
	n, _ := strconv.ParseUint(slice, 16, 64)
	return fmt.Sprintf("Guide #%04d", n%displayRange)
}
