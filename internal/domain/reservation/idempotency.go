package reservation

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"table-reserve/internal/domain/venue"
)

// DeriveIdempotencyKey hashes the booking identity fields. The timestamp is
// excluded on purpose: a retried identical request must collide with the
// original instead of creating a second reservation.
func DeriveIdempotencyKey(date Date, slot venue.SlotID, table venue.TableID, contact Contact) string {
	parts := []string{
		date.String(),
		slot.String(),
		strconv.Itoa(int(table)),
		contact.Phone(),
		contact.Email(),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
