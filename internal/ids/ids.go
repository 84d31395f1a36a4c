package ids

import (
	"encoding/hex"

	"github.com/google/uuid"
)

const (
	PrefixUser         = "usr"
	PrefixBusiness     = "biz"
	PrefixCircle       = "cir"
	PrefixEvent        = "evt"
	PrefixPromotion    = "promo"
	PrefixMedia        = "med"
	PrefixNotification = "notif"
	PrefixReport       = "rep"
)

// GenerateID returns prefix + "_" + 8 lowercase hex characters taken from a
// random UUID. Callers do not check for collisions.
func GenerateID(prefix string) string {
	u := uuid.New()
	return prefix + "_" + hex.EncodeToString(u[:4])
}
