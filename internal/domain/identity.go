package domain

import (
	"time"

	"github.com/google/uuid"
)

// DemoIdentityID is the reserved identity whose destinations never touch the
// remote store. All demo data lives in the local scoped store and is wiped in
// full on logout.
var DemoIdentityID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// Identity is a resolved user account (real or the reserved demo account).
type Identity struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// IsDemo reports whether this identity is the reserved demo account.
func (i Identity) IsDemo() bool {
	return i.ID == DemoIdentityID
}
