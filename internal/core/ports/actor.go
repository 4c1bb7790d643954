package ports

import "github.com/google/uuid"

// Actor is the authenticated identity extracted from the JWT claims.
// Services use it for ownership and role checks.
type Actor struct {
	UserID uuid.UUID
	Role   string
}
