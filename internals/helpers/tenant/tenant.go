package tenant

import (
	"time"

	"github.com/google/uuid"
)

// Tenant = satu gym. Semua operasi domain menerima Tenant eksplisit.
type Tenant struct {
	GymID    uuid.UUID
	Location *time.Location
}

func New(gymID uuid.UUID, loc *time.Location) Tenant {
	if loc == nil {
		loc = time.UTC
	}
	return Tenant{GymID: gymID, Location: loc}
}
