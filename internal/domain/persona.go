package domain

import (
	"strings"
	"time"
)

type PersonaID int64

// Persona is a user-defined grouping of accounts, called a bucket on the
// wire. Every account belongs to at most one persona.
type Persona struct {
	ID          PersonaID
	Name        string
	Description string
	CreatedAt   time.Time
}

// ReservedPersonaName is the system persona that always exists and can
// never be renamed or deleted. The backend enforces this too, but the
// client guards before issuing a request so the failure mode is a local
// explanation rather than a round-trip.
const ReservedPersonaName = "Unassigned"

func IsReservedPersonaName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), ReservedPersonaName)
}

func (p Persona) Reserved() bool {
	return IsReservedPersonaName(p.Name)
}
