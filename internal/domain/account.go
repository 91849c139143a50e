package domain

type AccountID string

// Account is a discovered online account as reported by the directory
// backend. Accounts are never created or deleted locally; the client only
// reassigns their persona.
type Account struct {
	ID          AccountID
	Platform    string
	AccountName string
	URL         string
	Bucket      *PersonaRef
}

// PersonaRef is the persona an account is assigned to. A nil reference
// means the account is unassigned.
type PersonaRef struct {
	ID   PersonaID
	Name string
}

func (a Account) Assigned() bool {
	return a.Bucket != nil
}

// In reports whether the account belongs to the given persona.
func (a Account) In(id PersonaID) bool {
	return a.Bucket != nil && a.Bucket.ID == id
}
