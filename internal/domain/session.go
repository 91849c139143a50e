package domain

import (
	"strings"
	"time"
)

// Session is a diagnostic session record created by the backend when a
// discovery search runs.
type Session struct {
	ID          int64
	Status      string
	CreatedAt   time.Time
	CompletedAt *time.Time
}

func (s Session) Completed() bool {
	return s.CompletedAt != nil
}

type User struct {
	ID        int64
	Email     string
	CreatedAt time.Time
}

// DisplayName returns the local part of the user's email, or a fallback
// when no email is on record.
func (u User) DisplayName() string {
	if u.Email == "" {
		return "there"
	}

	if at := strings.IndexByte(u.Email, '@'); at > 0 {
		return u.Email[:at]
	}

	return u.Email
}
