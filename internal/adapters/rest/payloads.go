package rest

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chimera-sh/chimera-cli/internal/domain"
)

// flexID tolerates backends that serialize ids as JSON numbers or strings.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = ""
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode id %s: %w", trimmed, err)
	}
	*f = flexID(n.String())
	return nil
}

type userPayload struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

func (p userPayload) toDomain() domain.User {
	return domain.User{
		ID:        p.ID,
		Email:     p.Email,
		CreatedAt: parseTimestamp(p.CreatedAt),
	}
}

type sessionPayload struct {
	ID          int64   `json:"id"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	CompletedAt *string `json:"completed_at"`
}

func (p sessionPayload) toDomain() domain.Session {
	session := domain.Session{
		ID:        p.ID,
		Status:    p.Status,
		CreatedAt: parseTimestamp(p.CreatedAt),
	}

	if p.CompletedAt != nil && *p.CompletedAt != "" {
		completed := parseTimestamp(*p.CompletedAt)
		session.CompletedAt = &completed
	}

	return session
}

type sessionsEnvelope struct {
	Sessions []sessionPayload `json:"sessions"`
}

type bucketPayload struct {
	ID          int64  `json:"id"`
	BucketName  string `json:"bucket_name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

func (p bucketPayload) toDomain() domain.Persona {
	return domain.Persona{
		ID:          domain.PersonaID(p.ID),
		Name:        p.BucketName,
		Description: p.Description,
		CreatedAt:   parseTimestamp(p.CreatedAt),
	}
}

type bucketsEnvelope struct {
	Buckets []bucketPayload `json:"buckets"`
}

type bucketRefPayload struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type accountPayload struct {
	ID          flexID            `json:"id"`
	Platform    string            `json:"platform"`
	AccountName string            `json:"account_name"`
	URL         string            `json:"url"`
	Bucket      *bucketRefPayload `json:"bucket"`
}

func (p accountPayload) toDomain() domain.Account {
	account := domain.Account{
		ID:          domain.AccountID(p.ID),
		Platform:    p.Platform,
		AccountName: p.AccountName,
		URL:         p.URL,
	}

	if p.Bucket != nil {
		account.Bucket = &domain.PersonaRef{
			ID:   domain.PersonaID(p.Bucket.ID),
			Name: p.Bucket.Name,
		}
	}

	return account
}

type accountsEnvelope struct {
	Accounts []accountPayload `json:"accounts"`
}

type createBucketRequest struct {
	BucketName  string `json:"bucket_name"`
	Description string `json:"description"`
}

type renameBucketRequest struct {
	BucketName string `json:"bucket_name"`
}

// reassignRequest always carries bucket_id, serialized as an explicit null
// when the account is being unassigned.
type reassignRequest struct {
	BucketID *int64 `json:"bucket_id"`
}

type searchRequest struct {
	Username string `json:"username"`
}

type searchResponse struct {
	TotalFound       int `json:"total_found"`
	NewAccountsSaved int `json:"new_accounts_saved"`
}

// scopedRequest omits bucket_id entirely for the all-accounts scope; the
// absence of the field is the wildcard, not a sentinel value.
type scopedRequest struct {
	BucketID *int64 `json:"bucket_id,omitempty"`
}

type summaryResponse struct {
	Summary string `json:"summary"`
}

type splitResponse struct {
	BucketsCreated   int                  `json:"buckets_created"`
	AccountsAssigned int                  `json:"accounts_assigned"`
	Personas         []splitPersonaPayload `json:"personas"`
}

type splitPersonaPayload struct {
	Name      string   `json:"name"`
	Platforms []string `json:"platforms"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// parseTimestamp accepts the backend's isoformat timestamps, with or
// without zone and fractional seconds. Unparseable input degrades to the
// zero time rather than failing the whole response.
func parseTimestamp(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}

	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts
		}
	}

	if unix, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC()
	}

	return time.Time{}
}
