package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservedPersonaNameMatching(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		reserved bool
	}{
		{name: "exact", input: "Unassigned", reserved: true},
		{name: "lowercase", input: "unassigned", reserved: true},
		{name: "uppercase", input: "UNASSIGNED", reserved: true},
		{name: "padded", input: "  unassigned  ", reserved: true},
		{name: "other persona", input: "Work", reserved: false},
		{name: "prefix only", input: "unassigned accounts", reserved: false},
		{name: "empty", input: "", reserved: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.reserved, IsReservedPersonaName(tt.input))
		})
	}
}

func TestPersonaReserved(t *testing.T) {
	assert.True(t, Persona{ID: 1, Name: "Unassigned"}.Reserved())
	assert.False(t, Persona{ID: 2, Name: "Work"}.Reserved())
}

func TestSearchResultSummaryWording(t *testing.T) {
	result := SearchResult{TotalFound: 12, NewAccountsSaved: 5}

	require.Equal(t, "Found 12 platforms, saved 5 new accounts.", result.Summary())
}

func TestAccountAssignment(t *testing.T) {
	unassigned := Account{ID: "a1", Platform: "github"}
	assigned := Account{ID: "a2", Platform: "twitter", Bucket: &PersonaRef{ID: 2, Name: "Work"}}

	assert.False(t, unassigned.Assigned())
	assert.False(t, unassigned.In(2))

	assert.True(t, assigned.Assigned())
	assert.True(t, assigned.In(2))
	assert.False(t, assigned.In(3))
}

func TestUserDisplayName(t *testing.T) {
	assert.Equal(t, "alice", User{Email: "alice@example.com"}.DisplayName())
	assert.Equal(t, "bob", User{Email: "bob"}.DisplayName())
	assert.Equal(t, "there", User{}.DisplayName())
}

func TestAPIErrorMessage(t *testing.T) {
	withDetail := &APIError{Status: 409, Detail: "bucket name already exists"}
	assert.Equal(t, "directory request failed (status 409): bucket name already exists", withDetail.Error())

	withoutDetail := &APIError{Status: 502}
	assert.Equal(t, "directory request failed (status 502)", withoutDetail.Error())
}
