package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPersonaTag(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{name: "Unassigned", want: "📦"},
		{name: "Personal Stuff", want: "🏠"},
		{name: "Professional", want: "💼"},
		{name: "work", want: "💼"},
		{name: "DevOps", want: "🛠"},
		{name: "Gaming", want: "🎮"},
		{name: "Social Media", want: "💬"},
		{name: "Finance", want: "💰"},
		{name: "My Bank", want: "💰"},
		{name: "Travel", want: "👤"},
		{name: "", want: "👤"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PersonaTag(tc.name))
		})
	}
}

func TestPersonaTagFirstRuleWins(t *testing.T) {
	// "Personal Work" matches both the personal and the work rule; the
	// earlier rule in the table decides.
	assert.Equal(t, "🏠", PersonaTag("Personal Work"))
}
