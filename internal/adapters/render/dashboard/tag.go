package dashboard

import "strings"

type tagRule struct {
	needle string
	tag    string
}

// tagRules map persona names to a display tag by substring match, first
// hit wins. Presentation-only; swapping the table changes nothing about
// reconciliation behavior.
var tagRules = []tagRule{
	{needle: "unassigned", tag: "📦"},
	{needle: "personal", tag: "🏠"},
	{needle: "professional", tag: "💼"},
	{needle: "work", tag: "💼"},
	{needle: "dev", tag: "🛠"},
	{needle: "gam", tag: "🎮"},
	{needle: "social", tag: "💬"},
	{needle: "finance", tag: "💰"},
	{needle: "bank", tag: "💰"},
}

const defaultTag = "👤"

// PersonaTag returns the emoji tag for a persona name.
func PersonaTag(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	for _, rule := range tagRules {
		if strings.Contains(lowered, rule.needle) {
			return rule.tag
		}
	}

	return defaultTag
}
