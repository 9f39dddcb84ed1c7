package service

import (
	"github.com/dperales2022/atmirasalesproposals/schema"
	"github.com/dperales2022/atmirasalesproposals/types"
)

// Compose builds the conversation for one extraction: the variant's
// instructions as the system message and the document text, unmodified, as
// the user message. Text is never truncated; an oversized document is the
// model backend's to reject.
func Compose(v *schema.Variant, text string) []types.Message {
	return []types.Message{
		{Role: types.RoleSystem, Content: v.Instructions},
		{Role: types.RoleUser, Content: text},
	}
}

// splitMessages returns the system instructions and user text of a composed
// conversation. Extra messages of the same role are joined.
func splitMessages(messages []types.Message) (system, user string) {
	for _, m := range messages {
		switch m.Role {
		case types.RoleSystem:
			system = joinNonEmpty(system, m.Content)
		default:
			user = joinNonEmpty(user, m.Content)
		}
	}
	return system, user
}

func joinNonEmpty(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + "\n\n" + b
}
