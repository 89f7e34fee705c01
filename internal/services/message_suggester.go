package services

import (
	"fmt"
	"math/rand"

	"github.com/HasanApplore/Harmony.AI/internal/models"
)

// The canned introductions offered when opening a connection request.
// Purely offline; despite the "AI suggested message" label in the UI there
// is no generative call behind this.
var connectionMessageTemplates = []string{
	"Hi %s, I'd like to connect with you on Harmony.ai.",
	"Hello %s, I noticed your profile and would love to add you to my professional network.",
	"Hi %s, I'm building my network of %s and would like to connect.",
}

// SuggestConnectionMessage picks one of three fixed templates uniformly at
// random, addressed to the target's display name. The third template also
// mentions the target's title, falling back to "professionals".
func SuggestConnectionMessage(target models.User) string {
	name := target.DisplayName()
	field := target.Title
	if field == "" {
		field = "professionals"
	}

	switch rand.Intn(len(connectionMessageTemplates)) {
	case 0:
		return fmt.Sprintf(connectionMessageTemplates[0], name)
	case 1:
		return fmt.Sprintf(connectionMessageTemplates[1], name)
	default:
		return fmt.Sprintf(connectionMessageTemplates[2], name, field)
	}
}
