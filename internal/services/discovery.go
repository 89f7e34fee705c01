package services

import (
	"strings"

	"github.com/HasanApplore/Harmony.AI/internal/models"
)

// FilterDiscoverable returns the users the acting user can still connect
// with: everyone except themselves, users they are connected with and users
// with a pending request, narrowed by a case-insensitive substring match
// against name, username or title. Input ordering is preserved; there is no
// ranking.
func FilterDiscoverable(users []models.User, actingUserID uint, connectedIDs, pendingIDs map[uint]bool, term string) []models.User {
	term = strings.ToLower(strings.TrimSpace(term))

	matches := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.ID == actingUserID || connectedIDs[u.ID] || pendingIDs[u.ID] {
			continue
		}
		if term != "" && !matchesTerm(u, term) {
			continue
		}
		matches = append(matches, u)
	}
	return matches
}

func matchesTerm(u models.User, term string) bool {
	return strings.Contains(strings.ToLower(u.Name), term) ||
		strings.Contains(strings.ToLower(u.Username), term) ||
		strings.Contains(strings.ToLower(u.Title), term)
}

// CounterpartIDs collects the counterpart user ids out of connection list
// results, the derived sets the discovery filter excludes. Recomputed from
// authoritative list queries on every request rather than cached.
func CounterpartIDs(conns []models.ConnectionWithUser) map[uint]bool {
	ids := make(map[uint]bool, len(conns))
	for _, c := range conns {
		ids[c.User.ID] = true
	}
	return ids
}
