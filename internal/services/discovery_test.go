package services

import (
	"testing"

	"github.com/HasanApplore/Harmony.AI/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestFilterDiscoverableExcludesSelfAndMatchesTerm(t *testing.T) {
	users := []models.User{
		{ID: 1, Username: "ann", Name: "Ann", Title: "Engineer"},
		{ID: 2, Username: "bo", Name: "Bo", Title: "Manager"},
	}

	// "an" matches Ann (name) and Manager (title); Ann herself is excluded.
	result := FilterDiscoverable(users, 1, nil, nil, "an")
	assert.Len(t, result, 1)
	assert.Equal(t, uint(2), result[0].ID)
}

func TestFilterDiscoverableExcludesConnectedAndPending(t *testing.T) {
	users := []models.User{
		{ID: 1, Username: "ann"},
		{ID: 2, Username: "bo"},
		{ID: 3, Username: "cara"},
		{ID: 4, Username: "dee"},
	}

	connected := map[uint]bool{2: true}
	pending := map[uint]bool{3: true}

	result := FilterDiscoverable(users, 1, connected, pending, "")
	assert.Len(t, result, 1)
	assert.Equal(t, uint(4), result[0].ID)
}

func TestFilterDiscoverableCaseInsensitive(t *testing.T) {
	users := []models.User{
		{ID: 2, Username: "BoLexis", Name: "", Title: ""},
		{ID: 3, Username: "cara", Name: "Cara", Title: "DATA Scientist"},
	}

	assert.Len(t, FilterDiscoverable(users, 1, nil, nil, "bolex"), 1)
	assert.Len(t, FilterDiscoverable(users, 1, nil, nil, "data sci"), 1)
	assert.Empty(t, FilterDiscoverable(users, 1, nil, nil, "nomatch"))
}

func TestFilterDiscoverablePreservesOrder(t *testing.T) {
	users := []models.User{
		{ID: 5, Username: "eve"},
		{ID: 2, Username: "bo"},
		{ID: 9, Username: "zed"},
	}

	result := FilterDiscoverable(users, 1, nil, nil, "")
	assert.Equal(t, []uint{5, 2, 9}, []uint{result[0].ID, result[1].ID, result[2].ID})
}

func TestCounterpartIDs(t *testing.T) {
	conns := []models.ConnectionWithUser{
		{User: models.UserCompact{ID: 2}},
		{User: models.UserCompact{ID: 7}},
		{User: models.UserCompact{ID: 2}},
	}

	ids := CounterpartIDs(conns)
	assert.Len(t, ids, 2)
	assert.True(t, ids[2])
	assert.True(t, ids[7])
}
