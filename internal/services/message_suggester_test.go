package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/HasanApplore/Harmony.AI/internal/models"
	"github.com/stretchr/testify/assert"
)

func expectedMessages(name, field string) map[string]bool {
	return map[string]bool{
		fmt.Sprintf(connectionMessageTemplates[0], name):        true,
		fmt.Sprintf(connectionMessageTemplates[1], name):        true,
		fmt.Sprintf(connectionMessageTemplates[2], name, field): true,
	}
}

func TestSuggestConnectionMessageUsesTemplates(t *testing.T) {
	target := models.User{Username: "ann", Name: "Ann Smith", Title: "Engineer"}
	expected := expectedMessages("Ann Smith", "Engineer")

	// The pick is random; every draw must land on one of the three templates.
	for i := 0; i < 50; i++ {
		msg := SuggestConnectionMessage(target)
		assert.True(t, expected[msg], "unexpected message: %q", msg)
	}
}

func TestSuggestConnectionMessageFallbacks(t *testing.T) {
	// No name: username addresses the target. No title: generic noun.
	target := models.User{Username: "ann"}
	expected := expectedMessages("ann", "professionals")

	for i := 0; i < 50; i++ {
		msg := SuggestConnectionMessage(target)
		assert.True(t, expected[msg], "unexpected message: %q", msg)
		assert.True(t, strings.Contains(msg, "ann"))
	}
}
