package omitnilpointers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOmitNilPointers(t *testing.T) {
	state := 1
	var missing *bool

	got := OmitNilPointers(map[string]any{
		"state":      &state,
		"is_playing": missing,
		"last_error": nil,
		"mount":      "player-1",
	})

	assert.Equal(t, map[string]any{"state": 1, "mount": "player-1"}, got)
}
