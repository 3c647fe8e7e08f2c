package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type vars struct {
	Start int    `json:"start" validate:"gte=0"`
	Color string `json:"color,omitempty" validate:"omitempty,oneof=red white"`
}

type input struct {
	Mount   string `json:"mount" validate:"required,max=16"`
	VideoID string `json:"video_id" validate:"omitempty,len=11"`
	Vars    vars   `json:"vars"`
	Secret  string `json:"-" validate:"max=1"`
}

func TestValidate(t *testing.T) {
	v := NewValidator()

	_, ok := v.Validate(input{Mount: "player-1", VideoID: "M7lc1UVf-VE"})
	assert.True(t, ok)

	errs, ok := v.Validate(input{
		VideoID: "short",
		Vars:    vars{Start: -1, Color: "blue"},
	})
	require.False(t, ok)

	byField := make(map[string]ValidationError, len(errs))
	for _, e := range errs {
		byField[e.Field] = e
	}

	require.Contains(t, byField, "mount")
	assert.Equal(t, "REQUIRED", byField["mount"].Code)
	assert.Equal(t, "video_id must be exactly 11 characters long", byField["video_id"].Message)
	assert.Equal(t, "GTE", byField["vars.start"].Code)
	assert.Equal(t, "color must be one of: red white", byField["vars.color"].Message)
}
