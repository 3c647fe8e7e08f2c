package ytplayer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	for _, cmd := range Commands() {
		got, ok := ParseCommand(cmd.String())
		require.True(t, ok, cmd.String())
		assert.Equal(t, cmd, got)
	}

	_, ok := ParseCommand("selfDestruct")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Command(-1).String())
	assert.Len(t, Commands(), 42)
}

func TestCommandDescriptor(t *testing.T) {
	pause, ok := CmdPauseVideo.Descriptor()
	require.True(t, ok)
	assert.True(t, pause.Accepts(StatePaused))
	assert.True(t, pause.Accepts(StateEnded))
	assert.False(t, pause.Accepts(StateCued))
	assert.True(t, pause.Timeout.IsAbsent())

	play, ok := CmdPlayVideo.Descriptor()
	require.True(t, ok)
	assert.Equal(t, []State{StateEnded, StatePlaying}, play.AcceptableStates)
	assert.Equal(t, time.Duration(0), play.Timeout.MustGet())

	seek, ok := CmdSeekTo.Descriptor()
	require.True(t, ok)
	assert.True(t, seek.ForcedWait)
	assert.Equal(t, 3*time.Second, seek.Timeout.MustGet())
	assert.True(t, seek.Accepts(StatePaused))
	assert.False(t, seek.Accepts(StateBuffering))

	_, ok = CmdGetVolume.Descriptor()
	assert.False(t, ok)
}
