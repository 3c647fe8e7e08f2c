package player

// Snapshot is the last known state of a player, kept so that it survives a
// process restart and can be read without reaching the widget.
type Snapshot struct {
	Mount       string `redis:"mount" json:"mount"`
	VideoID     string `redis:"video_id" json:"video_id"`
	State       int    `redis:"state" json:"state"`
	IsPlaying   bool   `redis:"is_playing" json:"is_playing"`
	IsPaused    bool   `redis:"is_paused" json:"is_paused"`
	Ended       bool   `redis:"ended" json:"ended"`
	IsBuffering bool   `redis:"is_buffering" json:"is_buffering"`
	Ready       bool   `redis:"ready" json:"ready"`
	LastError   string `redis:"last_error" json:"last_error"`
	UpdatedAt   int64  `redis:"updated_at" json:"updated_at"`
}

type SetSnapshotParams struct {
	PlayerID string
	Snapshot Snapshot
}

// UpdateSnapshotParams changes only the non-nil fields.
type UpdateSnapshotParams struct {
	PlayerID    string
	VideoID     *string
	State       *int
	IsPlaying   *bool
	IsPaused    *bool
	Ended       *bool
	IsBuffering *bool
	Ready       *bool
	LastError   *string
	UpdatedAt   int64
}
