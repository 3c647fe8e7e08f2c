package player

import "errors"

var ErrSnapshotNotFound = errors.New("player snapshot not found")
