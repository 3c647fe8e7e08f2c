package host

import "errors"

var (
	ErrAlreadyExists = errors.New("host already exists")
	ErrNotFound      = errors.New("host not found")
	ErrMountTaken    = errors.New("mount point is owned by another host")
)

// Host is a connected widget host.
type Host interface {
	ID() string
}
