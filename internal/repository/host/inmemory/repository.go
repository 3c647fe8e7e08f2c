package inmemory

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/sharetube/playerbridge/internal/repository/host"
)

type entry[H host.Host] struct {
	host   H
	mounts []string
}

type repo[H host.Host] struct {
	hosts  map[string]*entry[H]
	mounts map[string]string
	mu     sync.RWMutex
	logger *slog.Logger
}

func NewRepo[H host.Host](logger *slog.Logger) *repo[H] {
	if logger == nil {
		logger = slog.Default()
	}

	return &repo[H]{
		hosts:  make(map[string]*entry[H]),
		mounts: make(map[string]string),
		logger: logger,
	}
}

func (r *repo[H]) Add(h H) error {
	funcName := "host.inmemory.Add"
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger.Debug(funcName, "host_id", h.ID())
	if _, ok := r.hosts[h.ID()]; ok {
		r.logger.Info(funcName, "error", host.ErrAlreadyExists)
		return host.ErrAlreadyExists
	}

	r.hosts[h.ID()] = &entry[H]{host: h}

	r.logger.Debug(funcName, "result", "OK")
	return nil
}

// Remove deletes the host together with every mount point it announced.
func (r *repo[H]) Remove(hostID string) (H, error) {
	funcName := "host.inmemory.Remove"
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger.Debug(funcName, "host_id", hostID)
	e, ok := r.hosts[hostID]
	if !ok {
		r.logger.Info(funcName, "error", host.ErrNotFound)
		var zero H
		return zero, host.ErrNotFound
	}

	for _, mount := range e.mounts {
		delete(r.mounts, mount)
	}
	delete(r.hosts, hostID)

	r.logger.Debug(funcName, "result", "OK", "mounts", len(e.mounts))
	return e.host, nil
}

func (r *repo[H]) Get(hostID string) (H, error) {
	funcName := "host.inmemory.Get"
	r.mu.RLock()
	defer r.mu.RUnlock()

	r.logger.Debug(funcName, "host_id", hostID)
	e, ok := r.hosts[hostID]
	if !ok {
		r.logger.Info(funcName, "error", host.ErrNotFound)
		var zero H
		return zero, host.ErrNotFound
	}

	return e.host, nil
}

// SetMounts replaces the mount points announced by a host. Nothing changes
// when one of them belongs to another host.
func (r *repo[H]) SetMounts(hostID string, mounts []string) error {
	funcName := "host.inmemory.SetMounts"
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger.Debug(funcName, "host_id", hostID, "mounts", mounts)
	e, ok := r.hosts[hostID]
	if !ok {
		r.logger.Info(funcName, "error", host.ErrNotFound)
		return host.ErrNotFound
	}

	for _, mount := range mounts {
		if owner, ok := r.mounts[mount]; ok && owner != hostID {
			r.logger.Info(funcName, "error", host.ErrMountTaken, "mount", mount)
			return fmt.Errorf("%w: %q", host.ErrMountTaken, mount)
		}
	}

	for _, mount := range e.mounts {
		delete(r.mounts, mount)
	}
	e.mounts = append([]string(nil), mounts...)
	for _, mount := range mounts {
		r.mounts[mount] = hostID
	}

	r.logger.Debug(funcName, "result", "OK")
	return nil
}

func (r *repo[H]) GetByMount(mount string) (H, error) {
	funcName := "host.inmemory.GetByMount"
	r.mu.RLock()
	defer r.mu.RUnlock()

	r.logger.Debug(funcName, "mount", mount)
	hostID, ok := r.mounts[mount]
	if !ok {
		r.logger.Info(funcName, "error", host.ErrNotFound)
		var zero H
		return zero, host.ErrNotFound
	}

	return r.hosts[hostID].host, nil
}

func (r *repo[H]) HasMount(mount string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.mounts[mount]
	return ok
}
