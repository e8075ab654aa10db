package users

import (
	"context"
	"maps"
	"sync"
)

// Directory looks users up by identifier.
type Directory interface {
	// FindByID returns ErrUserNotFound when no user has that id.
	FindByID(ctx context.Context, id string) (*User, error)
}

// MemoryDirectory is a Directory backed by a map. Safe for concurrent use.
type MemoryDirectory struct {
	mu    sync.RWMutex
	users map[string]User
}

// NewMemoryDirectory returns a directory holding the given users.
func NewMemoryDirectory(users ...User) *MemoryDirectory {
	d := &MemoryDirectory{users: make(map[string]User, len(users))}
	for _, u := range users {
		d.users[u.ID] = u
	}
	return d
}

// Put adds or replaces a user.
func (d *MemoryDirectory) Put(u User) {
	d.mu.Lock()
	d.users[u.ID] = u
	d.mu.Unlock()
}

// Remove deletes a user if present.
func (d *MemoryDirectory) Remove(id string) {
	d.mu.Lock()
	delete(d.users, id)
	d.mu.Unlock()
}

func (d *MemoryDirectory) FindByID(_ context.Context, id string) (*User, error) {
	if id == "" {
		return nil, ErrEmptyID
	}

	d.mu.RLock()
	u, ok := d.users[id]
	d.mu.RUnlock()
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

// Snapshot returns a copy of every stored user keyed by id.
func (d *MemoryDirectory) Snapshot() map[string]User {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return maps.Clone(d.users)
}
