package templates

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"sync"

	"github.com/stakalivres/notifymail/pkg/cache"
)

// Store resolves template names to their raw source.
type Store interface {
	// Exists reports whether name can be read.
	Exists(ctx context.Context, name string) (bool, error)
	// Read returns the template source or ErrTemplateNotFound.
	Read(ctx context.Context, name string) (string, error)
}

//go:embed emails/*.hbs
var embedded embed.FS

// Embedded returns the built-in email templates.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "emails")
	if err != nil {
		panic(err)
	}
	return sub
}

// FSStore reads templates from an fs.FS, usually os.DirFS.
type FSStore struct {
	fsys fs.FS
}

// NewFSStore creates a store over fsys.
func NewFSStore(fsys fs.FS) *FSStore {
	return &FSStore{fsys: fsys}
}

// NewDirStore creates a store reading from the directory dir.
func NewDirStore(dir string) *FSStore {
	return NewFSStore(os.DirFS(dir))
}

func (s *FSStore) Exists(_ context.Context, name string) (bool, error) {
	if !fs.ValidPath(name) || name == "." {
		return false, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	info, err := fs.Stat(s.fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

func (s *FSStore) Read(_ context.Context, name string) (string, error) {
	if !fs.ValidPath(name) || name == "." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	b, err := fs.ReadFile(s.fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// MapStore is an in-memory Store.
type MapStore struct {
	mu        sync.RWMutex
	templates map[string]string
}

// NewMapStore creates a store holding a copy of templates.
func NewMapStore(templates map[string]string) *MapStore {
	m := make(map[string]string, len(templates))
	maps.Copy(m, templates)
	return &MapStore{templates: m}
}

// Set adds or replaces a template.
func (s *MapStore) Set(name, source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[name] = source
}

func (s *MapStore) Exists(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.templates[name]
	return ok, nil
}

func (s *MapStore) Read(_ context.Context, name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src, ok := s.templates[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return src, nil
}

// CachedStore keeps recently read template sources in an LRU cache.
// Exists always asks the underlying store, so a template added to or removed
// from disk is noticed on the next job; a removed template is also evicted.
// Edits to a template that is still present need Invalidate.
type CachedStore struct {
	next  Store
	cache *cache.LRUCache[string, string]
}

// NewCachedStore wraps next with an LRU cache of the given size.
func NewCachedStore(next Store, size int) *CachedStore {
	if size <= 0 {
		size = 64
	}
	return &CachedStore{next: next, cache: cache.NewLRUCache[string, string](size)}
}

func (s *CachedStore) Exists(ctx context.Context, name string) (bool, error) {
	ok, err := s.next.Exists(ctx, name)
	if err == nil && !ok {
		s.cache.Remove(name)
	}
	return ok, err
}

func (s *CachedStore) Read(ctx context.Context, name string) (string, error) {
	if src, ok := s.cache.Get(name); ok {
		return src, nil
	}
	src, err := s.next.Read(ctx, name)
	if err != nil {
		return "", err
	}
	s.cache.Put(name, src)
	return src, nil
}

// Invalidate drops every cached template.
func (s *CachedStore) Invalidate() {
	s.cache.Clear()
}
