package shell

import (
	"context"
	"sync"
)

// Registry maps session ids to their shells, creating and starting one on
// first use.
type Registry struct {
	mu      sync.Mutex
	shells  map[string]*Shell
	factory func() *Shell
}

func NewRegistry(factory func() *Shell) *Registry {
	return &Registry{
		shells:  make(map[string]*Shell),
		factory: factory,
	}
}

// Get returns the shell for the session, starting a fresh one if needed.
func (r *Registry) Get(ctx context.Context, sessionID string) *Shell {
	r.mu.Lock()
	sh, ok := r.shells[sessionID]
	if ok {
		r.mu.Unlock()
		return sh
	}
	sh = r.factory()
	r.shells[sessionID] = sh
	r.mu.Unlock()

	sh.Start(ctx)
	return sh
}

// Remove closes and forgets the session's shell.
func (r *Registry) Remove(sessionID string) {
	r.mu.Lock()
	sh, ok := r.shells[sessionID]
	delete(r.shells, sessionID)
	r.mu.Unlock()
	if ok {
		sh.Close()
	}
}

// Close shuts every shell down.
func (r *Registry) Close() {
	r.mu.Lock()
	shells := r.shells
	r.shells = make(map[string]*Shell)
	r.mu.Unlock()
	for _, sh := range shells {
		sh.Close()
	}
}
