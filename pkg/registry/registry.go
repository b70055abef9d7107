package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/unixtime/pkg/domain"
	"github.com/aretw0/unixtime/pkg/ports"
)

// CommandFunc runs one command against a host.
type CommandFunc func(ctx context.Context, host ports.Host) domain.Outcome

// Registry maps command IDs to their implementations.
type Registry struct {
	mu       sync.RWMutex
	commands map[domain.CommandID]CommandFunc
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[domain.CommandID]CommandFunc),
	}
}

// Register adds a command to the registry.
// If a command with the same ID exists, it is overwritten.
func (r *Registry) Register(id domain.CommandID, fn CommandFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[id] = fn
}

// Lookup resolves a full or short command ID.
func (r *Registry) Lookup(name string) (domain.CommandID, CommandFunc, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, fn := range r.commands {
		if string(id) == name || id.Short() == name {
			return id, fn, nil
		}
	}
	return "", nil, fmt.Errorf("%w: %s", domain.ErrUnknownCommand, name)
}

// Execute looks up a command by name and runs it.
// Returns an error wrapping domain.ErrUnknownCommand if it is not registered.
func (r *Registry) Execute(ctx context.Context, host ports.Host, name string) (domain.Outcome, error) {
	_, fn, err := r.Lookup(name)
	if err != nil {
		return domain.Outcome{}, err
	}
	return fn(ctx, host), nil
}

// IDs lists the registered commands in sorted order.
func (r *Registry) IDs() []domain.CommandID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]domain.CommandID, 0, len(r.commands))
	for id := range r.commands {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
