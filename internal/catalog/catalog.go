// Package catalog is the activation boundary: it instantiates preview
// components from their class ids.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/kk-code-lab/previewhost/internal/plugin"
)

// Factory creates a new, uninitialized component.
type Factory func(ctx context.Context) (plugin.Handler, error)

// Class describes a registered component class.
type Class struct {
	ID   plugin.ClassID
	Name string
}

type registration struct {
	name    string
	factory Factory
}

// Catalog maps class ids to factories.
type Catalog struct {
	mu      sync.RWMutex
	classes map[plugin.ClassID]registration
	logger  *slog.Logger
}

// New creates an empty Catalog.
func New(logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Catalog{
		classes: make(map[plugin.ClassID]registration),
		logger:  logger,
	}
}

// Register adds a class. Registering an id twice is an error.
func (c *Catalog) Register(id string, name string, f Factory) error {
	cid, err := plugin.ParseClassID(id)
	if err != nil {
		return err
	}
	if f == nil {
		return fmt.Errorf("registering %s: %w", cid, ErrNilFactory)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.classes[cid]; exists {
		return fmt.Errorf("registering %s: %w", cid, ErrAlreadyRegistered)
	}
	c.classes[cid] = registration{name: name, factory: f}
	c.logger.Debug("class registered", slog.String("class", cid.String()), slog.String("name", name))
	return nil
}

// Activate creates a component of class id.
func (c *Catalog) Activate(ctx context.Context, id plugin.ClassID) (plugin.Handler, error) {
	cid, err := plugin.ParseClassID(string(id))
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	reg, ok := c.classes[cid]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%s: %w", cid, ErrClassNotRegistered)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var h plugin.Handler
	err = plugin.Guard("factory "+reg.name, func() error {
		var ferr error
		h, ferr = reg.factory(ctx)
		return ferr
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

// Classes lists registered classes ordered by name.
func (c *Catalog) Classes() []Class {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Class, 0, len(c.classes))
	for id, reg := range c.classes {
		out = append(out, Class{ID: id, Name: reg.name})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}
