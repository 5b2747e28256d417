// Package catalog serves the static, read-only list of events.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/eventreg/internal/common"
	"github.com/dmitrijs2005/eventreg/internal/models"
)

// Catalog is an immutable, ordered set of events.
type Catalog struct {
	events []models.Event
	byID   map[string]int
}

// New builds a catalog. Event ids must be non-empty and unique.
func New(events []models.Event) (*Catalog, error) {
	c := &Catalog{
		events: append([]models.Event(nil), events...),
		byID:   make(map[string]int, len(events)),
	}
	for i, ev := range c.events {
		if ev.ID == "" {
			return nil, fmt.Errorf("event #%d has no id", i)
		}
		if _, dup := c.byID[ev.ID]; dup {
			return nil, fmt.Errorf("duplicate event id %q", ev.ID)
		}
		c.byID[ev.ID] = i
	}
	return c, nil
}

// Load reads a JSON array of events from path. An empty path yields the
// built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading catalog: %w", err)
	}

	var events []models.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("error parsing catalog %s: %w", path, err)
	}
	return New(events)
}

// List returns the events in catalog order. The slice is a copy.
func (c *Catalog) List() []models.Event {
	return append([]models.Event(nil), c.events...)
}

// Find returns the event with the given id or common.ErrUnknownEvent.
func (c *Catalog) Find(id string) (models.Event, error) {
	i, ok := c.byID[id]
	if !ok {
		return models.Event{}, fmt.Errorf("%w: %q", common.ErrUnknownEvent, id)
	}
	return c.events[i], nil
}
