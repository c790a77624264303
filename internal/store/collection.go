package store

import (
	"fmt"

	"dompet/internal/core"
)

// Collection is one id-keyed entity set. Insertion order is preserved so
// that list results, and everything derived from them (distribution tie
// order, recent-activity stability), are deterministic.
//
// Collections do no locking themselves; access them only through a Tx.
type Collection[T Entity] struct {
	items map[string]T
	order []string
	// shared marks records visible to every owner (default categories).
	shared func(T) bool
}

func newCollection[T Entity](shared func(T) bool) *Collection[T] {
	return &Collection[T]{items: make(map[string]T), shared: shared}
}

func (c *Collection[T]) visible(v T, ownerID string) bool {
	if v.EntityOwner() == ownerID {
		return true
	}
	return c.shared != nil && c.shared(v)
}

// Insert adds a record owned by ownerID. The record's owner must match and
// the id must be unused.
func (c *Collection[T]) Insert(ownerID string, v T) error {
	if v.EntityOwner() != ownerID {
		return fmt.Errorf("insert %s: %w", v.EntityID(), core.ErrForbidden)
	}
	if _, ok := c.items[v.EntityID()]; ok {
		return fmt.Errorf("insert %s: %w", v.EntityID(), core.ErrDuplicateID)
	}
	c.insert(v)
	return nil
}

// Update replaces an existing record. Cross-owner updates, and updates of
// shared records, fail with ErrNotFound so foreign ids are not leaked.
func (c *Collection[T]) Update(ownerID string, v T) error {
	cur, ok := c.items[v.EntityID()]
	if !ok || cur.EntityOwner() != ownerID {
		return fmt.Errorf("update %s: %w", v.EntityID(), core.ErrNotFound)
	}
	if v.EntityOwner() != ownerID {
		return fmt.Errorf("update %s: %w", v.EntityID(), core.ErrForbidden)
	}
	c.items[v.EntityID()] = v
	return nil
}

// Remove deletes an owned record.
func (c *Collection[T]) Remove(ownerID, id string) error {
	cur, ok := c.items[id]
	if !ok || cur.EntityOwner() != ownerID {
		return fmt.Errorf("remove %s: %w", id, core.ErrNotFound)
	}
	delete(c.items, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// Find returns a record visible to ownerID.
func (c *Collection[T]) Find(ownerID, id string) (T, error) {
	var zero T
	v, ok := c.items[id]
	if !ok || !c.visible(v, ownerID) {
		return zero, fmt.Errorf("find %s: %w", id, core.ErrNotFound)
	}
	return v, nil
}

// ListByOwner returns all records visible to ownerID in insertion order.
func (c *Collection[T]) ListByOwner(ownerID string) []T {
	var out []T
	for _, id := range c.order {
		if v := c.items[id]; c.visible(v, ownerID) {
			out = append(out, v)
		}
	}
	return out
}

// listOwned returns only records owned by ownerID (no shared records).
func (c *Collection[T]) listOwned(ownerID string) []T {
	var out []T
	for _, id := range c.order {
		if v := c.items[id]; v.EntityOwner() == ownerID {
			out = append(out, v)
		}
	}
	return out
}

// All returns every record in insertion order (admin aggregate view).
func (c *Collection[T]) All() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

// Len reports the number of stored records.
func (c *Collection[T]) Len() int { return len(c.order) }

func (c *Collection[T]) insert(v T) {
	c.items[v.EntityID()] = v
	c.order = append(c.order, v.EntityID())
}

// put inserts or overwrites without owner checks; used by Restore.
func (c *Collection[T]) put(v T) {
	if _, ok := c.items[v.EntityID()]; !ok {
		c.order = append(c.order, v.EntityID())
	}
	c.items[v.EntityID()] = v
}
