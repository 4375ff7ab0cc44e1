// Package registry holds the presence directory: the in-memory mapping of
// logical user identities to their current live connection.
//
// The model is single-device: one handle per identity, and a new registration
// silently overwrites the previous one. The displaced connection is not
// closed or notified; it simply stops being the delivery target.
package registry

import (
	"sync"
	"time"

	"github.com/bayanihanplus/realtime-gateway/internal/domain/model"
	"github.com/google/uuid"
)

type Directory struct {
	mu      sync.RWMutex
	entries map[string]Connector
}

func NewDirectory() *Directory {
	return &Directory{
		entries: make(map[string]Connector),
	}
}

// Register inserts or overwrites the entry for identity. It always succeeds.
func (d *Directory) Register(identity string, c Connector) {
	d.mu.Lock()
	d.entries[identity] = c
	d.mu.Unlock()
}

// Lookup returns the current handle for identity, if any.
func (d *Directory) Lookup(identity string) (Connector, bool) {
	d.mu.RLock()
	c, ok := d.entries[identity]
	d.mu.RUnlock()
	return c, ok
}

// Online reports whether identity has a live handle.
func (d *Directory) Online(identity string) bool {
	_, ok := d.Lookup(identity)
	return ok
}

// Remove deletes the entry for identity only while it still maps to connID.
// An entry already overwritten by a newer connection for the same identity is
// left alone.
func (d *Directory) Remove(identity string, connID uuid.UUID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if c, ok := d.entries[identity]; ok && c.ID() == connID {
		delete(d.entries, identity)
		return true
	}
	return false
}

// RemoveByConn scans for the entry holding connID and removes it, returning
// the identity that was registered there. Used on disconnect, when only the
// handle is known.
func (d *Directory) RemoveByConn(connID uuid.UUID) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for identity, c := range d.entries {
		if c.ID() == connID {
			delete(d.entries, identity)
			return identity, true
		}
	}
	return "", false
}

// Broadcast pushes f to every registered connection. Slow consumers are
// skipped after timeout; a broadcast is never allowed to wedge the caller.
func (d *Directory) Broadcast(f model.Frame, timeout time.Duration) {
	d.mu.RLock()
	conns := make([]Connector, 0, len(d.entries))
	for _, c := range d.entries {
		conns = append(conns, c)
	}
	d.mu.RUnlock()

	for _, c := range conns {
		c.Send(f, timeout)
	}
}

// Len returns the number of identities currently online.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}
