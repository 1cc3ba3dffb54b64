// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package element

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	ErrAlreadyMounted = errors.New("element already mounted")
	ErrNotMounted     = errors.New("element not mounted")
)

// Host is the surface elements are mounted on.
//
// It is safe for concurrent use.
type Host struct {
	mu      sync.Mutex
	mounted map[Element]map[string]Listener
}

func NewHost() *Host {
	return &Host{mounted: make(map[Element]map[string]Listener)}
}

// Mount attaches el, runs its ConnectedCallback and registers its listeners.
func (h *Host) Mount(el Element) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.mounted[el]; ok {
		return fmt.Errorf("%w: <%s>", ErrAlreadyMounted, el.Tag())
	}

	el.ConnectedCallback(h)

	listeners := make(map[string]Listener)
	if p, ok := el.(ListenerProvider); ok {
		for typ, l := range p.Listeners() {
			if l != nil {
				listeners[typ] = l
			}
		}
	}

	h.mounted[el] = listeners

	return nil
}

// Unmount removes el's listeners and runs its DisconnectedCallback.
func (h *Host) Unmount(el Element) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.mounted[el]; !ok {
		return fmt.Errorf("%w: <%s>", ErrNotMounted, el.Tag())
	}

	delete(h.mounted, el)
	el.DisconnectedCallback(h)

	return nil
}

// Mounted reports whether el is attached to h.
func (h *Host) Mounted(el Element) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	_, ok := h.mounted[el]

	return ok
}

// Dispatch delivers ev to el's listener for ev.Type.
//
// Events without a listener are dropped.
func (h *Host) Dispatch(ctx context.Context, el Element, ev Event) error {
	h.mu.Lock()
	listeners, ok := h.mounted[el]

	var l Listener
	if ok {
		l = listeners[ev.Type]
	}
	h.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: <%s>", ErrNotMounted, el.Tag())
	}

	if l == nil {
		return nil
	}

	return l(ctx, ev)
}

// ListenerCount returns the number of listeners registered across all mounted elements.
func (h *Host) ListenerCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := 0
	for _, listeners := range h.mounted {
		n += len(listeners)
	}

	return n
}
