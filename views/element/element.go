// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package element renders server-side custom elements.

An Element is written as a host tag carrying its attributes, followed by its
content. Content goes either into a declarative shadow root
(<template shadowrootmode="open">), which isolates it from page styles, or
straight into the host tag when the element opts into light DOM rendering.

Elements are created by tag name through a Registry and attached to a Host,
which drives their lifecycle callbacks and event listeners.
*/
package element

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// RenderRoot selects where an element's content is rendered.
type RenderRoot int

const (
	// ShadowRoot renders content inside a declarative shadow root.
	ShadowRoot RenderRoot = iota
	// LightRoot renders content directly inside the host tag.
	LightRoot
)

func (r RenderRoot) String() string {
	switch r {
	case ShadowRoot:
		return "shadow"
	case LightRoot:
		return "light"
	default:
		return "unknown"
	}
}

// Attr is a single host attribute.
type Attr struct {
	Name  string
	Value string
}

// Element is a custom element.
//
// Implementations are expected to be pointers, since a Host tracks mounted
// elements by identity.
type Element interface {
	// Tag returns the custom element name, e.g. "login-view".
	Tag() string
	// HostAttributes returns the attributes written on the host tag, in order.
	HostAttributes() []Attr
	RenderRoot() RenderRoot
	// Content returns the markup placed inside the render root.
	Content() templ.Component
	ConnectedCallback(h *Host)
	DisconnectedCallback(h *Host)
}

// Listener handles an event dispatched to an element.
type Listener func(ctx context.Context, ev Event) error

// ListenerProvider is implemented by elements that handle events.
type ListenerProvider interface {
	Listeners() map[string]Listener
}

// Event is a user interaction delivered to an element.
type Event struct {
	Type   string
	Target string
	Detail map[string]string
}

// Base provides the default element behaviour: a shadow root, no host
// attributes and lifecycle callbacks that only track connection state.
//
// Embed it and implement Tag and Content.
type Base struct {
	connected bool
}

func (b *Base) RenderRoot() RenderRoot { return ShadowRoot }

func (b *Base) HostAttributes() []Attr { return nil }

func (b *Base) ConnectedCallback(_ *Host) { b.connected = true }

func (b *Base) DisconnectedCallback(_ *Host) { b.connected = false }

// Connected reports whether the element is attached to a Host.
func (b *Base) Connected() bool { return b.connected }

// Render returns a component writing el with its host tag.
func Render(el Element) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writeOpenTag(w, el.Tag(), el.HostAttributes()); err != nil {
			return err
		}

		shadow := el.RenderRoot() == ShadowRoot
		if shadow {
			if _, err := io.WriteString(w, `<template shadowrootmode="open">`); err != nil {
				return err
			}
		}

		if content := el.Content(); content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}

		if shadow {
			if _, err := io.WriteString(w, `</template>`); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, "</"+el.Tag()+">")

		return err
	})
}

func writeOpenTag(w io.Writer, tag string, attrs []Attr) error {
	if _, err := io.WriteString(w, "<"+tag); err != nil {
		return err
	}

	for _, a := range attrs {
		if _, err := io.WriteString(w, " "+a.Name+`="`+templ.EscapeString(a.Value)+`"`); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, ">")

	return err
}
