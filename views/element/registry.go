// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package element

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"sync"
)

var (
	ErrInvalidTag     = errors.New("invalid custom element name")
	ErrAlreadyDefined = errors.New("custom element already defined")
	ErrUnknownTag     = errors.New("unknown custom element")
)

// A valid name starts with a lower case letter and contains a hyphen.
var tagPattern = regexp.MustCompile(`^[a-z][a-z0-9._]*-[a-z0-9._-]*$`)

// Names that look valid but are taken by SVG and MathML.
var reservedTags = []string{
	"annotation-xml",
	"color-profile",
	"font-face",
	"font-face-src",
	"font-face-uri",
	"font-face-format",
	"font-face-name",
	"missing-glyph",
}

// Factory creates a fresh element instance.
type Factory func() Element

// Registry maps tag names to element factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// ValidTag reports whether tag is a usable custom element name.
func ValidTag(tag string) bool {
	return tagPattern.MatchString(tag) && !slices.Contains(reservedTags, tag)
}

// Define registers factory under tag.
func (r *Registry) Define(tag string, factory Factory) error {
	if !ValidTag(tag) {
		return fmt.Errorf("%w: %q", ErrInvalidTag, tag)
	}

	if factory == nil {
		return fmt.Errorf("nil factory for %q", tag)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[tag]; exists {
		return fmt.Errorf("%w: %q", ErrAlreadyDefined, tag)
	}

	r.factories[tag] = factory

	return nil
}

// MustDefine is like Define but panics on error.
func (r *Registry) MustDefine(tag string, factory Factory) {
	if err := r.Define(tag, factory); err != nil {
		panic(err)
	}
}

// New creates an element by tag name.
func (r *Registry) New(tag string) (Element, error) {
	r.mu.RLock()
	factory, ok := r.factories[tag]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}

	el := factory()
	if el.Tag() != tag {
		return nil, fmt.Errorf("factory for %q created %q", tag, el.Tag())
	}

	return el, nil
}

// Tags returns the defined tag names in sorted order.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tags := make([]string, 0, len(r.factories))
	for tag := range r.factories {
		tags = append(tags, tag)
	}

	slices.Sort(tags)

	return tags
}
