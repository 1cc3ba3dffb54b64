// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package element

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greeting struct {
	Base

	root   RenderRoot
	name   string
	clicks int
}

func (g *greeting) Tag() string { return "x-greeting" }

func (g *greeting) RenderRoot() RenderRoot { return g.root }

func (g *greeting) HostAttributes() []Attr {
	return []Attr{{Name: "name", Value: g.name}}
}

func (g *greeting) Content() templ.Component {
	return templ.Raw(`<p class="p-m">hi</p>`)
}

func (g *greeting) Listeners() map[string]Listener {
	return map[string]Listener{
		"click": func(_ context.Context, _ Event) error {
			g.clicks++

			return nil
		},
		"fail": func(_ context.Context, ev Event) error {
			return errors.New(ev.Detail["reason"])
		},
	}
}

func render(t *testing.T, el Element) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, Render(el).Render(context.Background(), &buf))

	return buf.String()
}

func TestRenderShadowRoot(t *testing.T) {
	t.Parallel()

	out := render(t, &greeting{root: ShadowRoot, name: `a"b`})
	assert.Equal(t,
		`<x-greeting name="a&#34;b"><template shadowrootmode="open"><p class="p-m">hi</p></template></x-greeting>`,
		out)
}

func TestRenderLightRoot(t *testing.T) {
	t.Parallel()

	out := render(t, &greeting{root: LightRoot, name: "n"})
	assert.Equal(t, `<x-greeting name="n"><p class="p-m">hi</p></x-greeting>`, out)
	assert.NotContains(t, out, "<template")
}

func TestBaseDefaults(t *testing.T) {
	t.Parallel()

	var b Base
	assert.Equal(t, ShadowRoot, b.RenderRoot())
	assert.Nil(t, b.HostAttributes())
	assert.False(t, b.Connected())

	b.ConnectedCallback(nil)
	assert.True(t, b.Connected())

	b.DisconnectedCallback(nil)
	assert.False(t, b.Connected())
}

func TestRenderRootString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "shadow", ShadowRoot.String())
	assert.Equal(t, "light", LightRoot.String())
	assert.Equal(t, "unknown", RenderRoot(42).String())
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NoError(t, r.Define("x-greeting", func() Element { return &greeting{} }))

	err := r.Define("x-greeting", func() Element { return &greeting{} })
	require.ErrorIs(t, err, ErrAlreadyDefined)

	el, err := r.New("x-greeting")
	require.NoError(t, err)
	assert.Equal(t, "x-greeting", el.Tag())

	other, err := r.New("x-greeting")
	require.NoError(t, err)
	assert.NotSame(t, el, other, "each call creates a fresh instance")

	_, err = r.New("x-missing")
	require.ErrorIs(t, err, ErrUnknownTag)

	assert.Equal(t, []string{"x-greeting"}, r.Tags())
}

func TestRegistryRejectsMismatchedFactory(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NoError(t, r.Define("x-other", func() Element { return &greeting{} }))

	_, err := r.New("x-other")
	require.Error(t, err)
}

func TestValidTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag  string
		want bool
	}{
		{"login-view", true},
		{"x-a", true},
		{"my-el.v2", true},
		{"loginview", false},
		{"Login-view", false},
		{"1-view", false},
		{"-view", false},
		{"", false},
		{"font-face", false},
		{"annotation-xml", false},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ValidTag(tt.tag))
		})
	}

	r := NewRegistry()
	require.ErrorIs(t, r.Define("loginview", func() Element { return &greeting{} }), ErrInvalidTag)
}

func TestHostMountDispatchUnmount(t *testing.T) {
	t.Parallel()

	h := NewHost()
	g := &greeting{}

	require.NoError(t, h.Mount(g))
	assert.True(t, g.Connected())
	assert.True(t, h.Mounted(g))
	assert.Equal(t, 2, h.ListenerCount())

	require.ErrorIs(t, h.Mount(g), ErrAlreadyMounted)

	require.NoError(t, h.Dispatch(context.Background(), g, Event{Type: "click"}))
	assert.Equal(t, 1, g.clicks)

	err := h.Dispatch(context.Background(), g, Event{Type: "fail", Detail: map[string]string{"reason": "boom"}})
	require.EqualError(t, err, "boom")

	require.NoError(t, h.Dispatch(context.Background(), g, Event{Type: "keydown"}), "events without a listener are dropped")

	require.NoError(t, h.Unmount(g))
	assert.False(t, g.Connected())
	assert.Equal(t, 0, h.ListenerCount())

	require.ErrorIs(t, h.Unmount(g), ErrNotMounted)
	require.ErrorIs(t, h.Dispatch(context.Background(), g, Event{Type: "click"}), ErrNotMounted)
}

func TestHostConcurrentMounts(t *testing.T) {
	t.Parallel()

	h := NewHost()

	var wg sync.WaitGroup

	for range 32 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			g := &greeting{}
			for range 10 {
				assert.NoError(t, h.Mount(g))
				assert.NoError(t, h.Unmount(g))
			}
		}()
	}

	wg.Wait()
	assert.Equal(t, 0, h.ListenerCount())
}
