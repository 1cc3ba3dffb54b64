// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import "codeberg.org/vabber/vabber/views/element"

// Elements holds every custom element the pages are built from.
var Elements = newElements()

func newElements() *element.Registry {
	r := element.NewRegistry()
	r.MustDefine(LoginViewTag, func() element.Element { return NewLoginView() })
	r.MustDefine(MainViewTag, func() element.Element { return &MainView{} })

	return r
}
