// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// htmlWriter writes markup and remembers the first write error.
type htmlWriter struct {
	w   io.Writer
	err error
}

// raw writes trusted markup as-is.
func (hw *htmlWriter) raw(s string) {
	if hw.err != nil {
		return
	}

	_, hw.err = io.WriteString(hw.w, s)
}

// text writes s HTML-escaped.
func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}

// component renders c in place.
func (hw *htmlWriter) component(ctx context.Context, c templ.Component) {
	if hw.err != nil || c == nil {
		return
	}

	hw.err = c.Render(ctx, hw.w)
}
