// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"codeberg.org/vabber/vabber/views"
	"codeberg.org/vabber/vabber/views/element"
)

// mountView creates the element registered for tag and mounts it on a host
// that lives for one request. Call release once the page is rendered.
func mountView[T element.Element](tag string) (T, func(), error) {
	var zero T

	el, err := views.Elements.New(tag)
	if err != nil {
		return zero, nil, err
	}

	view, ok := el.(T)
	if !ok {
		return zero, nil, fmt.Errorf("element <%s> is a %T", tag, el)
	}

	host := element.NewHost()
	if err := host.Mount(view); err != nil {
		return zero, nil, err
	}

	release := func() {
		if err := host.Unmount(view); err != nil {
			log.Warn().Err(err).Str("tag", tag).Msg("Failed to unmount view")
		}
	}

	return view, release, nil
}
