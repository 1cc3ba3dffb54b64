// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package assets provides access to the application's embedded static assets:
stylesheets under css/, images under img/ and gettext catalogues under po/.
*/
package assets

import (
	"embed"
)

// FS provides access to the embedded file system.
//
//go:embed css img po
var FS embed.FS
