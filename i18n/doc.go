// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package i18n translates UI strings using GNU gettext .po catalogues
embedded in package assets.

Use the original English UI text as the msgid:

	i18n.Tr(ctx, "Sign in")
	i18n.Tr(ctx, `and the password "{{.Password}}" to enter`, "Password", pw)
	i18n.TrN(ctx, "{{.Count}} unread", "{{.Count}} unread", n, "Count", n)

The locale is chosen per request from the lang query parameter, the lang
cookie and the Accept-Language header (see FromRequest).

Missing translations return the msgid unchanged. When
Internationalization.StrictMissingKeys is enabled, they are logged once per
locale and key and visibly wrapped as "⟦...⟧".
*/
package i18n
