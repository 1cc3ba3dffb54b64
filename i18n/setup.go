// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/leonelquinteros/gotext"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"codeberg.org/vabber/vabber/assets"
)

const (
	// poDomain is the gettext domain to load under each locale.
	poDomain = "vabber"

	// poDir is the directory of the embedded catalogues.
	poDir = "po"
)

var (
	// localesByTag maps canonical BCP 47 tags, for example
	// "en", "de", "pt-BR", to their loaded gotext.Locale.
	localesByTag map[string]*gotext.Locale

	// supportedTags holds the base tag followed by every successfully loaded tag.
	supportedTags []language.Tag

	// matcher is a private [language.Matcher] derived from the loaded locales.
	matcher language.Matcher
)

// Setup initialises package i18n from the catalogues embedded in package assets.
func Setup() error {
	return SetupFS(assets.FS)
}

// SetupFS loads gettext catalogues from fsys and constructs a language matcher.
//
// The expected layout is po/<locale>.po, where <locale> may use hyphens or
// underscores ("pt-BR.po", "pt_BR.po"). The template po/vabber.pot is ignored.
// The base locale is always supported and acts as the fallback.
//
// Calling SetupFS again replaces the previously loaded locales and matcher.
func SetupFS(fsys fs.FS) error {
	Logger = log.With().Str("sys", "i18n").Logger()

	entries, err := fs.ReadDir(fsys, poDir)
	if err != nil {
		return fmt.Errorf("failed to read po directory: %w", err)
	}

	loaded := make(map[string]*gotext.Locale, len(entries))
	tags := make([]language.Tag, 0, len(entries))

	for _, entry := range entries {
		fileName := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(fileName, ".po") {
			continue
		}

		t, err := language.Parse(strings.ReplaceAll(strings.TrimSuffix(fileName, ".po"), "_", "-"))
		if err != nil {
			Logger.Warn().Err(err).Str("file", fileName).Msg("Skipping invalid locale file")

			continue
		}

		canonical := t.String()

		po := gotext.NewPoFS(fsys)
		po.ParseFile(path.Join(poDir, fileName))

		// Base path is unused when adding translators manually.
		loc := gotext.NewLocale("", canonical)
		loc.AddTranslator(poDomain, po)

		loaded[canonical] = loc

		if t != baseTag {
			tags = append(tags, t)
		}

		Logger.Info().
			Str("locale", canonical).
			Str("domain", poDomain).
			Msg("Loaded locale")
	}

	slices.SortFunc(tags, func(a, b language.Tag) int { return strings.Compare(a.String(), b.String()) })

	// baseTag is first to make it the default fallback for matching.
	all := append([]language.Tag{baseTag}, tags...)

	localesByTag = loaded
	supportedTags = all
	matcher = language.NewMatcher(all)

	return nil
}
