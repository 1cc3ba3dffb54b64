// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"text/template"

	"github.com/leonelquinteros/gotext"
	"golang.org/x/text/language"
)

// templateCache caches compiled templates per unique template text.
var templateCache sync.Map // key: text, value: *template.Template

// Vars holds named placeholder values.
type Vars map[string]any

// Tr returns the translation of msgid, which is the original English UI text.
// Key-value pairs fill text/template-style named placeholders.
//
// If no translation exists, Tr returns msgid, or msgid visibly wrapped in
// strict mode.
func Tr(ctx context.Context, msgid string, kv ...any) string {
	return translate(ctx, msgid, "", 0, false, v(kv...))
}

// TrN translates a singular or plural message depending on n.
func TrN(ctx context.Context, singular, plural string, n int, kv ...any) string {
	return translate(ctx, singular, plural, n, true, v(kv...))
}

func translate(ctx context.Context, singular, plural string, n int, pluralMode bool, vars Vars) string {
	loc, matched := resolveLocale(TagFrom(ctx))

	base := singular
	if pluralMode && n != 1 {
		base = plural
	}

	text := base
	found := matched == baseTag

	if loc != nil {
		if pluralMode {
			if found = loc.IsTranslatedND(poDomain, singular, n); found {
				text = loc.GetND(poDomain, singular, plural, n)
			}
		} else {
			if found = loc.IsTranslatedD(poDomain, singular); found {
				text = loc.GetD(poDomain, singular)
			}
		}
	}

	if !found && strictMissingKeys() {
		logMissingOnce(matched.String(), singular)

		text = "⟦" + base + "⟧"
	}

	return render(matched, text, vars)
}

// render formats s as a text/template using the provided data.
func render(locale language.Tag, s string, data Vars) string {
	if !strings.Contains(s, "{{") {
		return s
	}

	var tmpl *template.Template
	if t, ok := templateCache.Load(s); ok {
		tmpl = t.(*template.Template)
	} else {
		var err error

		tmpl, err = template.New("msg").Option("missingkey=error").Parse(s)
		if err != nil {
			Logger.Warn().Err(err).Str("locale", locale.String()).Str("text", s).Msg("Template parse error")

			return s
		}

		templateCache.Store(s, tmpl)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any(data)); err != nil {
		Logger.Warn().Err(err).Str("locale", locale.String()).Str("text", s).Msg("Template execute error")

		return s
	}

	return buf.String()
}

// resolveLocale matches t to one of the loaded locales and returns it with
// the matched supported tag. Without Setup, it returns nil and the base tag.
func resolveLocale(t language.Tag) (*gotext.Locale, language.Tag) {
	if matcher == nil {
		return nil, baseTag
	}

	_, index, _ := matcher.Match(t)
	matched := supportedTags[index]

	return localesByTag[matched.String()], matched
}

// v builds Vars from alternating key, value pairs.
// Panics on programmer error.
func v(kv ...any) Vars {
	if len(kv)%2 != 0 {
		panic("i18n: odd number of arguments, want key, value pairs")
	}

	m := make(Vars, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic("i18n: key must be string")
		}

		m[k] = kv[i+1]
	}

	return m
}
