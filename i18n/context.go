// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

type contextKeyType struct{}

var tagKey = contextKeyType{}

const (
	// LangParam is the URL query parameter carrying a preferred BCP 47 tag.
	LangParam = "lang"

	// LangCookie is the cookie carrying a preferred BCP 47 tag.
	LangCookie = "lang"
)

// WithTag stores t in ctx.
func WithTag(ctx context.Context, t language.Tag) context.Context {
	return context.WithValue(ctx, tagKey, t)
}

// TagFrom returns the language tag stored in ctx, or the base tag if none
// is present. It never returns the zero value of [language.Tag].
func TagFrom(ctx context.Context) language.Tag {
	if ctx != nil {
		if t, _ := ctx.Value(tagKey).(language.Tag); t != (language.Tag{}) {
			return t
		}
	}

	return baseTag
}

// FromRequest returns the best supported language tag for r, looking at
// the [LangParam] query parameter, the [LangCookie] cookie and the
// Accept-Language header in that order.
//
// A query parameter of "auto" ignores the cookie.
// If r is nil or Setup has not been called, the base tag is returned.
func FromRequest(r *http.Request) language.Tag {
	if r == nil || matcher == nil {
		return baseTag
	}

	q := r.URL.Query().Get(LangParam)
	auto := strings.EqualFold(q, "auto")

	preferred := make([]string, 0, 3)
	if q != "" && !auto {
		preferred = append(preferred, q)
	}

	if !auto {
		if c, err := r.Cookie(LangCookie); err == nil && c.Value != "" {
			preferred = append(preferred, c.Value)
		}
	}

	if al := r.Header.Get("Accept-Language"); al != "" {
		preferred = append(preferred, al)
	}

	_, index := language.MatchStrings(matcher, preferred...)

	return supportedTags[index]
}

// WithRequest is WithTag(ctx, FromRequest(r)).
func WithRequest(ctx context.Context, r *http.Request) context.Context {
	return WithTag(ctx, FromRequest(r))
}

// HTMLLang returns the value for the <html lang> attribute of ctx's locale.
func HTMLLang(ctx context.Context) string {
	base, _ := TagFrom(ctx).Base()

	return base.String()
}
