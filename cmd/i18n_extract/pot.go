// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"bytes"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"
)

// renderPOT writes refs as a gettext template, sorted by context, msgid and plural.
func renderPOT(refs map[key][]ref, version string, created time.Time) string {
	keys := make([]key, 0, len(refs))
	for k := range refs {
		keys = append(keys, k)
	}

	slices.SortFunc(keys, func(a, b key) int {
		if c := strings.Compare(a.ctx, b.ctx); c != 0 {
			return c
		}

		if c := strings.Compare(a.id, b.id); c != 0 {
			return c
		}

		return strings.Compare(a.plural, b.plural)
	})

	var b strings.Builder
	writeHeader(&b, version, created)

	for i, k := range keys {
		writeReferences(&b, refs[k])

		if k.ctx != "" {
			fmt.Fprintf(&b, "msgctxt %q\n", k.ctx)
		}

		fmt.Fprintf(&b, "msgid %q\n", k.id)

		if k.plural != "" {
			fmt.Fprintf(&b, "msgid_plural %q\n", k.plural)
			fmt.Fprintln(&b, `msgstr[0] ""`)
			fmt.Fprintln(&b, `msgstr[1] ""`)
		} else {
			fmt.Fprintln(&b, `msgstr ""`)
		}

		if i < len(keys)-1 {
			fmt.Fprintln(&b)
		}
	}

	return b.String()
}

// writeReferences emits the "#:" source reference line, sorted and without duplicates.
func writeReferences(b *strings.Builder, rs []ref) {
	rs = slices.Clone(rs)
	slices.SortFunc(rs, func(a, b ref) int {
		if c := strings.Compare(a.file, b.file); c != 0 {
			return c
		}

		return a.line - b.line
	})
	rs = slices.Compact(rs)

	fmt.Fprint(b, "#:")

	for _, r := range rs {
		fmt.Fprintf(b, " %s:%d", r.file, r.line)
	}

	fmt.Fprintln(b)
}

// writeHeader emits a POT header.
func writeHeader(b *strings.Builder, version string, created time.Time) {
	fmt.Fprintln(b, `msgid ""`)
	fmt.Fprintln(b, `msgstr ""`)
	fmt.Fprintf(b, "\"Project-Id-Version: Vabber %s\\n\"\n", version)
	fmt.Fprintf(b, "\"POT-Creation-Date: %s\\n\"\n", created.UTC().Format("2006-01-02 15:04+0000"))
	fmt.Fprintln(b, `"Language: en\n"`)
	fmt.Fprintln(b, `"Report-Msgid-Bugs-To: https://codeberg.org/vabber/vabber/issues\n"`)
	fmt.Fprintln(b, `"MIME-Version: 1.0\n"`)
	fmt.Fprintln(b, `"Content-Type: text/plain; charset=UTF-8\n"`)
	fmt.Fprintln(b, `"Content-Transfer-Encoding: 8bit\n"`)
	fmt.Fprintln(b, `"Plural-Forms: nplurals=2; plural=(n != 1);\n"`)
	fmt.Fprintln(b)
}

var creationDateLine = regexp.MustCompile(`(?m)^"POT-Creation-Date: .*\n`)

// stripCreationDate removes the header line that changes on every run.
func stripCreationDate(pot []byte) []byte {
	return bytes.TrimSpace(creationDateLine.ReplaceAll(pot, nil))
}
