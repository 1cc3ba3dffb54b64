// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"time"

	"codeberg.org/vabber/vabber/i18n"
)

// now is replaced in tests.
var now = time.Now

// relativeTime describes date relative to the current time, e.g. "5 minutes ago".
//
// "Yesterday" is used when date falls on the previous calendar day,
// regardless of how many hours have elapsed.
func relativeTime(ctx context.Context, date time.Time) string {
	current := now()
	// Calendar days and clock times are those of the server.
	date = date.In(current.Location())
	duration := current.Sub(date)

	const hoursInDay = 24

	switch {
	case duration < time.Minute:
		return i18n.Tr(ctx, "just now")

	case duration < time.Hour:
		minutes := int(duration.Minutes())

		return i18n.TrN(ctx, "{{.Count}} minute ago", "{{.Count}} minutes ago", minutes, "Count", minutes)

	case duration < hoursInDay*time.Hour:
		hours := int(duration.Hours())

		return i18n.TrN(ctx, "{{.Count}} hour ago", "{{.Count}} hours ago", hours, "Count", hours)
	}

	yesterday := current.AddDate(0, 0, -1)
	if date.Year() == yesterday.Year() && date.YearDay() == yesterday.YearDay() {
		return i18n.Tr(ctx, "yesterday at {{.Time}}", "Time", date.Format("15:04"))
	}

	days := int(duration.Hours() / hoursInDay)

	return i18n.TrN(ctx, "{{.Count}} day ago", "{{.Count}} days ago", days, "Count", days)
}
