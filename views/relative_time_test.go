// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRelativeTime(t *testing.T) {
	fixed := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = time.Now })

	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{"future", fixed.Add(time.Minute), "just now"},
		{"seconds", fixed.Add(-30 * time.Second), "just now"},
		{"one minute", fixed.Add(-time.Minute), "1 minute ago"},
		{"minutes", fixed.Add(-5 * time.Minute), "5 minutes ago"},
		{"hours", fixed.Add(-3 * time.Hour), "3 hours ago"},
		{"within a day", time.Date(2025, time.March, 9, 13, 0, 0, 0, time.UTC), "23 hours ago"},
		{"yesterday morning", time.Date(2025, time.March, 9, 7, 15, 0, 0, time.UTC), "yesterday at 07:15"},
		{"days", fixed.AddDate(0, 0, -4), "4 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, relativeTime(context.Background(), tt.date))
		})
	}
}

func TestRelativeTimeUsesServerZone(t *testing.T) {
	cet := time.FixedZone("CET", 60*60)
	fixed := time.Date(2025, time.March, 10, 12, 0, 0, 0, cet)

	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = time.Now })

	// 23:30 UTC on the 8th is 00:30 on the 9th in the server's zone.
	signedIn := time.Date(2025, time.March, 8, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, "yesterday at 00:30", relativeTime(context.Background(), signedIn))
}
