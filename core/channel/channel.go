// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package channel holds the fixed channel directory shown in the navigation drawer.
package channel

// Channel is a navigation entry.
type Channel struct {
	// Path is the site-absolute link target.
	Path string
	// Title is shown as-is for channels; section titles are translated by the view.
	Title    string
	Icon     string
	Unread   int
	Children []Channel
}

// Directory lists the navigation entries in display order.
var Directory = []Channel{
	{Path: "/c/general", Title: "general", Icon: "hash"},
	{Path: "/c/announcements", Title: "announcements", Icon: "hash", Unread: 2},
	{Path: "/c/music", Title: "music", Icon: "hash", Unread: 5},
	{Path: "/c/community", Title: "community", Icon: "hash"},
	{
		Path: "/about", Title: "About", Icon: "question",
		Children: []Channel{
			{Path: "/about", Title: "Instructions", Icon: "newspaper", Unread: 4},
			{Path: "/faq", Title: "FAQ", Icon: "movie"},
		},
	},
}

const channelPrefix = "/c/"

// Find returns the channel with the given name, as used in /c/{name}.
func Find(name string) (Channel, bool) {
	for _, c := range Directory {
		if c.Path == channelPrefix+name {
			return c, true
		}
	}

	return Channel{}, false
}

// TotalUnread sums unread counts over c and its children.
func (c Channel) TotalUnread() int {
	n := c.Unread
	for _, child := range c.Children {
		n += child.TotalUnread()
	}

	return n
}
