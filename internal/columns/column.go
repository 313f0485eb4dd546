// Package columns holds the parent, current and child listings shown side by
// side, and the navigation that moves between them.
package columns

import "github.com/LFroesch/trio/internal/listing"

// Column is a listing plus an optional cursor. An empty column never has a
// cursor, and a present cursor is always in range.
type Column struct {
	entries   []listing.Entry
	cursor    int
	hasCursor bool
}

// NewColumn wraps entries with the cursor on the first one.
func NewColumn(entries []listing.Entry) *Column {
	c := &Column{}
	c.SetEntries(entries)
	return c
}

// SetEntries replaces the listing and resets the cursor to 0, or to none
// when entries is empty.
func (c *Column) SetEntries(entries []listing.Entry) {
	c.entries = entries
	c.cursor = 0
	c.hasCursor = len(entries) > 0
}

func (c *Column) Entries() []listing.Entry { return c.entries }

func (c *Column) Len() int { return len(c.entries) }

// Cursor returns the cursor index and whether one is set.
func (c *Column) Cursor() (int, bool) {
	return c.cursor, c.hasCursor
}

// Select moves the cursor to i. An out-of-range index clears the cursor.
func (c *Column) Select(i int) {
	if i < 0 || i >= len(c.entries) {
		c.cursor, c.hasCursor = 0, false
		return
	}
	c.cursor, c.hasCursor = i, true
}

// Selected returns the entry under the cursor.
func (c *Column) Selected() (listing.Entry, bool) {
	if !c.hasCursor {
		return listing.Entry{}, false
	}
	return c.entries[c.cursor], true
}

// IndexOf returns the position of path, or -1.
func (c *Column) IndexOf(path string) int {
	for i, e := range c.entries {
		if e.Path == path {
			return i
		}
	}
	return -1
}

// Next moves down one entry, wrapping to the top.
func (c *Column) Next() {
	if len(c.entries) == 0 {
		return
	}
	if !c.hasCursor {
		c.Select(0)
		return
	}
	c.Select((c.cursor + 1) % len(c.entries))
}

// Prev moves up one entry, wrapping to the bottom.
func (c *Column) Prev() {
	if len(c.entries) == 0 {
		return
	}
	if !c.hasCursor {
		c.Select(len(c.entries) - 1)
		return
	}
	c.Select((c.cursor - 1 + len(c.entries)) % len(c.entries))
}

func (c *Column) First() { c.Select(0) }

func (c *Column) Last() { c.Select(len(c.entries) - 1) }

// SetTagged updates the tag flag of the entry at path, if listed.
func (c *Column) SetTagged(path string, tagged bool) {
	if i := c.IndexOf(path); i >= 0 {
		c.entries[i].Tagged = tagged
	}
}
