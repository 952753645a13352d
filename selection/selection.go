// Package selection tracks the highlighted row of a list whose length can
// change between moves.
package selection

// Cursor is an optional index into a list. The zero value selects nothing.
type Cursor struct {
	index int
	valid bool
}

// At returns a cursor on row i.
func At(i int) Cursor {
	return Cursor{index: i, valid: true}
}

// Index returns the selected row, or false when nothing is selected.
func (c Cursor) Index() (int, bool) {
	return c.index, c.valid
}

// MoveUp selects the previous row of a list of n rows, selecting the first
// row when nothing was selected. It stops at the top.
func (c *Cursor) MoveUp(n int) {
	c.Clamp(n)
	switch {
	case n == 0:
	case !c.valid:
		*c = At(0)
	case c.index > 0:
		c.index--
	}
}

// MoveDown selects the next row of a list of n rows, selecting the first
// row when nothing was selected. It stops at the bottom.
func (c *Cursor) MoveDown(n int) {
	c.Clamp(n)
	switch {
	case n == 0:
	case !c.valid:
		*c = At(0)
	case c.index < n-1:
		c.index++
	}
}

// Clamp keeps the cursor inside a list of n rows. An empty list clears it.
func (c *Cursor) Clamp(n int) {
	if !c.valid {
		return
	}
	if n <= 0 {
		c.Reset()
		return
	}
	if c.index >= n {
		c.index = n - 1
	}
}

// Reset clears the selection.
func (c *Cursor) Reset() {
	*c = Cursor{}
}
