package workspace

// zOrder tracks the single panel rendered above its siblings. It carries no
// other semantics: no input capture, no edit lock.
type zOrder struct {
	frontID string
}

// BringToFront marks id as the front panel. Idempotent.
func (z *zOrder) BringToFront(id string) { z.frontID = id }

// ClearFocus drops the front marker, used when the pointer lands on empty
// canvas space.
func (z *zOrder) ClearFocus() { z.frontID = "" }

// FrontID returns the focused panel id, or "" when none.
func (z *zOrder) FrontID() string { return z.frontID }
