package domain

import "time"

// Child represents a child profile owned by exactly one parent
type Child struct {
	ID        int64
	ParentID  int64
	Name      string
	Age       int
	Address   *string
	Condition *string
	Notes     *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwnedBy returns true if the parent owns the profile
func (c *Child) IsOwnedBy(parentID int64) bool {
	return c.ParentID == parentID
}
