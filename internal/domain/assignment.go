package domain

import "time"

// PlexAssignment binds a primary antibody to one plex of the run. Position
// preserves the order the user picked the primaries in.
type PlexAssignment struct {
	Plex      int
	ReagentID string
	Position  int
	CreatedAt time.Time
}
