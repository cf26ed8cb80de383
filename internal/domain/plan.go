package domain

import "time"

// PrepEntry is one computed row of the prep table: a reagent dispensed in
// one plex, with the volume the tech must prepare.
type PrepEntry struct {
	Plex             int
	ReagentID        string
	ReagentName      string
	Type             ReagentType
	Slides           int
	VolumePerSlideUL float64
	DeadVolumeUL     float64
	DoubleDispense   bool
	TotalUL          float64
	ShortStock       bool
}

// TypeGroup collects a plex's entries of one reagent type for display.
type TypeGroup struct {
	Type       ReagentType
	Entries    []PrepEntry
	SubtotalUL float64
}

// PlexGroup collects one plex's type groups.
type PlexGroup struct {
	Plex       int
	Groups     []TypeGroup
	SubtotalUL float64
}

// PrepPlan is the computed output of the calculator. It is never stored;
// exports are the only durable artifact.
type PrepPlan struct {
	Plexes          []PlexGroup
	GrandTotalUL    float64
	WarnThresholdUL float64
	OverThreshold   bool
	GeneratedAt     time.Time
}

// Entries returns all rows flattened in render order.
func (p *PrepPlan) Entries() []PrepEntry {
	var out []PrepEntry
	for _, pg := range p.Plexes {
		for _, tg := range pg.Groups {
			out = append(out, tg.Entries...)
		}
	}
	return out
}

// EntryCount returns the number of rows in the plan.
func (p *PrepPlan) EntryCount() int {
	n := 0
	for _, pg := range p.Plexes {
		for _, tg := range pg.Groups {
			n += len(tg.Entries)
		}
	}
	return n
}

// ShortStockNames returns the distinct reagent names flagged short on stock,
// in render order.
func (p *PrepPlan) ShortStockNames() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range p.Entries() {
		if e.ShortStock && !seen[e.ReagentName] {
			seen[e.ReagentName] = true
			out = append(out, e.ReagentName)
		}
	}
	return out
}
