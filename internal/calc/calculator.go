// Package calc contains the pure reagent plan calculator. It never touches
// storage or the CLI; callers hand it the worksheet and get a plan back.
package calc

import (
	"sort"
	"time"

	"github.com/stainprep/stainprep/internal/domain"
)

// Input is the full worksheet state the calculator operates on.
type Input struct {
	Setup       *domain.RunSetup
	Reagents    []*domain.Reagent
	Assignments []domain.PlexAssignment
}

// BuildPlan computes the prep table for the given worksheet. It has no side
// effects and is deterministic: identical input yields an identical plan.
func BuildPlan(in Input) (*domain.PrepPlan, error) {
	if in.Setup == nil {
		return nil, domain.Validationf("setup", "run setup is required")
	}
	if err := in.Setup.Validate(); err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Reagent, len(in.Reagents))
	for _, r := range in.Reagents {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		byID[r.ID] = r
	}

	assigned, err := primariesByPlex(in, byID)
	if err != nil {
		return nil, err
	}

	nonPrimaries := make([]*domain.Reagent, 0, len(in.Reagents))
	for _, r := range in.Reagents {
		if r.Type != domain.ReagentPrimary {
			nonPrimaries = append(nonPrimaries, r)
		}
	}

	plan := &domain.PrepPlan{
		WarnThresholdUL: in.Setup.WarnThresholdUL,
		GeneratedAt:     time.Now().UTC(),
	}

	// Demand per reagent across the whole plan, for the short-stock flag.
	demand := make(map[string]float64)

	for plex := 1; plex <= in.Setup.Plexes; plex++ {
		var entries []domain.PrepEntry
		for _, r := range assigned[plex] {
			entries = append(entries, entryFor(plex, r, in.Setup))
		}
		for _, r := range nonPrimaries {
			entries = append(entries, entryFor(plex, r, in.Setup))
		}
		if len(entries) == 0 {
			continue
		}

		pg := groupByType(plex, entries)
		plan.GrandTotalUL += pg.SubtotalUL
		plan.Plexes = append(plan.Plexes, pg)

		for _, e := range entries {
			demand[e.ReagentID] += e.TotalUL
		}
	}

	// Strictly greater than: a total of exactly the threshold does not warn.
	plan.OverThreshold = plan.GrandTotalUL > plan.WarnThresholdUL

	flagShortStock(plan, byID, demand)

	return plan, nil
}

// EntryVolumeUL computes the volume for a single reagent under the given
// setup: slides x volume per slide, doubled for double-dispensed types,
// plus dead volume.
func EntryVolumeUL(r *domain.Reagent, setup *domain.RunSetup) float64 {
	e := entryFor(0, r, setup)
	return e.TotalUL
}

func entryFor(plex int, r *domain.Reagent, setup *domain.RunSetup) domain.PrepEntry {
	slides := setup.SlidesFor(r.Type)
	if r.SlidesOverride != nil {
		slides = *r.SlidesOverride
	}

	base := float64(slides) * r.VolumePerSlideUL
	if r.Type.DoubleDispensed() {
		base *= 2
	}

	dead := r.EffectiveDeadVolumeUL(setup.DeadVolumeUL)

	return domain.PrepEntry{
		Plex:             plex,
		ReagentID:        r.ID,
		ReagentName:      r.Name,
		Type:             r.Type,
		Slides:           slides,
		VolumePerSlideUL: r.VolumePerSlideUL,
		DeadVolumeUL:     dead,
		DoubleDispense:   r.Type.DoubleDispensed(),
		TotalUL:          base + dead,
	}
}

// primariesByPlex resolves assignments to reagents, validating that each
// referenced reagent exists, is a primary, and sits in a plex within range.
func primariesByPlex(in Input, byID map[string]*domain.Reagent) (map[int][]*domain.Reagent, error) {
	assigned := make(map[int][]*domain.Reagent)
	seen := make(map[int]map[string]bool)

	ordered := make([]domain.PlexAssignment, len(in.Assignments))
	copy(ordered, in.Assignments)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Plex != ordered[j].Plex {
			return ordered[i].Plex < ordered[j].Plex
		}
		return ordered[i].Position < ordered[j].Position
	})

	for _, a := range ordered {
		if a.Plex < 1 || a.Plex > in.Setup.Plexes {
			return nil, domain.Validationf("plex", "plex %d is outside the configured run (1-%d)", a.Plex, in.Setup.Plexes)
		}
		r, ok := byID[a.ReagentID]
		if !ok {
			return nil, domain.Validationf("reagent", "assignment references unknown reagent %q", a.ReagentID)
		}
		if r.Type != domain.ReagentPrimary {
			return nil, domain.Validationf("reagent", "reagent %q is %s, only primaries are assigned to plexes", r.Name, r.Type)
		}
		if seen[a.Plex] == nil {
			seen[a.Plex] = make(map[string]bool)
		}
		if seen[a.Plex][a.ReagentID] {
			return nil, domain.Validationf("reagent", "reagent %q assigned twice to plex %d", r.Name, a.Plex)
		}
		seen[a.Plex][a.ReagentID] = true
		assigned[a.Plex] = append(assigned[a.Plex], r)
	}

	return assigned, nil
}

// groupByType buckets a plex's entries by reagent type in protocol order.
// Entry order within a group follows the incoming slice, so grouping is
// stable across repeated runs.
func groupByType(plex int, entries []domain.PrepEntry) domain.PlexGroup {
	buckets := make(map[domain.ReagentType][]domain.PrepEntry)
	var order []domain.ReagentType
	for _, e := range entries {
		if _, ok := buckets[e.Type]; !ok {
			order = append(order, e.Type)
		}
		buckets[e.Type] = append(buckets[e.Type], e)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].GroupOrder() < order[j].GroupOrder()
	})

	pg := domain.PlexGroup{Plex: plex}
	for _, t := range order {
		tg := domain.TypeGroup{Type: t, Entries: buckets[t]}
		for _, e := range tg.Entries {
			tg.SubtotalUL += e.TotalUL
		}
		pg.SubtotalUL += tg.SubtotalUL
		pg.Groups = append(pg.Groups, tg)
	}
	return pg
}

func flagShortStock(plan *domain.PrepPlan, byID map[string]*domain.Reagent, demand map[string]float64) {
	for pi := range plan.Plexes {
		for gi := range plan.Plexes[pi].Groups {
			entries := plan.Plexes[pi].Groups[gi].Entries
			for ei := range entries {
				r := byID[entries[ei].ReagentID]
				if r != nil && r.InitialStockUL > 0 && demand[r.ID] > r.InitialStockUL {
					entries[ei].ShortStock = true
				}
			}
		}
	}
}
