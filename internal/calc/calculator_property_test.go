package calc

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stainprep/stainprep/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var propTypes = []domain.ReagentType{
	domain.ReagentPrimary, domain.ReagentOpal, domain.ReagentDAPI,
	domain.ReagentAmplifier, domain.ReagentSecondary,
	domain.ReagentPolymer, domain.ReagentOther,
}

// TestBuildPlan_Invariants_TotalIsSumOfEntries property-tests the core
// contract: the grand total is the exact sum of per-entry volumes, the
// warning fires iff the total strictly exceeds the threshold, and grouping
// never drops or duplicates entries.
func TestBuildPlan_Invariants_TotalIsSumOfEntries(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 200; trial++ {
		s := domain.DefaultRunSetup()
		s.Plexes = rng.Intn(domain.MaxPlexes) + 1
		s.TestSlides = rng.Intn(20)
		s.NegControls = rng.Intn(4)
		s.DeadVolumeUL = float64(rng.Intn(600) + 1)
		s.WarnThresholdUL = float64(rng.Intn(8000) + 500)

		numReagents := rng.Intn(10) + 1
		reagents := make([]*domain.Reagent, numReagents)
		var assignments []domain.PlexAssignment
		for i := range reagents {
			typ := propTypes[rng.Intn(len(propTypes))]
			reagents[i] = &domain.Reagent{
				ID:               fmt.Sprintf("r-%d", i),
				Name:             fmt.Sprintf("Reagent %d", i),
				Type:             typ,
				VolumePerSlideUL: float64(rng.Intn(20)),
				InitialStockUL:   float64(rng.Intn(3000)),
			}
			if typ == domain.ReagentPrimary {
				plex := rng.Intn(s.Plexes) + 1
				assignments = append(assignments, domain.PlexAssignment{
					Plex: plex, ReagentID: reagents[i].ID, Position: i,
				})
			}
		}

		plan, err := BuildPlan(Input{Setup: s, Reagents: reagents, Assignments: assignments})
		require.NoError(t, err, "trial %d", trial)

		sum := 0.0
		for _, e := range plan.Entries() {
			sum += e.TotalUL
		}
		assert.InDelta(t, sum, plan.GrandTotalUL, 1e-9,
			"trial %d: grand total must equal the sum of entries", trial)

		assert.Equal(t, plan.GrandTotalUL > s.WarnThresholdUL, plan.OverThreshold,
			"trial %d: warning iff total strictly exceeds threshold", trial)

		// Plex and type subtotals partition the grand total.
		plexSum := 0.0
		for _, pg := range plan.Plexes {
			groupSum := 0.0
			for _, tg := range pg.Groups {
				entrySum := 0.0
				for _, e := range tg.Entries {
					entrySum += e.TotalUL
				}
				assert.InDelta(t, entrySum, tg.SubtotalUL, 1e-9, "trial %d", trial)
				groupSum += tg.SubtotalUL
			}
			assert.InDelta(t, groupSum, pg.SubtotalUL, 1e-9, "trial %d", trial)
			plexSum += pg.SubtotalUL
		}
		assert.InDelta(t, plexSum, plan.GrandTotalUL, 1e-9, "trial %d", trial)
	}
}
