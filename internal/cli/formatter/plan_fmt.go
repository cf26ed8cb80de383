package formatter

import (
	"fmt"
	"strings"

	"github.com/stainprep/stainprep/internal/domain"
)

// FormatPrepPlan formats a computed plan as a styled worksheet: one section
// per plex, reagents grouped by type, subtotals, and a grand total line with
// the threshold warning when the run exceeds it.
func FormatPrepPlan(plan *domain.PrepPlan) string {
	if plan.EntryCount() == 0 {
		return Dim("Nothing to prepare. Add reagents and assign primaries first.")
	}

	var b strings.Builder

	for i, plex := range plan.Plexes {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Header(fmt.Sprintf("Plex %d", plex.Plex)) + "\n")

		headers := []string{"REAGENT", "TYPE", "SLIDES", "PER SLIDE", "DEAD", "TOTAL", "STOCK"}
		rows := make([][]string, 0, 8)
		for _, group := range plex.Groups {
			for _, e := range group.Entries {
				perSlide := FormatUL(e.VolumePerSlideUL)
				if e.DoubleDispense {
					perSlide += Dim(" ×2")
				}
				rows = append(rows, []string{
					Bold(e.ReagentName),
					TypeBadge(e.Type),
					fmt.Sprintf("%d", e.Slides),
					perSlide,
					FormatUL(e.DeadVolumeUL),
					FormatULStyled(e.TotalUL, plan.WarnThresholdUL),
					ShortStockMark(e.ShortStock),
				})
			}
		}
		b.WriteString(RenderTable(headers, rows))
		b.WriteString(Dim("subtotal ") + Bold(FormatUL(plex.SubtotalUL)) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(Bold("Grand total: ") + FormatULStyled(plan.GrandTotalUL, plan.WarnThresholdUL) + "\n")

	if plan.OverThreshold {
		b.WriteString(StyleRed.Render(fmt.Sprintf("  WARNING: total exceeds %s — split the run or reduce slides", FormatUL(plan.WarnThresholdUL))) + "\n")
	}
	if short := plan.ShortStockNames(); len(short) > 0 {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("  WARNING: insufficient stock: %s", strings.Join(short, ", "))) + "\n")
	}

	return RenderBox("Prep Plan", b.String())
}

// FormatRunSetup formats the current run configuration.
func FormatRunSetup(s *domain.RunSetup) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Instrument:"), InstrumentBadge(s.Instrument)))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Dead volume:"), StyleFg.Render(FormatUL(s.DeadVolumeUL))))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Plexes:"), StyleFg.Render(fmt.Sprintf("%d", s.Plexes))))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Test slides:"), StyleFg.Render(fmt.Sprintf("%d", s.TestSlides))))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Negative controls:"), StyleFg.Render(fmt.Sprintf("%d", s.NegControls))))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Warn threshold:"), StyleFg.Render(FormatUL(s.WarnThresholdUL))))

	return RenderBox("Run Setup", b.String())
}

// FormatAssignments formats plex assignments as one line per plex.
func FormatAssignments(assignments []domain.PlexAssignment, reagents map[string]*domain.Reagent, plexes int) string {
	var b strings.Builder

	byPlex := make(map[int][]string)
	for _, a := range assignments {
		name := a.ReagentID
		if r, ok := reagents[a.ReagentID]; ok {
			name = r.Name
		}
		byPlex[a.Plex] = append(byPlex[a.Plex], name)
	}

	for plex := 1; plex <= plexes; plex++ {
		names := byPlex[plex]
		line := Dim("(no primaries assigned)")
		if len(names) > 0 {
			line = StyleFg.Render(strings.Join(names, ", "))
		}
		b.WriteString(fmt.Sprintf("%s %s\n", Bold(fmt.Sprintf("Plex %d:", plex)), line))
	}

	return RenderBox("Plex Assignments", b.String())
}
