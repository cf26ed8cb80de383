package formatter

import (
	"fmt"

	"github.com/stainprep/stainprep/internal/domain"
)

// FormatReagentList formats the worksheet's reagents as a table in worksheet
// order.
func FormatReagentList(reagents []*domain.Reagent) string {
	headers := []string{"ID", "NAME", "TYPE", "STOCK", "PER SLIDE", "DEAD", "SLIDES"}
	rows := make([][]string, 0, len(reagents))

	for _, r := range reagents {
		dead := Dim("run default")
		if r.DeadVolumeUL != nil {
			dead = StyleFg.Render(FormatUL(*r.DeadVolumeUL))
		}
		slides := Dim("derived")
		if r.SlidesOverride != nil {
			slides = StyleFg.Render(fmt.Sprintf("%d", *r.SlidesOverride))
		}
		rows = append(rows, []string{
			TruncID(r.ID),
			Bold(r.Name),
			TypeBadge(r.Type),
			StyleFg.Render(FormatUL(r.InitialStockUL)),
			StyleFg.Render(FormatUL(r.VolumePerSlideUL)),
			dead,
			slides,
		})
	}

	return RenderTable(headers, rows)
}
