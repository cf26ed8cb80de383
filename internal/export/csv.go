// Package export renders a computed prep plan as a tabular artifact.
// Exports are the only durable output of the tool; the worksheet itself is
// session state.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/stainprep/stainprep/internal/domain"
)

// Header is the column layout shared by the CSV and XLSX writers.
var Header = []string{
	"plex", "reagent", "type", "slides", "volume_per_slide_ul",
	"dead_volume_ul", "double_dispense", "total_ul", "short_stock",
}

// WriteCSV writes the plan as CSV: one record per prep entry followed by a
// total record and the threshold-warning record.
func WriteCSV(w io.Writer, plan *domain.PrepPlan) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, e := range plan.Entries() {
		record := []string{
			strconv.Itoa(e.Plex),
			e.ReagentName,
			string(e.Type),
			strconv.Itoa(e.Slides),
			formatUL(e.VolumePerSlideUL),
			formatUL(e.DeadVolumeUL),
			strconv.FormatBool(e.DoubleDispense),
			formatUL(e.TotalUL),
			strconv.FormatBool(e.ShortStock),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv record: %w", err)
		}
	}

	total := []string{"", "total", "", "", "", "", "", formatUL(plan.GrandTotalUL), ""}
	if err := cw.Write(total); err != nil {
		return fmt.Errorf("writing csv total: %w", err)
	}

	warning := []string{"", fmt.Sprintf("over_threshold_%s", formatUL(plan.WarnThresholdUL)),
		"", "", "", "", "", strconv.FormatBool(plan.OverThreshold), ""}
	if err := cw.Write(warning); err != nil {
		return fmt.Errorf("writing csv warning: %w", err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

// formatUL renders a microliter value without trailing zeros.
func formatUL(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
