package export

import (
	"fmt"
	"io"

	"github.com/stainprep/stainprep/internal/domain"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Prep Plan"

// WriteXLSX writes the plan as a styled Excel workbook: a merged title row,
// a bold header, one row per entry, and a total/warning block.
func WriteXLSX(w io.Writer, plan *domain.PrepPlan) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("dropping default sheet: %w", err)
	}

	numCols := len(Header)
	endCol, err := excelize.ColumnNumberToName(numCols)
	if err != nil {
		return fmt.Errorf("resolving last column: %w", err)
	}

	// Title row, merged across all columns.
	if err := f.MergeCell(sheetName, "A1", endCol+"1"); err != nil {
		return fmt.Errorf("merging title row: %w", err)
	}
	titleStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Font:      &excelize.Font{Bold: true, Size: 12},
	})
	if err != nil {
		return fmt.Errorf("creating title style: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", endCol+"1", titleStyle); err != nil {
		return fmt.Errorf("styling title row: %w", err)
	}
	title := fmt.Sprintf("Reagent Prep Plan — %s generated %s",
		formatUL(plan.GrandTotalUL)+" µL total", plan.GeneratedAt.Format("2006-01-02 15:04"))
	if err := f.SetCellValue(sheetName, "A1", title); err != nil {
		return fmt.Errorf("writing title: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	for col, h := range Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 2)
		if err != nil {
			return fmt.Errorf("resolving header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	if err := f.SetCellStyle(sheetName, "A2", endCol+"2", headerStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	shortStockStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "9A0511"},
	})
	if err != nil {
		return fmt.Errorf("creating short-stock style: %w", err)
	}

	row := 3
	for _, e := range plan.Entries() {
		values := []interface{}{
			e.Plex, e.ReagentName, string(e.Type), e.Slides,
			e.VolumePerSlideUL, e.DeadVolumeUL, e.DoubleDispense,
			e.TotalUL, e.ShortStock,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return fmt.Errorf("resolving cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("writing entry row: %w", err)
			}
		}
		if e.ShortStock {
			start, _ := excelize.CoordinatesToCellName(1, row)
			end, _ := excelize.CoordinatesToCellName(numCols, row)
			if err := f.SetCellStyle(sheetName, start, end, shortStockStyle); err != nil {
				return fmt.Errorf("styling short-stock row: %w", err)
			}
		}
		row++
	}

	// Total and warning rows.
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating total style: %w", err)
	}
	totalCell, _ := excelize.CoordinatesToCellName(2, row)
	totalValCell, _ := excelize.CoordinatesToCellName(8, row)
	if err := f.SetCellValue(sheetName, totalCell, "TOTAL"); err != nil {
		return fmt.Errorf("writing total label: %w", err)
	}
	if err := f.SetCellValue(sheetName, totalValCell, plan.GrandTotalUL); err != nil {
		return fmt.Errorf("writing total value: %w", err)
	}
	startTotal, _ := excelize.CoordinatesToCellName(1, row)
	endTotal, _ := excelize.CoordinatesToCellName(numCols, row)
	if err := f.SetCellStyle(sheetName, startTotal, endTotal, totalStyle); err != nil {
		return fmt.Errorf("styling total row: %w", err)
	}
	row++

	warnLabelCell, _ := excelize.CoordinatesToCellName(2, row)
	warnValCell, _ := excelize.CoordinatesToCellName(8, row)
	label := fmt.Sprintf("OVER %s µL THRESHOLD", formatUL(plan.WarnThresholdUL))
	if err := f.SetCellValue(sheetName, warnLabelCell, label); err != nil {
		return fmt.Errorf("writing warning label: %w", err)
	}
	if err := f.SetCellValue(sheetName, warnValCell, plan.OverThreshold); err != nil {
		return fmt.Errorf("writing warning value: %w", err)
	}
	if plan.OverThreshold {
		warnStyle, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"C00000"}},
		})
		if err != nil {
			return fmt.Errorf("creating warning style: %w", err)
		}
		startWarn, _ := excelize.CoordinatesToCellName(1, row)
		endWarn, _ := excelize.CoordinatesToCellName(numCols, row)
		if err := f.SetCellStyle(sheetName, startWarn, endWarn, warnStyle); err != nil {
			return fmt.Errorf("styling warning row: %w", err)
		}
	}

	if err := sizeColumns(f, plan); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// sizeColumns widens each column to fit its longest value.
func sizeColumns(f *excelize.File, plan *domain.PrepPlan) error {
	widths := make([]float64, len(Header))
	for i, h := range Header {
		widths[i] = approxTextWidth(h)
	}
	for _, e := range plan.Entries() {
		if w := approxTextWidth(e.ReagentName); w > widths[1] {
			widths[1] = w
		}
	}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("resolving column: %w", err)
		}
		if err := f.SetColWidth(sheetName, col, col, w); err != nil {
			return fmt.Errorf("sizing column %s: %w", col, err)
		}
	}
	return nil
}

// approxTextWidth estimates the rendered width of text in Excel column
// units: one unit per ASCII rune, two for wider runes, plus padding.
func approxTextWidth(text string) float64 {
	width := 0.0
	for _, r := range text {
		if r <= 127 {
			width += 1.0
		} else {
			width += 2.0
		}
	}
	return width + 3.0
}
