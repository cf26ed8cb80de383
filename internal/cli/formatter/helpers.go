package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/stainprep/stainprep/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}

	return boxStyle.Render(content)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatUL renders a microliter volume without trailing zeros, e.g. "630 µL".
func FormatUL(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + " µL"
}

// FormatULStyled colors a volume by how close it sits to the warning threshold.
func FormatULStyled(v, threshold float64) string {
	text := FormatUL(v)
	switch {
	case threshold > 0 && v > threshold:
		return StyleRed.Render(text)
	case threshold > 0 && v > 0.8*threshold:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// TypeBadge returns a colored reagent type label.
func TypeBadge(t domain.ReagentType) string {
	label := strings.ReplaceAll(string(t), "_", " ")
	switch t {
	case domain.ReagentPrimary:
		return StyleBlue.Render(label)
	case domain.ReagentOpal, domain.ReagentDAPI:
		return StylePurple.Render(label)
	default:
		return StyleFg.Render(label)
	}
}

// InstrumentBadge returns the instrument label with its default dead volume.
func InstrumentBadge(m domain.InstrumentModel) string {
	return StyleGreen.Render(m.Label()) + Dim(fmt.Sprintf(" (dead %s)", FormatUL(m.DefaultDeadVolumeUL())))
}

// YesNo renders a boolean as a colored yes/no marker.
func YesNo(v bool) string {
	if v {
		return StyleGreen.Render("yes")
	}
	return StyleDim.Render("no")
}

// ShortStockMark flags reagents whose stock can't cover the plan.
func ShortStockMark(short bool) string {
	if short {
		return StyleRed.Render("⚠ short")
	}
	return StyleDim.Render("ok")
}
