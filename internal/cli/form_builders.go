package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/stainprep/stainprep/internal/cli/formatter"
	"github.com/stainprep/stainprep/internal/domain"
)

func stainprepHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// setupForm collects the run setup fields as strings, validated inline.
func setupForm(instrument, dead, plexes, testSlides, negControls, threshold *string) *huh.Form {
	instrumentOpts := []huh.Option[string]{
		huh.NewOption(domain.InstrumentBondRX.Label(), string(domain.InstrumentBondRX)),
		huh.NewOption(domain.InstrumentBondIII.Label(), string(domain.InstrumentBondIII)),
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Instrument").
				Options(instrumentOpts...).
				Value(instrument),
			huh.NewInput().
				Title("Plexes (1-8)").
				Placeholder("1").
				Value(plexes).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Test Slides per Plex").
				Placeholder("4").
				Value(testSlides).
				Validate(validateNonNegativeInt),
			huh.NewInput().
				Title("Negative Controls per Plex").
				Placeholder("1").
				Value(negControls).
				Validate(validateNonNegativeInt),
			huh.NewInput().
				Title("Dead Volume per Reagent (µL, blank for model default)").
				Placeholder("150").
				Value(dead).
				Validate(validatePositiveFloat),
			huh.NewInput().
				Title("Warning Threshold (µL)").
				Placeholder("4000").
				Value(threshold).
				Validate(validatePositiveFloat),
		),
	).WithTheme(stainprepHuhTheme()).WithShowHelp(false)
}

// primaryMultiSelect builds a multi-select over primary antibodies for one
// plex, pre-checking those already assigned.
func primaryMultiSelect(plex int, primaries []*domain.Reagent, assigned map[string]bool, result *[]string) *huh.Form {
	options := make([]huh.Option[string], 0, len(primaries))
	for _, r := range primaries {
		label := fmt.Sprintf("%s [%s]", r.Name, r.DisplayID())
		options = append(options, huh.NewOption(label, r.ID).Selected(assigned[r.ID]))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title(fmt.Sprintf("Primaries for Plex %d", plex)).
				Options(options...).
				Value(result),
		),
	).WithTheme(stainprepHuhTheme()).WithShowHelp(false)
}

// reagentForm collects a new reagent's fields as strings, validated inline.
func reagentForm(name, typeStr, stock, perSlide, dead *string) *huh.Form {
	typeOpts := make([]huh.Option[string], 0, len(domain.ValidReagentTypes))
	for _, t := range []domain.ReagentType{
		domain.ReagentPrimary, domain.ReagentSecondary, domain.ReagentPolymer,
		domain.ReagentAmplifier, domain.ReagentOpal, domain.ReagentDAPI, domain.ReagentOther,
	} {
		typeOpts = append(typeOpts, huh.NewOption(string(t), string(t)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Reagent Name").
				Placeholder("CD3 clone LN10").
				Value(name).
				Validate(validateRequired),
			huh.NewSelect[string]().
				Title("Type").
				Options(typeOpts...).
				Value(typeStr),
			huh.NewInput().
				Title("Initial Stock (µL)").
				Placeholder("500").
				Value(stock).
				Validate(validateNonNegativeFloat),
			huh.NewInput().
				Title("Volume per Slide (µL)").
				Placeholder("2.5").
				Value(perSlide).
				Validate(validatePositiveFloat),
			huh.NewInput().
				Title("Dead Volume (µL, blank for run default)").
				Placeholder("150").
				Value(dead).
				Validate(validatePositiveFloat),
		),
	).WithTheme(stainprepHuhTheme()).WithShowHelp(false)
}

// confirmForm creates a huh form for a yes/no confirmation.
func confirmForm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(stainprepHuhTheme()).WithShowHelp(false)
}

// validatePositiveInt accepts empty or a positive integer.
func validatePositiveInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

// validateNonNegativeInt accepts empty or a non-negative integer.
func validateNonNegativeInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return fmt.Errorf("enter a non-negative number")
	}
	return nil
}

// validateRequired rejects blank input.
func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

// validatePositiveFloat accepts empty or a positive number.
func validatePositiveFloat(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

// validateNonNegativeFloat accepts empty or a non-negative number.
func validateNonNegativeFloat(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return fmt.Errorf("enter a non-negative number")
	}
	return nil
}

// parsePositiveInt parses s as a positive integer, returning fallback when it
// isn't one. Form validation has already run, so this is a safe conversion.
func parsePositiveInt(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

// parseNonNegativeInt parses s as a non-negative integer, returning fallback
// when it isn't one.
func parseNonNegativeInt(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
