package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/xvierd/smokefree-cli/internal/domain"
)

// intInRange returns a validator for a whole number within [lo, hi].
func intInRange(name string, lo, hi int) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("%s must be a whole number", name)
		}
		if v < lo || v > hi {
			return fmt.Errorf("%s must be between %d and %d", name, lo, hi)
		}
		return nil
	}
}

func nonNegativeFloat(name string) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("%s must be a number", name)
		}
		if v < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
		return nil
	}
}

// NewBiometricsForm builds the entry form. Values land in in; the reading
// is validated as a whole by domain.ParseBiometrics after submit.
func NewBiometricsForm(in *domain.BiometricInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Systolic (mmHg)").
				Placeholder("120").
				Value(&in.Systolic).
				Validate(intInRange("systolic", 50, 250)),
			huh.NewInput().
				Title("Diastolic (mmHg)").
				Placeholder("80").
				Value(&in.Diastolic).
				Validate(intInRange("diastolic", 30, 150)),
			huh.NewInput().
				Title("Pulse (bpm)").
				Placeholder("72").
				Value(&in.Pulse).
				Validate(intInRange("pulse", 30, 220)),
			huh.NewInput().
				Title("SpO2 (%)").
				Placeholder("98").
				Value(&in.SpO2).
				Validate(intInRange("spo2", 50, 100)),
		),
	).WithTheme(huh.ThemeDracula())
}

// HabitsFormModel holds the habit form fields as typed text.
type HabitsFormModel struct {
	CigarettesPerDay  string
	CostPerPack       string
	CigarettesPerPack string
	Currency          string
}

// NewHabitsFormModel pre-fills the form from the current habits.
func NewHabitsFormModel(h domain.Habits) *HabitsFormModel {
	return &HabitsFormModel{
		CigarettesPerDay:  strconv.Itoa(h.CigarettesPerDay),
		CostPerPack:       strconv.FormatFloat(h.CostPerPack, 'f', -1, 64),
		CigarettesPerPack: strconv.Itoa(h.CigarettesPerPack),
		Currency:          h.Currency,
	}
}

// Habits converts the submitted fields and validates them.
func (fm *HabitsFormModel) Habits() (domain.Habits, error) {
	perDay, err := strconv.Atoi(strings.TrimSpace(fm.CigarettesPerDay))
	if err != nil {
		return domain.Habits{}, fmt.Errorf("%w: cigarettes per day must be a whole number", domain.ErrInvalidHabits)
	}
	cost, err := strconv.ParseFloat(strings.TrimSpace(fm.CostPerPack), 64)
	if err != nil {
		return domain.Habits{}, fmt.Errorf("%w: cost per pack must be a number", domain.ErrInvalidHabits)
	}
	perPack, err := strconv.Atoi(strings.TrimSpace(fm.CigarettesPerPack))
	if err != nil {
		return domain.Habits{}, fmt.Errorf("%w: cigarettes per pack must be a whole number", domain.ErrInvalidHabits)
	}
	h := domain.Habits{
		CigarettesPerDay:  perDay,
		CostPerPack:       cost,
		CigarettesPerPack: perPack,
		Currency:          strings.TrimSpace(fm.Currency),
	}
	if err := h.Validate(); err != nil {
		return domain.Habits{}, err
	}
	return h, nil
}

// NewHabitsForm builds the habit settings form.
func NewHabitsForm(fm *HabitsFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Cigarettes per day").
				Value(&fm.CigarettesPerDay).
				Validate(intInRange("cigarettes per day", 0, 200)),
			huh.NewInput().
				Title("Cost per pack").
				Value(&fm.CostPerPack).
				Validate(nonNegativeFloat("cost per pack")),
			huh.NewInput().
				Title("Cigarettes per pack").
				Value(&fm.CigarettesPerPack).
				Validate(intInRange("cigarettes per pack", 1, 100)),
			huh.NewInput().
				Title("Currency symbol").
				Value(&fm.Currency),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewQuitDateForm builds the quit date prompt. raw receives the typed value.
func NewQuitDateForm(raw *string, now time.Time) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("When did you quit?").
				Description("now, 2006-01-02, 2006-01-02 15:04 or RFC3339").
				Placeholder(now.Format("2006-01-02 15:04")).
				Value(raw).
				Validate(func(s string) error {
					_, err := domain.ParseQuitInput(s, now, time.Local)
					return err
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// CravingFormModel holds the craving form fields.
type CravingFormModel struct {
	Type      domain.CravingType
	Intensity string
	Trigger   string
	Overcome  bool
}

// NewCravingForm builds the craving log form.
func NewCravingForm(fm *CravingFormModel) *huh.Form {
	types := make([]huh.Option[domain.CravingType], 0, len(domain.ValidCravingTypes))
	for _, t := range domain.ValidCravingTypes {
		types = append(types, huh.NewOption(fmt.Sprintf("%s (%s)", t.Label(), t.Hint()), t))
	}
	triggers := []huh.Option[string]{huh.NewOption("None", "")}
	for _, tr := range domain.Triggers {
		triggers = append(triggers, huh.NewOption(tr, tr))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[domain.CravingType]().
				Title("What kind of craving?").
				Options(types...).
				Value(&fm.Type),
			huh.NewInput().
				Title("Intensity (1-10)").
				Value(&fm.Intensity).
				Validate(intInRange("intensity", 1, 10)),
			huh.NewSelect[string]().
				Title("Trigger").
				Options(triggers...).
				Value(&fm.Trigger),
			huh.NewConfirm().
				Title("Did you overcome it?").
				Value(&fm.Overcome),
		),
	).WithTheme(huh.ThemeDracula())
}
