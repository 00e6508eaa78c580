package main

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"trial-screening/pkg/models"
	"trial-screening/pkg/validation"
	"trial-screening/pkg/wizard"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")).MarginBottom(1)
	labelStyle = lipgloss.NewStyle().Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	doneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
)

type field struct {
	name  validation.Field
	label string
	hint  string
	input textinput.Model
}

// fieldErrors is the terminal Reporter
type fieldErrors map[validation.Field]string

func (fe fieldErrors) ReportVerdict(f validation.Field, v validation.Verdict) {
	if v.Valid {
		delete(fe, f)
		return
	}
	fe[f] = v.Message
}

type model struct {
	ctrl    *wizard.Controller
	fields  []field
	focus   int
	errs    fieldErrors
	outcome *wizard.Outcome
}

func newModel(ctrl *wizard.Controller) model {
	m := model{ctrl: ctrl, errs: fieldErrors{}}
	m.fields = []field{
		newField(validation.FieldContact, "Email or phone", ""),
		newField(validation.FieldAge, "Age", ""),
		newField(validation.FieldDiagnosis, "Primary cancer diagnosis", optionHint(validation.DiagnosisOptions)),
	}
	m.fields[0].input.Focus()
	return m
}

func newField(name validation.Field, label, hint string) field {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 64
	return field{name: name, label: label, hint: hint, input: ti}
}

func optionHint(opts []validation.Option) string {
	values := make([]string, 0, len(opts))
	for _, o := range opts {
		values = append(values, o.Value)
	}
	return strings.Join(values, " | ")
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyTab, tea.KeyDown:
		return m.moveFocus(1), nil
	case tea.KeyShiftTab, tea.KeyUp:
		return m.moveFocus(-1), nil
	case tea.KeyEnter:
		return m.act()
	}

	var cmd tea.Cmd
	f := &m.fields[m.focus]
	f.input, cmd = f.input.Update(msg)
	if f.name == validation.FieldContact || f.name == validation.FieldAge {
		m.ctrl.OnFieldChanged(f.name, f.input.Value(), m.errs)
	}
	return m, cmd
}

func (m model) moveFocus(delta int) model {
	m.fields[m.focus].input.Blur()
	m.focus = (m.focus + delta + len(m.fields)) % len(m.fields)
	m.fields[m.focus].input.Focus()
	return m
}

func (m model) value(name validation.Field) string {
	for _, f := range m.fields {
		if f.name == name {
			return f.input.Value()
		}
	}
	return ""
}

// act fires advance on step 1 and submit on step 2
func (m model) act() (tea.Model, tea.Cmd) {
	var (
		out wizard.Outcome
		err error
	)
	if m.ctrl.State() == wizard.Step1Active {
		out, err = m.ctrl.OnAdvanceRequested(models.Step1Input{
			Contact:   m.value(validation.FieldContact),
			Age:       m.value(validation.FieldAge),
			Diagnosis: m.value(validation.FieldDiagnosis),
		}, m.errs)
	} else {
		out, err = m.ctrl.OnSubmitRequested(models.Step2Input{
			DiagnosisStage: m.value(validation.FieldDiagnosisStage),
			RecentChemo:    m.value(validation.FieldRecentChemo),
			CanTravel:      m.value(validation.FieldCanTravel),
		}, m.errs)
	}
	if err != nil && !errors.Is(err, wizard.ErrInvalidTransition) {
		return m, nil
	}

	switch {
	case out.State.Terminal():
		m.outcome = &out
		return m, tea.Quit
	case out.State == wizard.Step2Active && m.fields[0].name != validation.FieldDiagnosisStage:
		m.fields = []field{
			newField(validation.FieldDiagnosisStage, "Stage of diagnosis", optionHint(validation.StageOptions)),
			newField(validation.FieldRecentChemo, "Chemotherapy in the last 6 months?", optionHint(validation.YesNoOptions)),
			newField(validation.FieldCanTravel, "Able to travel to a study site?", optionHint(validation.YesNoOptions)),
		}
		m.focus = 0
		m.fields[0].input.Focus()
	}
	return m, nil
}

func (m model) View() string {
	if m.outcome != nil {
		if m.outcome.Destination == wizard.Completion {
			return doneStyle.Render("Application received. A member of the study team will contact you soon.") + "\n"
		}
		return errorStyle.Render("Based on your answers you are not eligible for this trial at this time.") + "\n"
	}

	var b strings.Builder
	title := "Step 1 of 2: Screening"
	if m.ctrl.State() == wizard.Step2Active {
		title = "Step 2 of 2: Application"
	}
	b.WriteString(titleStyle.Render(title) + "\n")
	for _, f := range m.fields {
		b.WriteString(labelStyle.Render(f.label) + "\n")
		if f.hint != "" {
			b.WriteString(hintStyle.Render(f.hint) + "\n")
		}
		b.WriteString(f.input.View() + "\n")
		if msg := m.errs[f.name]; msg != "" {
			b.WriteString(errorStyle.Render(msg) + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("tab to move, enter to continue, esc to quit"))
	return b.String()
}
