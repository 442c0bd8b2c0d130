package main

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/Al-Faravi/Stock-Viewer/internal/models"
)

var formLabels = []string{"Date", "Trade Code", "High", "Low", "Open", "Close", "Volume"}

const (
	fieldDate = iota
	fieldTradeCode
	fieldHigh
	fieldLow
	fieldOpen
	fieldClose
	fieldVolume
)

// formState is the add/edit dialog: a transient draft held in text inputs,
// discarded on cancel or successful submit.
type formState struct {
	editing bool
	preKey  models.RecordKey // addressing key for update, fixed at open
	inputs  []textinput.Model
	focus   int
	errMsg  string
}

func blankInputs() []textinput.Model {
	inputs := make([]textinput.Model, len(formLabels))
	for i := range inputs {
		in := textinput.New()
		in.Placeholder = formLabels[i]
		in.CharLimit = 32
		inputs[i] = in
	}
	inputs[0].Focus()
	return inputs
}

func newAddForm() formState {
	return formState{inputs: blankInputs()}
}

func newEditForm(rec models.StockRecord) formState {
	f := formState{editing: true, preKey: rec.Key(), inputs: blankInputs()}
	f.inputs[fieldDate].SetValue(rec.Date)
	f.inputs[fieldTradeCode].SetValue(rec.TradeCode)
	f.inputs[fieldHigh].SetValue(rec.High.String())
	f.inputs[fieldLow].SetValue(rec.Low.String())
	f.inputs[fieldOpen].SetValue(rec.Open.String())
	f.inputs[fieldClose].SetValue(rec.Close.String())
	f.inputs[fieldVolume].SetValue(strconv.FormatInt(rec.Volume, 10))
	return f
}

// draft assembles a record from the inputs. Empty numeric fields parse as
// zero, matching what the backend stores for them.
func (f *formState) draft() (models.StockRecord, error) {
	var rec models.StockRecord
	var err error
	rec.Date = strings.TrimSpace(f.inputs[fieldDate].Value())
	rec.TradeCode = strings.TrimSpace(f.inputs[fieldTradeCode].Value())
	if err = rec.Key().Validate(); err != nil {
		return rec, err
	}
	prices := []struct {
		at  int
		dst *decimal.Decimal
	}{
		{fieldHigh, &rec.High},
		{fieldLow, &rec.Low},
		{fieldOpen, &rec.Open},
		{fieldClose, &rec.Close},
	}
	for _, p := range prices {
		raw := strings.TrimSpace(f.inputs[p.at].Value())
		if raw == "" {
			continue
		}
		if *p.dst, err = decimal.NewFromString(raw); err != nil {
			return rec, err
		}
	}
	if raw := strings.TrimSpace(f.inputs[fieldVolume].Value()); raw != "" {
		if rec.Volume, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return rec, err
		}
	}
	return rec, nil
}

func (m model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.teardown()
		return m, tea.Quit
	case "esc":
		// Cancel discards the draft.
		m.form = formState{}
		m.mode = modeBrowse
		return m, nil
	case "tab", "down":
		m.form.focus = (m.form.focus + 1) % len(m.form.inputs)
		m.focusField()
		return m, nil
	case "shift+tab", "up":
		m.form.focus = (m.form.focus + len(m.form.inputs) - 1) % len(m.form.inputs)
		m.focusField()
		return m, nil
	case "enter":
		return m.submitForm()
	}
	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m *model) focusField() {
	for i := range m.form.inputs {
		if i == m.form.focus {
			m.form.inputs[i].Focus()
		} else {
			m.form.inputs[i].Blur()
		}
	}
}

func (m model) submitForm() (tea.Model, tea.Cmd) {
	// The confirm action is disabled while a submission is in flight.
	if m.submitting {
		return m, nil
	}
	draft, err := m.form.draft()
	if err != nil {
		m.form.errMsg = err.Error()
		return m, nil
	}
	m.form.errMsg = ""
	m.submitting = true

	editing, preKey := m.form.editing, m.form.preKey
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.cfg.HTTPTimeout)
		defer cancel()
		if editing {
			return mutationDoneMsg{form: true, err: m.coord.Update(ctx, preKey, draft)}
		}
		return mutationDoneMsg{form: true, err: m.coord.Create(ctx, draft)}
	}
}
