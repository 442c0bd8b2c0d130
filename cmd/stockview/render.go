package main

import (
	"fmt"
	"strings"

	"github.com/Al-Faravi/Stock-Viewer/internal/notify"
	"github.com/Al-Faravi/Stock-Viewer/internal/view"
)

const rowFormat = "%-12s %-14s %10s %10s %10s %10s %12s"

func (m model) View() string {
	switch m.mode {
	case modeLoading:
		return "\n  Loading stock data...\n"
	case modeError:
		return fmt.Sprintf("\n  %s\n\n  %s\n",
			failureStyle.Render("Error fetching stock data"),
			dimStyle.Render("q to quit"))
	case modeForm:
		return m.viewForm()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Stock Data"))
	b.WriteString("\n\n")

	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render(fmt.Sprintf(rowFormat,
		"Date"+sortMarker(m.query), "Trade Code", "High", "Low", "Open", "Close", "Volume")))
	b.WriteString("\n")

	for i, rec := range m.rows {
		line := fmt.Sprintf(rowFormat,
			rec.Date, rec.TradeCode,
			rec.High.String(), rec.Low.String(),
			rec.Open.String(), rec.Close.String(),
			fmt.Sprintf("%d", rec.Volume))
		if i == m.cursor && m.mode != modeSearch {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(m.rows) == 0 {
		b.WriteString(dimStyle.Render("  no matching records"))
		b.WriteString("\n")
	}

	if m.mode == modeConfirm {
		b.WriteString("\n")
		b.WriteString(confirmStyle.Render(fmt.Sprintf(
			"Delete %s on %s? This cannot be undone. (y/n)",
			m.confirmKey.TradeCode, m.confirmKey.Date)))
		b.WriteString("\n")
	}

	if note, ok := m.notifier.Current(); ok {
		b.WriteString("\n")
		b.WriteString(notificationLine(note))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.mode == modeSearch {
		b.WriteString(dimStyle.Render("enter/esc done searching"))
	} else {
		b.WriteString(dimStyle.Render("/ search · s sort by date · a add · e edit · d delete · x dismiss · q quit"))
	}
	if m.submitting {
		b.WriteString(dimStyle.Render("  · submitting..."))
	}
	b.WriteString("\n")
	return b.String()
}

func (m model) viewForm() string {
	var b strings.Builder
	if m.form.editing {
		b.WriteString(formTitleStyle.Render("Edit Stock"))
	} else {
		b.WriteString(formTitleStyle.Render("Add New Stock"))
	}
	b.WriteString("\n\n")
	for i, in := range m.form.inputs {
		b.WriteString(fmt.Sprintf("%-12s %s\n", formLabels[i], in.View()))
	}
	if m.form.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(fieldErrStyle.Render(m.form.errMsg))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.submitting {
		b.WriteString(dimStyle.Render("submitting..."))
	} else if m.form.editing {
		b.WriteString(dimStyle.Render("enter update · esc cancel · tab next field"))
	} else {
		b.WriteString(dimStyle.Render("enter add · esc cancel · tab next field"))
	}
	b.WriteString("\n")
	return b.String()
}

func sortMarker(q view.Query) string {
	if q.Key != view.SortByDate {
		return ""
	}
	if q.Dir == view.Ascending {
		return " ↑"
	}
	return " ↓"
}

func notificationLine(note notify.Notification) string {
	if note.Level == notify.Success {
		return successStyle.Render(note.Message)
	}
	return failureStyle.Render(note.Message)
}
