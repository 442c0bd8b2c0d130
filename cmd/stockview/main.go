package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Al-Faravi/Stock-Viewer/internal/api"
	"github.com/Al-Faravi/Stock-Viewer/internal/config"
	"github.com/Al-Faravi/Stock-Viewer/internal/coordinator"
	"github.com/Al-Faravi/Stock-Viewer/internal/models"
	"github.com/Al-Faravi/Stock-Viewer/internal/notify"
	"github.com/Al-Faravi/Stock-Viewer/internal/store"
	"github.com/Al-Faravi/Stock-Viewer/internal/view"
)

// Styles.
var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
	selectedStyle  = lipgloss.NewStyle().Background(lipgloss.Color("236"))
	successStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	failureStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	fieldErrStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	confirmStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	formTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
)

type uiMode int

const (
	modeLoading uiMode = iota
	modeError
	modeBrowse
	modeSearch
	modeForm
	modeConfirm
)

// Messages.
type loadedMsg struct{ err error }
type searchMsg struct{ term string }
type mutationDoneMsg struct {
	form bool // mutation came from the add/edit form
	err  error
}
type notifyChangedMsg struct{}

type model struct {
	cfg      config.Viewer
	logger   *zap.Logger
	pipeline *view.Pipeline
	coord    *coordinator.Coordinator
	notifier *notify.Notifier
	deb      *view.Debouncer

	mode       uiMode
	loadErr    error
	query      view.Query
	search     textinput.Model
	cursor     int
	rows       []models.StockRecord
	form       formState
	confirmKey models.RecordKey
	submitting bool
}

func newModel(cfg config.Viewer, logger *zap.Logger, pipeline *view.Pipeline,
	coord *coordinator.Coordinator, notifier *notify.Notifier, deb *view.Debouncer) model {

	search := textinput.New()
	search.Placeholder = "Search by Trade Code"
	search.CharLimit = 64

	return model{
		cfg:      cfg,
		logger:   logger,
		pipeline: pipeline,
		coord:    coord,
		notifier: notifier,
		deb:      deb,
		mode:     modeLoading,
		query:    view.Query{Key: view.SortByDate, Dir: view.Ascending},
		search:   search,
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.cfg.HTTPTimeout)
		defer cancel()
		return loadedMsg{err: m.coord.Load(ctx)}
	}
}

func (m *model) refresh() {
	m.rows = m.pipeline.Rows(m.query)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m model) selected() (models.StockRecord, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return models.StockRecord{}, false
	}
	return m.rows[m.cursor], true
}

func (m model) teardown() {
	m.deb.Stop()
	m.coord.Close()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			m.loadErr = msg.err
			m.mode = modeError
			return m, nil
		}
		m.mode = modeBrowse
		m.refresh()
		return m, nil

	case searchMsg:
		m.query.Search = msg.term
		m.refresh()
		return m, nil

	case notifyChangedMsg:
		return m, nil

	case mutationDoneMsg:
		m.submitting = false
		if msg.form && msg.err == nil {
			// Successful submit: discard the draft, close the dialog.
			m.form = formState{}
			m.mode = modeBrowse
		}
		// A failed form submit keeps the dialog open with the draft intact.
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeBrowse:
			return m.updateBrowse(msg)
		case modeSearch:
			return m.updateSearch(msg)
		case modeForm:
			return m.updateForm(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		case modeError, modeLoading:
			if msg.String() == "q" || msg.String() == "ctrl+c" {
				m.teardown()
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.teardown()
		return m, tea.Quit
	case "/":
		m.mode = modeSearch
		m.search.Focus()
		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "s":
		m.query = m.query.Toggle(view.SortByDate)
		m.refresh()
	case "a":
		m.form = newAddForm()
		m.mode = modeForm
	case "e":
		if rec, ok := m.selected(); ok {
			m.form = newEditForm(rec)
			m.mode = modeForm
		}
	case "d":
		if rec, ok := m.selected(); ok {
			m.confirmKey = rec.Key()
			m.mode = modeConfirm
		}
	case "x":
		m.notifier.Dismiss()
	}
	return m, nil
}

func (m model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.search.Blur()
		m.mode = modeBrowse
		return m, nil
	case "ctrl+c":
		m.teardown()
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	// Keystrokes reach the query only after the quiescence window.
	m.deb.Trigger(m.search.Value())
	return m, cmd
}

func (m model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if m.submitting {
			return m, nil
		}
		m.submitting = true
		m.mode = modeBrowse
		key := m.confirmKey
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), m.cfg.HTTPTimeout)
			defer cancel()
			return mutationDoneMsg{err: m.coord.Delete(ctx, key)}
		}
	case "n", "N", "esc":
		// Declined: nothing is sent, nothing changes, nothing is shown.
		m.mode = modeBrowse
	case "ctrl+c":
		m.teardown()
		return m, tea.Quit
	}
	return m, nil
}

func main() {
	godotenv.Load()

	cfg, err := config.LoadViewer()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	st := store.New()
	pipeline := view.NewPipeline(st)
	client := api.NewClient(cfg.APIBaseURL, nil, logger)

	// The TUI prompts for delete confirmation itself, so the coordinator's
	// gate is satisfied by construction.
	var program *tea.Program
	notifier := notify.New(cfg.NotifyTTL, func(*notify.Notification) {
		if program != nil {
			program.Send(notifyChangedMsg{})
		}
	})
	coord := coordinator.New(st, client, notifier,
		func(models.RecordKey) bool { return true }, logger)
	deb := view.NewDebouncer(cfg.DebounceWindow, func(term string) {
		if program != nil {
			program.Send(searchMsg{term: term})
		}
	})

	m := newModel(cfg, logger, pipeline, coord, notifier, deb)
	program = tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
