package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/amezghal/autoecole/internal/cli/formatter"
	"github.com/amezghal/autoecole/internal/contract"
	"github.com/amezghal/autoecole/internal/rules"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// agendaKeyMap defines the day browser bindings.
type agendaKeyMap struct {
	PrevDay key.Binding
	NextDay key.Binding
	Today   key.Binding
	Quit    key.Binding
}

func newAgendaKeyMap() agendaKeyMap {
	return agendaKeyMap{
		PrevDay: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type agendaLoadedMsg struct {
	agenda *contract.DayAgenda
	err    error
}

// agendaModel is the bubbletea model for the interactive day browser.
type agendaModel struct {
	app    *App
	keys   agendaKeyMap
	date   time.Time
	agenda *contract.DayAgenda
	err    error
	width  int
}

func newAgendaModel(app *App, date time.Time) agendaModel {
	return agendaModel{
		app:  app,
		keys: newAgendaKeyMap(),
		date: date,
	}
}

func (m agendaModel) loadDay(date time.Time) tea.Cmd {
	return func() tea.Msg {
		agenda, err := m.app.Schedule.Agenda(context.Background(), date)
		return agendaLoadedMsg{agenda: agenda, err: err}
	}
}

func (m agendaModel) Init() tea.Cmd {
	return m.loadDay(m.date)
}

func (m agendaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case agendaLoadedMsg:
		m.agenda = msg.agenda
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.PrevDay):
			m.date = m.date.AddDate(0, 0, -1)
			return m, m.loadDay(m.date)
		case key.Matches(msg, m.keys.NextDay):
			m.date = m.date.AddDate(0, 0, 1)
			return m, m.loadDay(m.date)
		case key.Matches(msg, m.keys.Today):
			m.date = rules.DateOnly(time.Now())
			return m, m.loadDay(m.date)
		}
	}

	return m, nil
}

func (m agendaModel) View() string {
	title := formatter.StyleHeader.Render(fmt.Sprintf("AGENDA  %s", formatter.HumanDate(m.date)))

	var body string
	switch {
	case m.err != nil:
		body = formatter.StyleRed.Render(fmt.Sprintf("Error: %v", m.err))
	case m.agenda == nil:
		body = formatter.Dim("Loading...")
	default:
		body = renderAgendaTable(m.agenda)
	}

	help := formatter.Dim("←/→ change day · t today · q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		body,
		"",
		help,
	)
}
