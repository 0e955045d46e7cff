package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/fundalloc/internal/allocator"
	"github.com/alexanderramin/fundalloc/internal/cli/formatter"
	"github.com/alexanderramin/fundalloc/internal/domain"
	"github.com/alexanderramin/fundalloc/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type gridMode int

const (
	gridBrowse gridMode = iota
	gridEditAmount
	gridEditDate
)

// gridOutcomeMsg carries the batch after a load or an edit.
type gridOutcomeMsg struct {
	outcome *service.AllocationOutcome
	status  string
	err     error
}

type gridKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Edit   key.Binding
	Date   key.Binding
	Reset  key.Binding
	Quit   key.Binding
	Submit key.Binding
	Cancel key.Binding
}

func newGridKeyMap() gridKeyMap {
	return gridKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Edit:   key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "allocate")),
		Date:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "payment date")),
		Reset:  key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "clear all")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// allocGridModel is the interactive allocation grid for one payor.
type allocGridModel struct {
	svc   service.AllocationService
	key   domain.BatchKey
	keys  gridKeyMap
	help  help.Model
	input textinput.Model

	outcome *service.AllocationOutcome
	cursor  int
	mode    gridMode
	loading bool
	status  string
	err     error
}

func newAllocGridModel(svc service.AllocationService, key domain.BatchKey) *allocGridModel {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 20
	in.Width = 12
	return &allocGridModel{
		svc:     svc,
		key:     key,
		keys:    newGridKeyMap(),
		help:    help.New(),
		input:   in,
		loading: true,
	}
}

func (m *allocGridModel) ShortHelp() []key.Binding {
	if m.mode != gridBrowse {
		return []key.Binding{m.keys.Submit, m.keys.Cancel}
	}
	return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Edit, m.keys.Date, m.keys.Reset, m.keys.Quit}
}

func (m *allocGridModel) FullHelp() [][]key.Binding {
	return [][]key.Binding{m.ShortHelp()}
}

func (m *allocGridModel) Init() tea.Cmd {
	svc, k := m.svc, m.key
	return func() tea.Msg {
		outcome, err := svc.Load(context.Background(), k)
		return gridOutcomeMsg{outcome: outcome, err: err}
	}
}

func (m *allocGridModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case gridOutcomeMsg:
		m.loading = false
		if msg.err != nil {
			if m.outcome == nil {
				m.err = msg.err
			}
			m.status = formatter.StyleRed.Render("Error: " + msg.err.Error())
			return m, nil
		}
		m.outcome = msg.outcome
		m.status = msg.status
		if n := m.rowCount(); m.cursor >= n {
			m.cursor = max(n-1, 0)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.mode != gridBrowse {
			return m.updateEditing(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m *allocGridModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case m.outcome == nil:
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.rowCount()-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Edit):
		if row := m.currentRow(); row != nil {
			m.mode = gridEditAmount
			m.input.SetValue("")
			m.input.Placeholder = row.Allocate.StringFixed(domain.CentPlaces)
			return m, m.input.Focus()
		}
	case key.Matches(msg, m.keys.Date):
		if row := m.currentRow(); row != nil {
			m.mode = gridEditDate
			m.input.SetValue("")
			m.input.Placeholder = "YYYY-MM-DD"
			if row.PaymentDate != nil {
				m.input.SetValue(row.PaymentDate.Format(dateLayout))
			}
			return m, m.input.Focus()
		}
	case key.Matches(msg, m.keys.Reset):
		return m, m.resetCmd()
	}
	return m, nil
}

func (m *allocGridModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = gridBrowse
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		row := m.currentRow()
		mode := m.mode
		value := m.input.Value()
		m.mode = gridBrowse
		m.input.Blur()
		if row == nil {
			return m, nil
		}
		if mode == gridEditDate {
			return m, m.dateCmd(row.ID, value)
		}
		if strings.TrimSpace(value) == "" {
			return m, nil
		}
		return m, m.allocateCmd(row.ID, value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *allocGridModel) allocateCmd(rowID int64, raw string) tea.Cmd {
	svc, k := m.svc, m.key
	return func() tea.Msg {
		outcome, err := svc.Allocate(context.Background(), k, rowID, raw)
		if err != nil {
			return gridOutcomeMsg{err: err}
		}
		status := ""
		if res, ok := outcome.Result(); ok {
			status = strings.TrimRight(formatter.FormatResult(res), "\n")
		}
		return gridOutcomeMsg{outcome: outcome, status: status}
	}
}

func (m *allocGridModel) dateCmd(rowID int64, raw string) tea.Cmd {
	svc, k := m.svc, m.key
	return func() tea.Msg {
		date, err := parseOptionalDate(raw)
		if err != nil {
			return gridOutcomeMsg{err: err}
		}
		outcome, err := svc.SetPaymentDate(context.Background(), k, rowID, date)
		if err != nil {
			return gridOutcomeMsg{err: err}
		}
		return gridOutcomeMsg{outcome: outcome, status: fmt.Sprintf("Row %d payment date: %s", rowID, formatter.Date(date))}
	}
}

func (m *allocGridModel) resetCmd() tea.Cmd {
	svc, k := m.svc, m.key
	return func() tea.Msg {
		outcome, err := svc.Reset(context.Background(), k)
		if err != nil {
			return gridOutcomeMsg{err: err}
		}
		return gridOutcomeMsg{outcome: outcome, status: fmt.Sprintf("Cleared %d allocations", len(outcome.Results))}
	}
}

func (m *allocGridModel) rowCount() int {
	if m.outcome == nil {
		return 0
	}
	return m.outcome.Batch.Len()
}

func (m *allocGridModel) currentRow() *domain.AssessmentRow {
	if m.outcome == nil || m.cursor >= m.rowCount() {
		return nil
	}
	return m.outcome.Batch.Rows()[m.cursor]
}

func (m *allocGridModel) View() string {
	if m.loading {
		return "\n  " + formatter.Dim("Loading allocations...")
	}
	if m.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n"
	}

	b := m.outcome.Batch
	var out strings.Builder
	out.WriteString("\n" + formatter.Bold(b.PayorName) + "  " + formatter.Dim(b.Key.String()) + "\n\n")

	if b.Len() == 0 {
		out.WriteString(formatter.Dim("No unpaid assessments.") + "\n")
	} else {
		rows := formatter.BatchRows(b)
		for i := range rows {
			marker := "  "
			if i == m.cursor {
				marker = formatter.StyleGreen.Render("▸ ")
				switch m.mode {
				case gridEditAmount:
					rows[i][6] = m.input.View()
				case gridEditDate:
					rows[i][7] = m.input.View()
				}
			}
			rows[i] = append([]string{marker}, rows[i]...)
		}
		headers := append([]string{""}, formatter.BatchHeaders...)
		footer := append([]string{""}, formatter.TotalsRow(allocator.ComputeTotals(b))...)
		out.WriteString(formatter.RenderTable(headers, rows,
			formatter.AlignRight(4, 5, 6, 7),
			formatter.WithFooter(footer),
		))
	}

	out.WriteString("\n" + formatter.FundSummary(b.TotalFund, m.outcome.Unallocated))
	for _, v := range m.outcome.Violations {
		out.WriteString(formatter.StyleRed.Render("! "+v.Message) + "\n")
	}
	if m.status != "" {
		out.WriteString("\n" + m.status + "\n")
	}
	out.WriteString("\n" + m.help.View(m) + "\n")
	return out.String()
}
