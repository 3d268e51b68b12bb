package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/osadebe/kobo/internal/budget"
)

type budgetState int

const (
	budgetStateView budgetState = iota
	budgetStateEditing
)

var (
	normalBarStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warningBarStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	criticalBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type BudgetModel struct {
	CommonModel
	svc     *budget.Service
	ownerID uuid.UUID

	state budgetState
	form  *huh.Form
	eval  budget.Evaluation

	loading bool
	status  string

	formAmount string
}

func NewBudgetModel(svc *budget.Service, ownerID uuid.UUID) BudgetModel {
	return BudgetModel{
		svc:     svc,
		ownerID: ownerID,
		loading: true,
	}
}

func (m BudgetModel) Title() string { return "Monthly Budget" }

func (m BudgetModel) ShortHelp() string {
	switch m.state {
	case budgetStateView:
		return "Esc: back | e: set budget"
	case budgetStateEditing:
		return "Esc: cancel | Enter: save"
	}

	return ""
}

func (m BudgetModel) Init() tea.Cmd {
	return m.loadProgressCmd()
}

func (m BudgetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadProgressMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.eval = msg.eval

		return m, nil

	case budgetSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			m.state = budgetStateView

			return m, nil
		}

		m.status = "Budget saved."
		m.state = budgetStateView
		m.loading = true

		return m, m.loadProgressCmd()
	}

	switch m.state {
	case budgetStateView:
		return m.updateView(msg)
	case budgetStateEditing:
		return m.updateEditing(msg)
	}

	return m, nil
}

func (m BudgetModel) updateView(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "e":
			return m.startEditing()
		}
	}

	return m, nil
}

func (m BudgetModel) startEditing() (tea.Model, tea.Cmd) {
	m.formAmount = ""
	if m.eval.Configured {
		m.formAmount = fmt.Sprintf("%.2f", float64(m.eval.Amount)/100.0)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Monthly Budget (₦)").
				Value(&m.formAmount).
				Validate(func(s string) error {
					kobo, err := ParseAmount(s)
					if err != nil {
						return err
					}
					if kobo <= 0 {
						return fmt.Errorf("amount must be positive")
					}
					return nil
				}),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = budgetStateEditing

	return m, m.form.Init()
}

func (m BudgetModel) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = budgetStateView
			m.form = nil

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m BudgetModel) View() string {
	if m.state == budgetStateEditing {
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading budget...")
	}

	statusLine := ""
	if m.status != "" {
		statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n\n"
	}

	if !m.eval.Configured {
		return lipgloss.NewStyle().Padding(1).Render(
			statusLine + "No budget configured for this month.\n\nPress e to set one.",
		)
	}

	return lipgloss.NewStyle().Padding(1).Render(statusLine + m.progressView())
}

func (m BudgetModel) progressView() string {
	style := normalBarStyle

	switch m.eval.Level {
	case budget.LevelWarning:
		style = warningBarStyle
	case budget.LevelCritical:
		style = criticalBarStyle
	}

	const barWidth = 40

	filled := int(m.eval.PercentUsed / 100 * barWidth)
	if filled > barWidth {
		filled = barWidth
	}

	bar := style.Render(strings.Repeat("█", filled)) + strings.Repeat("░", barWidth-filled)

	return fmt.Sprintf(
		"Budget:  %s\nSpent:   %s (%.1f%%)\n\n%s\n\nStatus: %s",
		FormatAmount(m.eval.Amount),
		FormatAmount(m.eval.MonthExpenses),
		m.eval.PercentUsed,
		bar,
		style.Render(string(m.eval.Level)),
	)
}

// Messages

type loadProgressMsg struct {
	eval budget.Evaluation
	err  error
}

func (m BudgetModel) loadProgressCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		eval, err := m.svc.Progress(ctx, m.ownerID, time.Now().UTC())

		return loadProgressMsg{eval: eval, err: err}
	}
}

type budgetSavedMsg struct {
	err error
}

func (m BudgetModel) saveCmd() tea.Cmd {
	amount, _ := ParseAmount(m.formAmount)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.svc.Upsert(ctx, m.ownerID, amount)

		return budgetSavedMsg{err: err}
	}
}
