package view

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/osadebe/kobo/internal/account"
	"github.com/osadebe/kobo/internal/categorize"
	"github.com/osadebe/kobo/internal/importer"
	"github.com/osadebe/kobo/internal/transaction"
)

type importState int

const (
	importStatePath importState = iota
	importStateAccount
	importStateRunning
	importStateDone
	importStateConflicts
)

type ImportModel struct {
	CommonModel
	txSvc     *transaction.Service
	accSvc    *account.Service
	importSvc *importer.Service
	catSvc    *categorize.Service
	ownerID   uuid.UUID

	state     importState
	pathInput textinput.Model
	accounts  []*account.Account
	accIndex  int

	result *transaction.ImportResult
	status string
	err    error
}

func NewImportModel(
	txSvc *transaction.Service,
	accSvc *account.Service,
	importSvc *importer.Service,
	catSvc *categorize.Service,
	ownerID uuid.UUID,
) ImportModel {
	ti := textinput.New()
	ti.Placeholder = "/path/to/statement.csv"
	ti.Prompt = "Statement file: "
	ti.Width = 60
	ti.Focus()

	return ImportModel{
		txSvc:     txSvc,
		accSvc:    accSvc,
		importSvc: importSvc,
		catSvc:    catSvc,
		ownerID:   ownerID,
		pathInput: ti,
	}
}

func (m ImportModel) Title() string { return "Import Statement" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStatePath:
		return "Esc: back | Enter: continue"
	case importStateAccount:
		return "Esc: back | Up/Down: choose | Enter: import"
	case importStateConflicts:
		return "Esc: back | y: import new rows only"
	default:
		return "Esc: back"
	}
}

func (m ImportModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadAccountsCmd())
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case importAccountsMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.accounts = msg.accounts

		// Preselect the default account.
		for i, acc := range m.accounts {
			if acc.IsDefault {
				m.accIndex = i
			}
		}

		return m, nil

	case importDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = importStatePath

			return m, nil
		}

		m.result = msg.result

		if len(msg.result.Conflicts) > 0 {
			m.state = importStateConflicts
			return m, nil
		}

		m.state = importStateDone
		m.status = fmt.Sprintf("Imported %d transactions.", len(msg.result.Imported))

		return m, nil

	case confirmDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = importStatePath

			return m, nil
		}

		m.state = importStateDone
		m.status = fmt.Sprintf("Imported %d transactions, skipped %d duplicates.", msg.imported, len(m.result.Conflicts))

		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case importStatePath:
			switch keyMsg.Type {
			case tea.KeyEsc:
				return m, Back
			case tea.KeyEnter:
				if m.pathInput.Value() == "" {
					m.err = fmt.Errorf("enter a file path")
					return m, nil
				}

				if len(m.accounts) == 0 {
					m.err = fmt.Errorf("create an account first")
					return m, nil
				}

				m.err = nil
				m.state = importStateAccount

				return m, nil
			}

		case importStateAccount:
			switch keyMsg.String() {
			case "esc":
				m.state = importStatePath
				return m, nil
			case "up":
				if m.accIndex > 0 {
					m.accIndex--
				}

				return m, nil
			case "down":
				if m.accIndex < len(m.accounts)-1 {
					m.accIndex++
				}

				return m, nil
			case "enter":
				m.state = importStateRunning
				return m, m.runImportCmd()
			}

		case importStateConflicts:
			switch keyMsg.String() {
			case "esc":
				return m, Back
			case "y":
				m.state = importStateRunning
				return m, m.confirmCmd()
			}

		case importStateDone:
			if keyMsg.Type == tea.KeyEsc || keyMsg.Type == tea.KeyEnter {
				return m, Back
			}
		}
	}

	if m.state == importStatePath {
		var cmd tea.Cmd
		m.pathInput, cmd = m.pathInput.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m ImportModel) View() string {
	errStr := ""
	if m.err != nil {
		errStr = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("\nError: %v\n", m.err))
	}

	switch m.state {
	case importStatePath:
		return lipgloss.NewStyle().Padding(1).Render(
			"Import a bank statement (CSV)\n\n" + m.pathInput.View() + "\n" + errStr,
		)

	case importStateAccount:
		s := "Import into which account?\n\n"

		for i, acc := range m.accounts {
			cursor := " "
			if i == m.accIndex {
				cursor = ">"
			}

			s += fmt.Sprintf("%s %s (%s)\n", cursor, acc.Name, acc.Type)
		}

		return lipgloss.NewStyle().Padding(1).Render(s)

	case importStateRunning:
		return lipgloss.NewStyle().Padding(2).Render("Importing...")

	case importStateConflicts:
		s := fmt.Sprintf(
			"%d rows look like duplicates of existing transactions:\n\n",
			len(m.result.Conflicts),
		)

		shown := len(m.result.Conflicts)
		if shown > 10 {
			shown = 10
		}

		for _, c := range m.result.Conflicts[:shown] {
			s += fmt.Sprintf("  %s  %s  %s\n",
				FormatDate(c.Incoming.Date),
				FormatAmount(c.Incoming.Amount),
				c.Incoming.Description,
			)
		}

		if len(m.result.Conflicts) > shown {
			s += fmt.Sprintf("  ... and %d more\n", len(m.result.Conflicts)-shown)
		}

		s += fmt.Sprintf("\nImport the %d new rows and skip duplicates? (y/Esc)", len(m.result.New))

		return lipgloss.NewStyle().Padding(1).Render(s)

	case importStateDone:
		return lipgloss.NewStyle().Padding(1).Render(m.status + "\n\n(Enter or Esc to go back)")
	}

	return ""
}

// Messages

type importAccountsMsg struct {
	accounts []*account.Account
	err      error
}

func (m ImportModel) loadAccountsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		accounts, err := m.accSvc.List(ctx, m.ownerID)

		return importAccountsMsg{accounts: accounts, err: err}
	}
}

type importDoneMsg struct {
	result *transaction.ImportResult
	err    error
}

func (m ImportModel) runImportCmd() tea.Cmd {
	path := m.pathInput.Value()
	accountID := m.accounts[m.accIndex].ID

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importDoneMsg{err: err}
		}
		defer f.Close()

		params, err := m.importSvc.Import(f)
		if err != nil {
			return importDoneMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		for i := range params {
			params[i].AccountID = accountID
			params[i].Category = m.categoryFor(params[i])
		}

		result, err := m.txSvc.ImportBatch(ctx, m.ownerID, params)

		return importDoneMsg{result: result, err: err}
	}
}

// categoryFor asks the learned rules for a category, falling back to
// the catch-all for the transaction type.
func (m ImportModel) categoryFor(p transaction.CreateParams) string {
	ctx, cancel := DbCtx()
	defer cancel()

	suggested, err := m.catSvc.Suggest(ctx, m.ownerID, p.Description)
	if err == nil && suggested != "" {
		return suggested
	}

	if p.Type == transaction.TypeIncome {
		return "other-income"
	}

	return "other-expense"
}

type confirmDoneMsg struct {
	imported int
	err      error
}

func (m ImportModel) confirmCmd() tea.Cmd {
	newParams := m.result.New

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := m.txSvc.CreateBatch(ctx, m.ownerID, newParams)
		if err != nil {
			return confirmDoneMsg{err: err}
		}

		return confirmDoneMsg{imported: len(txs)}
	}
}
