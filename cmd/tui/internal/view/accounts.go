package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/osadebe/kobo/internal/account"
)

type accountsState int

const (
	accountsStateList accountsState = iota
	accountsStateCreating
)

// accountItem wraps an account to implement list.Item.
type accountItem struct {
	acc *account.Account
}

func (i accountItem) Title() string {
	marker := ""
	if i.acc.IsDefault {
		marker = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(" ★")
	}

	return fmt.Sprintf("%s (%s)%s  %s", i.acc.Name, i.acc.Type, marker, FormatAmount(i.acc.Balance))
}

func (i accountItem) Description() string {
	return fmt.Sprintf("%d transactions", i.acc.TransactionCount)
}

func (i accountItem) FilterValue() string { return i.acc.Name }

type AccountsModel struct {
	CommonModel
	svc     *account.Service
	ownerID uuid.UUID

	state    accountsState
	list     list.Model
	form     *huh.Form
	accounts []*account.Account

	loading bool
	status  string

	// Form field bindings
	formName    string
	formType    string
	formBalance string
}

func NewAccountsModel(svc *account.Service, ownerID uuid.UUID) AccountsModel {
	l := list.New([]list.Item{}, accountItemDelegate{}, 0, 0)
	l.Title = "Accounts"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(true)

	return AccountsModel{
		svc:     svc,
		ownerID: ownerID,
		list:    l,
		loading: true,
	}
}

func (m AccountsModel) Title() string { return "Manage Accounts" }

func (m AccountsModel) ShortHelp() string {
	switch m.state {
	case accountsStateList:
		return "Esc: back | n: new | d: make default | x: delete"
	case accountsStateCreating:
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return ""
}

func (m AccountsModel) Init() tea.Cmd {
	return m.loadAccountsCmd()
}

func (m AccountsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadAccountsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.accounts = msg.accounts
		m.refreshListItems()

		if len(msg.accounts) == 0 {
			m.status = "No accounts yet. Press n to create one."
		}

		return m, nil

	case accountActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			m.state = accountsStateList

			return m, nil
		}

		m.status = msg.status
		m.state = accountsStateList

		return m, m.loadAccountsCmd()

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	switch m.state {
	case accountsStateList:
		return m.updateList(msg)
	case accountsStateCreating:
		return m.updateCreating(msg)
	}

	return m, nil
}

func (m AccountsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "n":
			return m.startCreating()
		case "d":
			if selected, ok := m.list.SelectedItem().(accountItem); ok {
				return m, m.setDefaultCmd(selected.acc.ID)
			}
		case "x":
			if selected, ok := m.list.SelectedItem().(accountItem); ok {
				return m, m.deleteCmd(selected.acc.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m AccountsModel) startCreating() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.formType = string(account.TypeCurrent)
	m.formBalance = "0"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Account Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("type").
				Title("Account Type").
				Options(
					huh.NewOption("Current", string(account.TypeCurrent)),
					huh.NewOption("Savings", string(account.TypeSavings)),
				).
				Value(&m.formType),

			huh.NewInput().
				Key("balance").
				Title("Opening Balance (₦)").
				Value(&m.formBalance).
				Validate(func(s string) error {
					_, err := ParseAmount(s)
					return err
				}),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = accountsStateCreating

	return m, m.form.Init()
}

func (m AccountsModel) updateCreating(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = accountsStateList
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

	return m, m.createCmd()
}

func (m AccountsModel) View() string {
	switch m.state {
	case accountsStateList:
		if m.loading {
			return lipgloss.NewStyle().Padding(2).Render("Loading accounts...")
		}

		statusLine := ""
		if m.status != "" {
			statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
		}

		return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())

	case accountsStateCreating:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	return ""
}

func (m *AccountsModel) refreshListItems() {
	items := make([]list.Item, len(m.accounts))
	for i, acc := range m.accounts {
		items[i] = accountItem{acc: acc}
	}

	m.list.SetItems(items)
}

// Messages

type loadAccountsMsg struct {
	accounts []*account.Account
	err      error
}

func (m AccountsModel) loadAccountsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		accounts, err := m.svc.List(ctx, m.ownerID)

		return loadAccountsMsg{accounts: accounts, err: err}
	}
}

type accountActionMsg struct {
	status string
	err    error
}

func (m AccountsModel) createCmd() tea.Cmd {
	name := m.formName
	accType := account.Type(m.formType)
	balance, _ := ParseAmount(m.formBalance)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.svc.Create(ctx, account.CreateParams{
			OwnerID:        m.ownerID,
			Name:           name,
			Type:           accType,
			OpeningBalance: balance,
		})
		if err != nil {
			return accountActionMsg{err: err}
		}

		return accountActionMsg{status: "Account created."}
	}
}

func (m AccountsModel) setDefaultCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.svc.SetDefault(ctx, m.ownerID, id); err != nil {
			return accountActionMsg{err: err}
		}

		return accountActionMsg{status: "Default account updated."}
	}
}

func (m AccountsModel) deleteCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.svc.Delete(ctx, m.ownerID, id); err != nil {
			return accountActionMsg{err: err}
		}

		return accountActionMsg{status: "Account deleted."}
	}
}

// accountItemDelegate renders items in the list.
type accountItemDelegate struct{}

func (d accountItemDelegate) Height() int                             { return 2 }
func (d accountItemDelegate) Spacing() int                            { return 0 }
func (d accountItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d accountItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(accountItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintf(w, "    %s\n", lipgloss.NewStyle().Faint(true).Render(i.Description()))
}
