package view

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/osadebe/kobo/internal/account"
	"github.com/osadebe/kobo/internal/category"
	"github.com/osadebe/kobo/internal/transaction"
)

type txState int

const (
	txStateTimeframe txState = iota
	txStateList
	txStateCreating
)

var (
	incomeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	expenseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// txItem wraps a transaction to implement list.Item.
type txItem struct {
	tx *transaction.Transaction
}

func (i txItem) Title() string {
	amount := FormatAmount(i.tx.Amount)
	if i.tx.Type == transaction.TypeExpense {
		amount = expenseStyle.Render("-" + amount)
	} else {
		amount = incomeStyle.Render("+" + amount)
	}

	recurring := ""
	if i.tx.IsRecurring {
		recurring = lipgloss.NewStyle().Faint(true).Render(" ↻")
	}

	return fmt.Sprintf("%s  %s%s  %s", FormatDate(i.tx.Date), amount, recurring, i.tx.Description)
}

func (i txItem) Description() string {
	name := i.tx.Category
	if cat, ok := category.ByID(i.tx.Category); ok {
		name = cat.Name
	}

	return name
}

func (i txItem) FilterValue() string { return i.tx.Description }

type TransactionsModel struct {
	CommonModel
	txSvc   *transaction.Service
	accSvc  *account.Service
	ownerID uuid.UUID

	state           txState
	timeframePicker TimeframePicker
	list            list.Model
	form            *huh.Form
	txs             []*transaction.Transaction
	accounts        []*account.Account

	startDate time.Time
	endDate   time.Time
	allTime   bool
	loading   bool
	status    string

	// Form field bindings
	formAccount     string
	formType        string
	formCategory    string
	formAmount      string
	formDescription string
	formDate        string
	formRecurring   bool
	formInterval    string
}

func NewTransactionsModel(txSvc *transaction.Service, accSvc *account.Service, ownerID uuid.UUID) TransactionsModel {
	l := list.New([]list.Item{}, txItemDelegate{}, 0, 0)
	l.Title = "Transactions"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return TransactionsModel{
		txSvc:           txSvc,
		accSvc:          accSvc,
		ownerID:         ownerID,
		timeframePicker: NewTimeframePicker(),
		list:            l,
	}
}

func (m TransactionsModel) Title() string { return "Manage Transactions" }

func (m TransactionsModel) ShortHelp() string {
	switch m.state {
	case txStateTimeframe:
		return "Esc: back | Enter: select"
	case txStateList:
		return "Esc: back | n: new | x: delete | /: filter"
	case txStateCreating:
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return ""
}

func (m TransactionsModel) Init() tea.Cmd {
	return m.loadAccountsCmd()
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.startDate = msg.Start
		m.endDate = msg.End
		m.allTime = msg.All
		m.loading = true
		m.state = txStateList

		return m, m.loadTxsCmd()

	case txAccountsMsg:
		if msg.err == nil {
			m.accounts = msg.accounts
		}

		return m, nil

	case loadTxsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.txs = msg.txs
		m.refreshListItems()

		if len(msg.txs) == 0 {
			m.status = "No transactions found."
		}

		return m, nil

	case txActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			m.state = txStateList

			return m, nil
		}

		m.status = msg.status
		m.state = txStateList

		return m, m.loadTxsCmd()

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	switch m.state {
	case txStateTimeframe:
		return m.updateTimeframe(msg)
	case txStateList:
		return m.updateList(msg)
	case txStateCreating:
		return m.updateCreating(msg)
	}

	return m, nil
}

func (m TransactionsModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m TransactionsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "n":
			return m.startCreating()
		case "x":
			if selected, ok := m.list.SelectedItem().(txItem); ok {
				return m, m.deleteCmd(selected.tx.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func categoryOptions(txType transaction.Type) []huh.Option[string] {
	catType := category.TypeExpense
	if txType == transaction.TypeIncome {
		catType = category.TypeIncome
	}

	cats := category.List(catType)

	opts := make([]huh.Option[string], len(cats))
	for i, c := range cats {
		opts[i] = huh.NewOption(c.Name, c.ID)
	}

	return opts
}

func (m TransactionsModel) startCreating() (tea.Model, tea.Cmd) {
	if len(m.accounts) == 0 {
		m.status = "Create an account first."
		return m, nil
	}

	accountOpts := make([]huh.Option[string], len(m.accounts))

	for i, acc := range m.accounts {
		label := acc.Name
		if acc.IsDefault {
			label += " (default)"
		}

		accountOpts[i] = huh.NewOption(label, acc.ID.String())

		if acc.IsDefault {
			m.formAccount = acc.ID.String()
		}
	}

	m.formType = string(transaction.TypeExpense)
	m.formCategory = ""
	m.formAmount = ""
	m.formDescription = ""
	m.formDate = FormatDate(time.Now().UTC())
	m.formRecurring = false
	m.formInterval = string(transaction.IntervalMonthly)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("account").
				Title("Account").
				Options(accountOpts...).
				Value(&m.formAccount),

			huh.NewSelect[string]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Expense", string(transaction.TypeExpense)),
					huh.NewOption("Income", string(transaction.TypeIncome)),
				).
				Value(&m.formType),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				OptionsFunc(func() []huh.Option[string] {
					return categoryOptions(transaction.Type(m.formType))
				}, &m.formType).
				Value(&m.formCategory),

			huh.NewInput().
				Key("amount").
				Title("Amount (₦)").
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

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDescription).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("description cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.formDate).
				Validate(func(s string) error {
					_, err := time.Parse(time.DateOnly, s)
					return err
				}),

			huh.NewConfirm().
				Key("recurring").
				Title("Recurring?").
				Affirmative("Yes").
				Negative("No").
				Value(&m.formRecurring),

			huh.NewSelect[string]().
				Key("interval").
				Title("Interval").
				Options(
					huh.NewOption("Daily", string(transaction.IntervalDaily)),
					huh.NewOption("Weekly", string(transaction.IntervalWeekly)),
					huh.NewOption("Monthly", string(transaction.IntervalMonthly)),
					huh.NewOption("Yearly", string(transaction.IntervalYearly)),
				).
				Value(&m.formInterval),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = txStateCreating

	return m, m.form.Init()
}

func (m TransactionsModel) updateCreating(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = txStateList
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

func (m TransactionsModel) View() string {
	switch m.state {
	case txStateTimeframe:
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())

	case txStateList:
		if m.loading {
			return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
		}

		statusLine := ""
		if m.status != "" {
			statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
		}

		return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())

	case txStateCreating:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	return ""
}

func (m *TransactionsModel) refreshListItems() {
	items := make([]list.Item, len(m.txs))
	for i, tx := range m.txs {
		items[i] = txItem{tx: tx}
	}

	m.list.SetItems(items)
}

// Messages

type txAccountsMsg struct {
	accounts []*account.Account
	err      error
}

func (m TransactionsModel) loadAccountsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		accounts, err := m.accSvc.List(ctx, m.ownerID)

		return txAccountsMsg{accounts: accounts, err: err}
	}
}

type loadTxsMsg struct {
	txs []*transaction.Transaction
	err error
}

func (m TransactionsModel) loadTxsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		filter := transaction.ListFilter{OwnerID: m.ownerID}

		if !m.allTime {
			start, end := m.startDate, m.endDate
			filter.StartDate = &start
			filter.EndDate = &end
		}

		txs, err := m.txSvc.List(ctx, filter)

		return loadTxsMsg{txs: txs, err: err}
	}
}

type txActionMsg struct {
	status string
	err    error
}

func (m TransactionsModel) createCmd() tea.Cmd {
	accountID, _ := uuid.Parse(m.formAccount)
	amount, _ := ParseAmount(m.formAmount)
	date, _ := time.Parse(time.DateOnly, m.formDate)

	params := transaction.CreateParams{
		OwnerID:     m.ownerID,
		AccountID:   accountID,
		Amount:      amount,
		Type:        transaction.Type(m.formType),
		Category:    m.formCategory,
		Description: m.formDescription,
		Date:        date,
		IsRecurring: m.formRecurring,
	}

	if m.formRecurring {
		params.RecurringInterval = transaction.Interval(m.formInterval)
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.txSvc.Create(ctx, params); err != nil {
			return txActionMsg{err: err}
		}

		return txActionMsg{status: "Transaction created."}
	}
}

func (m TransactionsModel) deleteCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.txSvc.Delete(ctx, m.ownerID, id); err != nil {
			return txActionMsg{err: err}
		}

		return txActionMsg{status: "Transaction deleted."}
	}
}

// txItemDelegate renders items in the list.
type txItemDelegate struct{}

func (d txItemDelegate) Height() int                             { return 2 }
func (d txItemDelegate) Spacing() int                            { return 0 }
func (d txItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d txItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(txItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = lipgloss.NewStyle().Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintf(w, "    %s\n", lipgloss.NewStyle().Faint(true).Render(i.Description()))
}
