package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/osadebe/kobo/cmd/tui/internal/view"
	"github.com/osadebe/kobo/internal/account"
	accountStore "github.com/osadebe/kobo/internal/account/store"
	"github.com/osadebe/kobo/internal/budget"
	budgetStore "github.com/osadebe/kobo/internal/budget/store"
	"github.com/osadebe/kobo/internal/categorize"
	categorizeStore "github.com/osadebe/kobo/internal/categorize/store"
	"github.com/osadebe/kobo/internal/config"
	"github.com/osadebe/kobo/internal/database"
	"github.com/osadebe/kobo/internal/importer"
	"github.com/osadebe/kobo/internal/transaction"
	txStore "github.com/osadebe/kobo/internal/transaction/store"
)

type model struct {
	accService *account.Service
	txService  *transaction.Service

	ownerID uuid.UUID

	currentView View

	accountsView     view.AccountsModel
	transactionsView view.TransactionsModel
	budgetView       view.BudgetModel
	importView       view.ImportModel

	budgetService     *budget.Service
	importService     *importer.Service
	categorizeService *categorize.Service
}

type View int

const (
	ViewMenu         View = 0
	ViewAccounts     View = 1
	ViewTransactions View = 2
	ViewBudget       View = 3
	ViewImport       View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ownerID, err := uuid.Parse(cfg.TUI.OwnerID)
	if err != nil {
		slog.Error("OWNER_ID must be set to a valid uuid")
		os.Exit(1)
	}

	db, err := database.New(context.Background(), cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	accSvc := account.NewService(accountStore.New(db))
	txSvc := transaction.NewService(txStore.New(db))
	budgetSvc := budget.NewService(budgetStore.New(db), txSvc)
	catSvc := categorize.NewService(categorizeStore.New(db))
	impSvc := importer.NewService()

	return model{
		accService:        accSvc,
		txService:         txSvc,
		budgetService:     budgetSvc,
		importService:     impSvc,
		categorizeService: catSvc,
		ownerID:           ownerID,
		currentView:       ViewMenu,
		accountsView:      view.NewAccountsModel(accSvc, ownerID),
		transactionsView:  view.NewTransactionsModel(txSvc, accSvc, ownerID),
		budgetView:        view.NewBudgetModel(budgetSvc, ownerID),
		importView:        view.NewImportModel(txSvc, accSvc, impSvc, catSvc, ownerID),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewAccounts
				m.accountsView = view.NewAccountsModel(m.accService, m.ownerID)

				return m, m.accountsView.Init()
			case "2":
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(m.txService, m.accService, m.ownerID)

				return m, m.transactionsView.Init()
			case "3":
				m.currentView = ViewBudget
				m.budgetView = view.NewBudgetModel(m.budgetService, m.ownerID)

				return m, m.budgetView.Init()
			case "4":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.txService, m.accService, m.importService, m.categorizeService, m.ownerID)

				return m, m.importView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewAccounts:
		var newModel tea.Model
		newModel, cmd = m.accountsView.Update(msg)
		m.accountsView = newModel.(view.AccountsModel)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewBudget:
		var newModel tea.Model
		newModel, cmd = m.budgetView.Update(msg)
		m.budgetView = newModel.(view.BudgetModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Kobo TUI\n\n" +
				"1. Manage Accounts\n" +
				"2. Manage Transactions\n" +
				"3. Monthly Budget\n" +
				"4. Import Statement\n\n" +
				"q. Quit",
		)
	case ViewAccounts:
		return m.accountsView.View()
	case ViewTransactions:
		return m.transactionsView.View()
	case ViewBudget:
		return m.budgetView.View()
	case ViewImport:
		return m.importView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
