// Package view holds the TUI screens.
package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

// BackMsg tells the root model to return to the menu.
type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}
