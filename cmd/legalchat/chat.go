package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/artem13815/legalassist/internal/tui"
	"github.com/artem13815/legalassist/pkg/chat"
	"github.com/artem13815/legalassist/pkg/client"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the interactive chat",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd)
	},
}

func runChat(cmd *cobra.Command) error {
	m := tui.New(chat.NewSession(), client.New(serverURL, timeout), timeout, logger)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
	return err
}
