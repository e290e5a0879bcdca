package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/artem13815/legalassist/internal/tui"
	"github.com/artem13815/legalassist/pkg/answer"
	"github.com/artem13815/legalassist/pkg/chat"
	"github.com/artem13815/legalassist/pkg/client"
)

var askRaw bool

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single question and print the formatted answer",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.Join(args, " ")
		if strings.TrimSpace(question) == "" {
			return errors.New("question is required")
		}
		c := client.New(serverURL, timeout)
		text := chat.Reply(cmd.Context(), c, question, logger)
		if askRaw {
			fmt.Fprintln(cmd.OutOrStdout(), answer.Format(text))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderAnswer(text, 0))
		return nil
	},
}

func init() {
	askCmd.Flags().BoolVar(&askRaw, "raw", false, "print without terminal styling")
}
