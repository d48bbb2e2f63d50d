package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/bot"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/console"
)

func newChatCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with the knowledge base in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := open(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			chat, err := a.chat()
			if err != nil {
				return err
			}

			// Workflow runs started from the console report back into it.
			session := console.NewSession()
			launcher := bot.NewLauncher(a.infra.Lifecycle, a.workflow(a.prompts()), a.history(), session, a.logger)
			b := bot.New(chat, bot.NewMemoryStore(a.cfg.Bot.StateTTLDuration()), launcher, a.logger)

			return session.Run(a.context(), b)
		},
	}
}

func newBotCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := open(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			chat, err := a.chat()
			if err != nil {
				return err
			}

			ctx := a.context()
			state, err := bot.NewStateStore(ctx, &a.cfg.Bot)
			if err != nil {
				return fmt.Errorf("bot state: %w", err)
			}
			if closer, ok := state.(io.Closer); ok {
				defer closer.Close()
			}

			tg, err := bot.NewTelegram(&a.cfg.Bot, "", a.logger)
			if err != nil {
				return err
			}

			launcher := bot.NewLauncher(a.infra.Lifecycle, a.workflow(a.prompts()), a.history(), tg, a.logger)
			fmt.Fprintln(cmd.OutOrStdout(), "PrimeLeads bot running. Press Ctrl+C to stop.")

			return tg.Run(ctx, bot.New(chat, state, launcher, a.logger))
		},
	}
}
