package main

import (
	"context"
	"fmt"
	"io"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/api"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/bot"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/config"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/infrastructure"
)

// startBot runs the Telegram bot alongside the HTTP server. Workflow runs
// it launches share the server lifecycle, so shutdown waits for them.
func startBot(infra *infrastructure.Infrastructure, cfg *config.BotConfig, domain *api.Domain) error {
	infra = infra.Scoped("bot")
	lc := infra.Lifecycle

	state, err := bot.NewStateStore(lc.Context(), cfg)
	if err != nil {
		return fmt.Errorf("bot state: %w", err)
	}
	if closer, ok := state.(io.Closer); ok {
		lc.OnShutdown(func() {
			<-lc.Context().Done()
			closer.Close()
		})
	}

	tg, err := bot.NewTelegram(cfg, "", infra.Logger)
	if err != nil {
		return err
	}

	launcher := bot.NewLauncher(lc, domain.Workflow, domain.Runs, tg, infra.Logger)
	b := bot.New(domain.Chat, state, launcher, infra.Logger)

	lc.Go(func(ctx context.Context) {
		if err := tg.Run(ctx, b); err != nil {
			infra.Logger.Error("telegram bot stopped", "error", err)
		}
	})

	return nil
}
