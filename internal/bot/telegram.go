package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/config"
)

const failureReply = "⚠️ Sorry, something went wrong. Please try again."

var ErrMissingToken = fmt.Errorf("bot: telegram token required (%s)", config.EnvBotToken)

// Telegram is the long-polling transport for a Bot.
type Telegram struct {
	api         *tgbotapi.BotAPI
	pollTimeout int
	logger      *slog.Logger
}

// NewTelegram authenticates against the Bot API. endpoint overrides
// tgbotapi.APIEndpoint when non-empty.
func NewTelegram(cfg *config.BotConfig, endpoint string, logger *slog.Logger) (*Telegram, error) {
	if cfg.Token == "" {
		return nil, ErrMissingToken
	}
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}

	api, err := tgbotapi.NewBotAPIWithAPIEndpoint(cfg.Token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}

	logger = logger.With("system", "telegram")
	tgbotapi.SetLogger(botLogger{logger})
	logger.Info("telegram authorized", "username", api.Self.UserName)

	return &Telegram{api: api, pollTimeout: cfg.PollTimeout, logger: logger}, nil
}

// Send delivers text to chatID.
func (t *Telegram) Send(_ context.Context, chatID int64, text string) error {
	if _, err := t.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

// Run polls for updates and answers each text message through b until ctx
// is cancelled.
func (t *Telegram) Run(ctx context.Context, b *Bot) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = t.pollTimeout

	updates := t.api.GetUpdatesChan(u)
	defer t.api.StopReceivingUpdates()

	t.logger.Info("polling for updates")
	for {
		select {
		case <-ctx.Done():
			t.logger.Info("polling stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return errors.New("telegram update channel closed")
			}
			t.dispatch(ctx, b, update)
		}
	}
}

func (t *Telegram) dispatch(ctx context.Context, b *Bot, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Text == "" {
		return
	}

	reply, err := b.Handle(ctx, msg.Chat.ID, msg.Text)
	if err != nil {
		t.logger.ErrorContext(ctx, "handle message failed", "chat", msg.Chat.ID, "error", err)
		reply = failureReply
	}

	if err := t.Send(ctx, msg.Chat.ID, reply); err != nil {
		t.logger.ErrorContext(ctx, "reply failed", "chat", msg.Chat.ID, "error", err)
	}
}

// botLogger routes the Bot API package's own log lines into slog.
type botLogger struct {
	logger *slog.Logger
}

func (l botLogger) Println(v ...any) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintln(v...)))
}

func (l botLogger) Printf(format string, v ...any) {
	l.logger.Warn(fmt.Sprintf(format, v...))
}
