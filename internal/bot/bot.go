// Package bot implements the messaging front end: chat replies from the
// knowledge base, and a per-user "waiting for URL" flag that turns the next
// message into a PrimeLeads run.
package bot

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/rag"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/workflow"
)

const (
	Greeting   = "Hi! I'm your chatbot. Send me a message."
	InvalidURL = "Please send a valid URL"
	Running    = "⏳ Running PrimeLeads…"
	AskURL     = "🔗 Please send the URL you want PrimeLeads to process."
)

var urlPattern = regexp.MustCompile(`(?i)(?:https?://)?(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\.)+[a-z]{2,}(?::\d+)?(?:/[^\s]*)?`)

// Launcher starts a PrimeLeads run in the background and reports the
// outcome to the user when it finishes.
type Launcher interface {
	Launch(userID int64, websiteURL string)
}

// Bot turns one incoming message into one reply.
type Bot struct {
	chat     rag.Answerer
	state    StateStore
	launcher Launcher
	logger   *slog.Logger
}

func New(chat rag.Answerer, state StateStore, launcher Launcher, logger *slog.Logger) *Bot {
	return &Bot{
		chat:     chat,
		state:    state,
		launcher: launcher,
		logger:   logger.With("system", "bot"),
	}
}

// Handle processes text from userID and returns the immediate reply. A
// user flagged as waiting has their message read as the website URL.
func (b *Bot) Handle(ctx context.Context, userID int64, text string) (string, error) {
	text = strings.TrimSpace(text)

	if text == "/start" {
		return Greeting, nil
	}

	waiting, err := b.state.Waiting(ctx, userID)
	if err != nil {
		return "", err
	}

	if waiting {
		url, ok := ExtractURL(text)
		if !ok {
			return InvalidURL, nil
		}
		if err := b.state.Clear(ctx, userID); err != nil {
			return "", err
		}

		b.logger.InfoContext(ctx, "launching run", "user", userID, "url", url)
		b.launcher.Launch(userID, url)
		return Running, nil
	}

	answer, err := b.chat.Answer(ctx, text)
	if err != nil {
		return "", err
	}
	if !answer.AwaitingURL {
		return answer.Text, nil
	}

	if err := b.state.SetWaiting(ctx, userID); err != nil {
		return "", err
	}
	if answer.Text == "" {
		return AskURL, nil
	}
	return answer.Text, nil
}

// ExtractURL returns the first URL or bare domain in text, with https://
// added when no scheme is present.
func ExtractURL(text string) (string, bool) {
	match := urlPattern.FindString(text)
	if match == "" {
		return "", false
	}
	match = strings.TrimRight(match, ".,;:!?)")
	return workflow.NormalizeURL(match), true
}
