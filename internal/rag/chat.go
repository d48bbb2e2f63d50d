package rag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/llm"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/metrics"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/prompts"
)

const (
	// URLRequestToken marks a model reply that asks the user for a
	// website URL to run PrimeLeads on.
	URLRequestToken = "[[ASK:PRIMELEADS_URL]]"

	// URLRequestReply is the fixed reply to questions naming PrimeLeads.
	URLRequestReply = "🔗 Please provide the URL you want PrimeLeads to process."

	primeLeadsMention = "prime leads"
	contextSeparator  = "\n\n---\n\n"
)

// Answer is a chat reply. AwaitingURL tells the caller the next message
// should be a website URL.
type Answer struct {
	Text        string   `json:"answer"`
	AwaitingURL bool     `json:"awaiting_url"`
	Sources     []string `json:"sources,omitempty"`
}

// Chat answers questions from the nearest knowledge-base chunks.
type Chat struct {
	llm      llm.Client
	prompts  prompts.Source
	store    Store
	embedder Embedder
	topK     int
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewChat(
	client llm.Client,
	src prompts.Source,
	store Store,
	embedder Embedder,
	topK int,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Chat {
	return &Chat{
		llm:      client,
		prompts:  src,
		store:    store,
		embedder: embedder,
		topK:     max(topK, 1),
		metrics:  m,
		logger:   logger.With("system", "rag-chat"),
	}
}

// Answer replies to question. Questions mentioning PrimeLeads get the URL
// request without a model call.
func (c *Chat) Answer(ctx context.Context, question string) (Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Answer{}, ErrEmptyQuestion
	}

	if strings.Contains(strings.ToLower(question), primeLeadsMention) {
		c.metrics.ChatRequest("awaiting_url")
		return Answer{Text: URLRequestReply, AwaitingURL: true}, nil
	}

	answer, err := c.answer(ctx, question)
	if err != nil {
		c.metrics.ChatRequest("failed")
		return Answer{}, err
	}

	if answer.AwaitingURL {
		c.metrics.ChatRequest("awaiting_url")
	} else {
		c.metrics.ChatRequest("answered")
	}
	return answer, nil
}

func (c *Chat) answer(ctx context.Context, question string) (Answer, error) {
	vectors, err := c.embedder.Embed(ctx, []string{question})
	if err != nil {
		return Answer{}, err
	}
	if len(vectors) != 1 {
		return Answer{}, fmt.Errorf("%w: got %d vectors for 1 text", ErrEmbedFailed, len(vectors))
	}

	matches, err := c.store.Search(ctx, vectors[0], c.topK)
	if err != nil {
		return Answer{}, err
	}

	texts := make([]string, len(matches))
	sources := make([]string, len(matches))
	for i, m := range matches {
		texts[i] = m.Content
		sources[i] = m.ID
	}

	prompt, err := prompts.Compose(ctx, c.prompts, prompts.StageChat, map[string]string{
		"context":  strings.Join(texts, contextSeparator),
		"question": question,
	})
	if err != nil {
		return Answer{}, err
	}

	reply, err := c.llm.Chat(ctx, prompt)
	if err != nil {
		return Answer{}, err
	}

	text, asked := StripURLRequest(reply)
	c.logger.DebugContext(ctx, "question answered", "matches", len(matches), "awaiting_url", asked)

	return Answer{Text: text, AwaitingURL: asked, Sources: sources}, nil
}

// StripURLRequest removes the URL request token from reply and reports
// whether it was present.
func StripURLRequest(reply string) (string, bool) {
	if !strings.Contains(reply, URLRequestToken) {
		return strings.TrimSpace(reply), false
	}
	return strings.TrimSpace(strings.ReplaceAll(reply, URLRequestToken, "")), true
}
