// Package llm adapts go-agents chat completion to the narrow interface the
// pipelines depend on, and provides the bounded retry loop every stage uses.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
	"github.com/JaimeStill/go-agents/pkg/response"
)

var (
	ErrEmptyResponse = errors.New("empty model response")
	ErrChatFailed    = errors.New("chat completion failed")
)

// Client sends a single prompt and returns the raw text of the reply.
type Client interface {
	Chat(ctx context.Context, prompt string) (string, error)
	Model() string
}

// VisionClient answers a prompt about images passed as data URIs.
type VisionClient interface {
	Vision(ctx context.Context, prompt string, images []string) (string, error)
}

var _ VisionClient = (*agentClient)(nil)

type agentClient struct {
	cfg gaconfig.AgentConfig
}

// NewAgent returns a Client backed by go-agents. A fresh agent is created for
// every call so the client is safe to share between goroutines.
func NewAgent(cfg gaconfig.AgentConfig) Client {
	return &agentClient{cfg: cfg}
}

func (c *agentClient) Chat(ctx context.Context, prompt string) (string, error) {
	return c.complete(func(a agent.Agent) (*response.ChatResponse, error) {
		return a.Chat(ctx, prompt)
	})
}

// Vision needs a model configured with vision capability.
func (c *agentClient) Vision(ctx context.Context, prompt string, images []string) (string, error) {
	return c.complete(func(a agent.Agent) (*response.ChatResponse, error) {
		return a.Vision(ctx, prompt, images)
	})
}

func (c *agentClient) complete(call func(agent.Agent) (*response.ChatResponse, error)) (string, error) {
	a, err := agent.New(&c.cfg)
	if err != nil {
		return "", fmt.Errorf("%w: create agent: %w", ErrChatFailed, err)
	}

	resp, err := call(a)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrChatFailed, err)
	}

	content := resp.Content()
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyResponse
	}
	return content, nil
}

func (c *agentClient) Model() string {
	if c.cfg.Model == nil {
		return ""
	}
	return c.cfg.Model.Name
}

// Attempt runs fn until it succeeds, at most retries+1 times. It returns the
// number of attempts made and the last error. Cancellation of ctx stops the
// loop before the next attempt.
func Attempt(ctx context.Context, retries int, fn func(ctx context.Context) error) (int, error) {
	var err error
	attempts := 0

	for range max(retries, 0) + 1 {
		if ctxErr := ctx.Err(); ctxErr != nil {
			if err == nil {
				err = ctxErr
			}
			return attempts, err
		}

		attempts++
		if err = fn(ctx); err == nil {
			return attempts, nil
		}
	}

	return attempts, err
}
