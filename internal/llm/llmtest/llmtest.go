// Package llmtest provides an in-memory llm.Client for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/llm"
)

var (
	_ llm.Client       = (*Scripted)(nil)
	_ llm.VisionClient = (*Scripted)(nil)
)

// Scripted is an in-memory Client that replays canned replies in order and
// records every prompt it receives. The last reply repeats once the script
// is exhausted. Used by tests in packages that depend on a Client.
type Scripted struct {
	mu      sync.Mutex
	replies []Reply
	prompts []string
	images  [][]string
	model   string
}

// Reply is one scripted response: either content or an error.
type Reply struct {
	Content string
	Err     error
}

// NewScripted creates a Scripted client with the given replies.
func NewScripted(replies ...Reply) *Scripted {
	return &Scripted{replies: replies, model: "scripted"}
}

func (s *Scripted) Chat(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.prompts = append(s.prompts, prompt)
	if len(s.replies) == 0 {
		return "", llm.ErrEmptyResponse
	}

	idx := min(len(s.prompts)-1, len(s.replies)-1)
	r := s.replies[idx]
	return r.Content, r.Err
}

// Vision replays the same script as Chat and records the images.
func (s *Scripted) Vision(ctx context.Context, prompt string, images []string) (string, error) {
	s.mu.Lock()
	s.images = append(s.images, images)
	s.mu.Unlock()
	return s.Chat(ctx, prompt)
}

func (s *Scripted) Model() string { return s.model }

// Images returns the image lists passed to Vision, one entry per call.
func (s *Scripted) Images() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]string(nil), s.images...)
}

// Prompts returns a copy of the prompts received so far.
func (s *Scripted) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}
