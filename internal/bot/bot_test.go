package bot_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/bot"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/rag"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type answerFunc func(ctx context.Context, q string) (rag.Answer, error)

func (f answerFunc) Answer(ctx context.Context, q string) (rag.Answer, error) { return f(ctx, q) }

type launch struct {
	user int64
	url  string
}

type recordingLauncher struct {
	mu       sync.Mutex
	launches []launch
}

func (r *recordingLauncher) Launch(userID int64, url string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.launches = append(r.launches, launch{userID, url})
}

func newBot(t *testing.T, answer answerFunc) (*bot.Bot, *bot.MemoryStore, *recordingLauncher) {
	t.Helper()
	store := bot.NewMemoryStore(0)
	launcher := &recordingLauncher{}
	return bot.New(answer, store, launcher, discard), store, launcher
}

func TestHandle(t *testing.T) {
	ctx := context.Background()

	plain := answerFunc(func(_ context.Context, q string) (rag.Answer, error) {
		return rag.Answer{Text: "echo: " + q}, nil
	})

	t.Run("start", func(t *testing.T) {
		b, _, _ := newBot(t, plain)
		reply, err := b.Handle(ctx, 1, "/start")
		require.NoError(t, err)
		assert.Equal(t, bot.Greeting, reply)
	})

	t.Run("chat reply", func(t *testing.T) {
		b, store, _ := newBot(t, plain)
		reply, err := b.Handle(ctx, 1, "  what is PrimeCRM? ")
		require.NoError(t, err)
		assert.Equal(t, "echo: what is PrimeCRM?", reply)

		waiting, _ := store.Waiting(ctx, 1)
		assert.False(t, waiting)
	})

	t.Run("url request then url", func(t *testing.T) {
		b, store, launcher := newBot(t, answerFunc(func(context.Context, string) (rag.Answer, error) {
			return rag.Answer{Text: "Which website?", AwaitingURL: true}, nil
		}))

		reply, err := b.Handle(ctx, 9, "run prime leads")
		require.NoError(t, err)
		assert.Equal(t, "Which website?", reply)

		waiting, _ := store.Waiting(ctx, 9)
		require.True(t, waiting)

		reply, err = b.Handle(ctx, 9, "sure, it's acme.io.")
		require.NoError(t, err)
		assert.Equal(t, bot.Running, reply)
		assert.Equal(t, []launch{{9, "https://acme.io"}}, launcher.launches)

		waiting, _ = store.Waiting(ctx, 9)
		assert.False(t, waiting)
	})

	t.Run("empty url request gets default prompt", func(t *testing.T) {
		b, _, _ := newBot(t, answerFunc(func(context.Context, string) (rag.Answer, error) {
			return rag.Answer{AwaitingURL: true}, nil
		}))

		reply, err := b.Handle(ctx, 2, "use primeleads")
		require.NoError(t, err)
		assert.Equal(t, bot.AskURL, reply)
	})

	t.Run("invalid url keeps waiting", func(t *testing.T) {
		b, store, launcher := newBot(t, plain)
		require.NoError(t, store.SetWaiting(ctx, 4))

		reply, err := b.Handle(ctx, 4, "I don't have one")
		require.NoError(t, err)
		assert.Equal(t, bot.InvalidURL, reply)
		assert.Empty(t, launcher.launches)

		waiting, _ := store.Waiting(ctx, 4)
		assert.True(t, waiting)
	})

	t.Run("chat error", func(t *testing.T) {
		b, _, _ := newBot(t, answerFunc(func(context.Context, string) (rag.Answer, error) {
			return rag.Answer{}, errors.New("ollama down")
		}))

		_, err := b.Handle(ctx, 1, "hello")
		assert.EqualError(t, err, "ollama down")
	})
}

func TestExtractURL(t *testing.T) {
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"https://fast-automate.com/about", "https://fast-automate.com/about", true},
		{"http://acme.co.uk", "http://acme.co.uk", true},
		{"please run www.acme.io, thanks", "https://www.acme.io", true},
		{"(see acme.com/pricing)", "https://acme.com/pricing", true},
		{"no link here", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := bot.ExtractURL(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
