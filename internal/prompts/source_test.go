package prompts_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/prompts"
)

type staticSource struct {
	instructions string
	spec         string
	err          error
}

func (s staticSource) Instructions(context.Context, prompts.Stage) (string, error) {
	return s.instructions, s.err
}

func (s staticSource) Spec(context.Context, prompts.Stage) (string, error) {
	return s.spec, nil
}

func TestDefaults(t *testing.T) {
	src := prompts.Defaults()
	ctx := context.Background()

	for _, stage := range prompts.Stages() {
		t.Run(string(stage), func(t *testing.T) {
			got, err := src.Instructions(ctx, stage)
			require.NoError(t, err)

			want, _ := prompts.Instructions(stage)
			assert.Equal(t, want, got)

			spec, err := src.Spec(ctx, stage)
			require.NoError(t, err)
			assert.NotEmpty(t, spec)
		})
	}

	_, err := src.Instructions(ctx, "banana")
	assert.ErrorIs(t, err, prompts.ErrInvalidStage)
}

func TestCompose(t *testing.T) {
	ctx := context.Background()

	t.Run("fills placeholders", func(t *testing.T) {
		text, err := prompts.Compose(ctx, prompts.Defaults(), prompts.StageGrowth, map[string]string{
			"website_url": "https://acme.io",
		})
		require.NoError(t, err)

		assert.Contains(t, text, "https://acme.io")
		assert.NotContains(t, text, "{website_url}")
		assert.Contains(t, text, "Competitive Review and Comparison")
	})

	t.Run("legacy url token", func(t *testing.T) {
		src := staticSource{instructions: "Study WEBSITE_URL_PLACEHOLDER now.", spec: "JSON only."}

		text, err := prompts.Compose(ctx, src, prompts.StageGrowth, map[string]string{
			"website_url": "https://acme.io",
		})
		require.NoError(t, err)
		assert.Equal(t, "Study https://acme.io now.\n\nJSON only.", text)
	})

	t.Run("appends variables without placeholders", func(t *testing.T) {
		src := staticSource{instructions: "Build personas.", spec: "JSON only."}

		text, err := prompts.Compose(ctx, src, prompts.StageICP, map[string]string{
			"growth_report": `{"Introduction":"x"}`,
		})
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(text, "\n\nGrowth report:\n{\"Introduction\":\"x\"}"), text)
	})

	t.Run("values are not rescanned", func(t *testing.T) {
		src := staticSource{instructions: "A={a} B={b}", spec: "."}

		text, err := prompts.Compose(ctx, src, prompts.StageICP, map[string]string{
			"a": "{b}",
			"b": "two",
		})
		require.NoError(t, err)
		assert.Equal(t, "A={b} B=two\n\n.", text)
	})

	t.Run("source error", func(t *testing.T) {
		boom := errors.New("db down")
		_, err := prompts.Compose(ctx, staticSource{err: boom}, prompts.StageChat, nil)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("invalid stage", func(t *testing.T) {
		_, err := prompts.Compose(ctx, prompts.Defaults(), "banana", nil)
		assert.ErrorIs(t, err, prompts.ErrInvalidStage)
	})
}
