package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/llm"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/prompts"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/formatting"
)

// generate composes the stage prompt and calls the model until a reply
// decodes as T and passes check, at most retries+1 times.
func generate[T any](
	ctx context.Context,
	rt *Runtime,
	stage prompts.Stage,
	retries int,
	vars map[string]string,
	check func(T) error,
) (T, int, error) {
	var result T

	prompt, err := prompts.Compose(ctx, rt.Prompts, stage, vars)
	if err != nil {
		return result, 0, err
	}

	attempts, err := llm.Attempt(ctx, retries, func(ctx context.Context) error {
		if timeout := rt.Pipeline.StageTimeoutDuration(); timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		content, err := rt.LLM.Chat(ctx, prompt)
		if err != nil {
			rt.Logger.WarnContext(ctx, "model call failed", "stage", stage, "error", err)
			return err
		}

		v, err := formatting.RecoverAs[T](content)
		if err != nil {
			rt.Logger.WarnContext(ctx, "response not recoverable", "stage", stage, "error", err)
			return fmt.Errorf("%w: %w", ErrNoResponse, err)
		}

		if check != nil {
			if err := check(v); err != nil {
				return fmt.Errorf("%w: %w", ErrShape, err)
			}
		}

		result = v
		return nil
	})

	return result, attempts, err
}

// guard runs a stage body and converts a panic into a failed result
// carrying the fallback payload. The outcome is logged and counted.
func guard[T any](
	ctx context.Context,
	rt *Runtime,
	stage prompts.Stage,
	fallback func() T,
	run func() StageResult[T],
) (res StageResult[T]) {
	defer func() {
		if p := recover(); p != nil {
			res = StageResult[T]{
				Status:      StatusFailed,
				Data:        fallback(),
				Error:       fmt.Sprintf("%v: %v", ErrStagePanic, p),
				GeneratedAt: rt.now(),
			}
		}
		record(ctx, rt, stage, res.Status, res.Attempts, res.Error)
	}()

	return run()
}

func record(ctx context.Context, rt *Runtime, stage prompts.Stage, status Status, attempts int, errText string) {
	rt.Metrics.StageOutcome(string(stage), string(status))

	if status == StatusSuccess {
		rt.Logger.InfoContext(ctx, "stage complete", "stage", stage, "status", status, "attempts", attempts)
		return
	}
	rt.Logger.WarnContext(ctx, "stage complete", "stage", stage, "status", status, "attempts", attempts, "error", errText)
}

// outcome builds the result of a generation attempt: success when err is
// nil, failed with the fallback payload otherwise.
func outcome[T any](rt *Runtime, data T, attempts int, err error, fallback func() T) StageResult[T] {
	res := StageResult[T]{
		Status:      StatusSuccess,
		Data:        data,
		Attempts:    attempts,
		Model:       rt.LLM.Model(),
		GeneratedAt: rt.now(),
	}
	if err != nil {
		res.Status = StatusFailed
		res.Data = fallback()
		res.Error = err.Error()
	}
	return res
}

// degrade lowers a successful result to degraded and appends the reason.
// A failed result keeps its status.
func degrade[T any](res *StageResult[T], reason error) {
	if res.Status == StatusSuccess {
		res.Status = StatusDegraded
	}
	res.Error = joinErr(res.Error, reason)
}

func joinErr(existing string, err error) string {
	if existing == "" {
		return err.Error()
	}
	return existing + "; " + err.Error()
}

// missingKeys returns the required keys of m that are absent or empty.
func missingKeys(m map[string]any, required []string) []string {
	var missing []string
	for _, k := range required {
		if isEmpty(m[k]) {
			missing = append(missing, k)
		}
	}
	return missing
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	}
	return false
}

// lookup reads a typed value from the state bag.
func lookup[T any](s state.State, key string) (T, bool) {
	var zero T
	val, ok := s.Get(key)
	if !ok {
		return zero, false
	}
	v, ok := val.(T)
	return v, ok
}

var errMissingKeys = errors.New("required keys missing")

func missingErr(keys []string) error {
	return fmt.Errorf("%w: %s", errMissingKeys, strings.Join(keys, ", "))
}
