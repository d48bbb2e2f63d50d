package rag

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/llm"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/prompts"
)

// Case is one question with the answer it should produce.
type Case struct {
	Name     string `yaml:"name"`
	Question string `yaml:"question"`
	Expected string `yaml:"expected"`
}

// Verdict is the judged outcome of a Case.
type Verdict struct {
	Case   Case
	Actual string
	Pass   bool
}

// LoadCases reads a YAML list of cases.
func LoadCases(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cases: %w", err)
	}

	var cases []Case
	if err := yaml.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("parse cases: %w", err)
	}
	if len(cases) == 0 {
		return nil, ErrNoCases
	}
	return cases, nil
}

// Evaluator asks the chat each case's question and has a judge model
// decide whether the answer matches the expected one.
type Evaluator struct {
	chat    *Chat
	judge   llm.Client
	prompts prompts.Source
}

func NewEvaluator(chat *Chat, judge llm.Client, src prompts.Source) *Evaluator {
	return &Evaluator{chat: chat, judge: judge, prompts: src}
}

// Evaluate judges every case in order. A judge reply that is neither true
// nor false stops the run with ErrInvalidVerdict.
func (e *Evaluator) Evaluate(ctx context.Context, cases []Case) ([]Verdict, error) {
	verdicts := make([]Verdict, 0, len(cases))

	for _, c := range cases {
		answer, err := e.chat.Answer(ctx, c.Question)
		if err != nil {
			return verdicts, fmt.Errorf("answer %q: %w", c.Question, err)
		}

		prompt, err := prompts.Compose(ctx, e.prompts, prompts.StageJudge, map[string]string{
			"expected_response": c.Expected,
			"actual_response":   answer.Text,
		})
		if err != nil {
			return verdicts, err
		}

		reply, err := e.judge.Chat(ctx, prompt)
		if err != nil {
			return verdicts, fmt.Errorf("judge %q: %w", c.Question, err)
		}

		pass, err := ParseVerdict(reply)
		if err != nil {
			return verdicts, err
		}

		verdicts = append(verdicts, Verdict{Case: c, Actual: answer.Text, Pass: pass})
	}

	return verdicts, nil
}

// ParseVerdict reads a judge reply. "true" anywhere wins over "false".
func ParseVerdict(reply string) (bool, error) {
	s := strings.ToLower(strings.TrimSpace(reply))
	switch {
	case strings.Contains(s, "true"):
		return true, nil
	case strings.Contains(s, "false"):
		return false, nil
	}
	return false, fmt.Errorf("%w: %q", ErrInvalidVerdict, reply)
}
