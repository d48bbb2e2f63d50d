package prompts

import (
	"encoding/json"
	"slices"
)

// Stage identifies a model call that a prompt override can target.
type Stage string

// Valid prompt stages.
const (
	StageGrowth  Stage = "growth"
	StageICP     Stage = "icp"
	StageQueries Stage = "queries"
	StageRecruit Stage = "recruit"
	StageScoring Stage = "scoring"
	StageChat    Stage = "chat"
	StageJudge   Stage = "judge"
)

var stages = []Stage{
	StageGrowth,
	StageICP,
	StageQueries,
	StageRecruit,
	StageScoring,
	StageChat,
	StageJudge,
}

// Stages returns the list of valid prompt stages.
func Stages() []Stage {
	return stages
}

// UnmarshalJSON validates that the decoded string is a known stage value.
func (s *Stage) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := ParseStage(raw)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseStage validates a string as a known stage.
// Returns ErrInvalidStage if the value is not recognized.
func ParseStage(s string) (Stage, error) {
	v := Stage(s)
	if !slices.Contains(stages, v) {
		return "", ErrInvalidStage
	}
	return v, nil
}
