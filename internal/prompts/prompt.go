// Package prompts owns the instructions sent to the model at every stage
// of the lead, recruiting and chat pipelines. Each stage has a hardcoded
// default; named overrides stored in postgres can replace the instructions
// of a stage while its output spec stays fixed.
package prompts

import (
	"strings"

	"github.com/google/uuid"
)

// Prompt is a named instruction override for a stage. At most one prompt
// per stage is active.
type Prompt struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Stage        Stage     `json:"stage"`
	Instructions string    `json:"instructions"`
	Description  *string   `json:"description"`
	Active       bool      `json:"active"`
}

// Command is the body of create and update requests. Overrides never
// carry an output spec; the stage's spec is appended at compose time.
type Command struct {
	Name         string  `json:"name"`
	Stage        Stage   `json:"stage"`
	Instructions string  `json:"instructions"`
	Description  *string `json:"description"`
}

// Validate trims the command and checks the required fields.
func (c *Command) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	c.Instructions = strings.TrimSpace(c.Instructions)
	if c.Name == "" || c.Instructions == "" {
		return ErrIncomplete
	}
	if _, err := ParseStage(string(c.Stage)); err != nil {
		return err
	}
	return nil
}
