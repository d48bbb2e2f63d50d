package prompts

import (
	"context"

	"github.com/google/uuid"

	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/pagination"
)

// System manages stored overrides. As a Source it resolves the active
// override for a stage before falling back to the hardcoded default.
type System interface {
	Source

	Handler() *Handler

	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Prompt], error)
	Find(ctx context.Context, id uuid.UUID) (*Prompt, error)
	Create(ctx context.Context, cmd Command) (*Prompt, error)
	Update(ctx context.Context, id uuid.UUID, cmd Command) (*Prompt, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Activate makes id the override for its stage, replacing any other.
	Activate(ctx context.Context, id uuid.UUID) (*Prompt, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*Prompt, error)
}
