package runs

import (
	"context"

	"github.com/google/uuid"

	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/pagination"
)

// System defines the public contract for run history operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Run], error)

	Find(ctx context.Context, id uuid.UUID) (*Run, error)

	// Start records a new running invocation.
	Start(ctx context.Context, kind Kind, input string) (*Run, error)

	// Complete stores the summary of a running invocation. summary is
	// encoded as JSON.
	Complete(ctx context.Context, id uuid.UUID, companyName string, summary any) (*Run, error)

	Fail(ctx context.Context, id uuid.UUID, cause error) (*Run, error)
}
