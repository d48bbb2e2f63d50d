package runs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/pagination"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/query"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/repository"
)

const returning = `RETURNING id, kind, input, status, company_name, summary, error, started_at, completed_at`

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a run repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "runs"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Run], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Input", "CompanyName")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count runs: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanRun)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Run, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	run, err := repository.QueryOne(ctx, r.db, q, args, scanRun)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &run, nil
}

func (r *repo) Start(ctx context.Context, kind Kind, input string) (*Run, error) {
	if kind != KindWebsite && kind != KindJobDescription {
		return nil, fmt.Errorf("%w: %s", ErrInvalidKind, kind)
	}

	q := `
		INSERT INTO runs(id, kind, input, status)
		VALUES ($1, $2, $3, $4)
		` + returning

	args := []any{uuid.New(), kind, input, StatusRunning}

	run, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Run, error) {
		return repository.QueryOne(ctx, tx, q, args, scanRun)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("run started", "id", run.ID, "kind", run.Kind)
	return &run, nil
}

func (r *repo) Complete(ctx context.Context, id uuid.UUID, companyName string, summary any) (*Run, error) {
	data, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("encode run summary: %w", err)
	}

	q := `
		UPDATE runs
		SET status = $2, company_name = $3, summary = $4, completed_at = NOW()
		WHERE id = $1 AND status = $5
		` + returning

	return r.finish(ctx, id, q, []any{id, StatusCompleted, companyName, data, StatusRunning})
}

func (r *repo) Fail(ctx context.Context, id uuid.UUID, cause error) (*Run, error) {
	msg := "unknown error"
	if cause != nil {
		msg = cause.Error()
	}

	q := `
		UPDATE runs
		SET status = $2, error = $3, completed_at = NOW()
		WHERE id = $1 AND status = $4
		` + returning

	return r.finish(ctx, id, q, []any{id, StatusFailed, msg, StatusRunning})
}

// finish applies a terminal transition. A run that exists but is no
// longer running reports ErrNotRunning.
func (r *repo) finish(ctx context.Context, id uuid.UUID, q string, args []any) (*Run, error) {
	run, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Run, error) {
		return repository.QueryOne(ctx, tx, q, args, scanRun)
	})
	if err != nil {
		mapped := repository.MapError(err, ErrNotFound, ErrDuplicate)
		if errors.Is(mapped, ErrNotFound) {
			if _, findErr := r.Find(ctx, id); findErr == nil {
				return nil, ErrNotRunning
			}
		}
		return nil, mapped
	}

	r.logger.Info("run finished", "id", run.ID, "status", run.Status)
	return &run, nil
}
