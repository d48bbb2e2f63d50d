package prompts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/pagination"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/query"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New returns the postgres-backed System.
func New(db *sql.DB, logger *slog.Logger, cfg pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "prompts"),
		pagination: cfg,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Prompt], error) {
	page.Normalize(r.pagination)

	qb := query.NewBuilder(projection, defaultSort...).
		WhereSearch(page.Search, "Name", "Description", "Instructions")
	filters.Apply(qb)
	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	var total int
	countSQL, countArgs := qb.BuildCount()
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count prompts: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanPrompt)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Prompt, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)
	p, err := repository.QueryOne(ctx, r.db, q, args, scanPrompt)
	if err != nil {
		return nil, r.mapErr(err)
	}
	return &p, nil
}

// Instructions returns the active override for stage, or the hardcoded
// default when none is active.
func (r *repo) Instructions(ctx context.Context, stage Stage) (string, error) {
	if _, err := ParseStage(string(stage)); err != nil {
		return "", err
	}

	var text string
	err := r.db.QueryRowContext(ctx,
		"SELECT instructions FROM prompts WHERE stage = $1 AND active",
		stage,
	).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return Instructions(stage)
	}
	if err != nil {
		return "", fmt.Errorf("active %s prompt: %w", stage, err)
	}
	return text, nil
}

func (r *repo) Spec(_ context.Context, stage Stage) (string, error) {
	return Spec(stage)
}

func (r *repo) Create(ctx context.Context, cmd Command) (*Prompt, error) {
	p, err := r.mutate(ctx,
		"INSERT INTO prompts(name, stage, instructions, description) VALUES ($1, $2, $3, $4) RETURNING "+columns,
		cmd.Name, cmd.Stage, cmd.Instructions, cmd.Description,
	)
	if err != nil {
		return nil, err
	}
	r.logger.Info("prompt created", "id", p.ID, "name", p.Name, "stage", p.Stage)
	return p, nil
}

// Update rewrites an override in place. Moving an active prompt to another
// stage deactivates it so the target stage keeps at most one override.
func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd Command) (*Prompt, error) {
	p, err := r.mutate(ctx, `
		UPDATE prompts
		SET name = $1, stage = $2, instructions = $3, description = $4,
			active = active AND stage = $2
		WHERE id = $5
		RETURNING `+columns,
		cmd.Name, cmd.Stage, cmd.Instructions, cmd.Description, id,
	)
	if err != nil {
		return nil, err
	}
	r.logger.Info("prompt updated", "id", p.ID, "name", p.Name, "active", p.Active)
	return p, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, "DELETE FROM prompts WHERE id = $1", id)
	})
	if err != nil {
		return r.mapErr(err)
	}
	r.logger.Info("prompt deleted", "id", id)
	return nil
}

func (r *repo) Activate(ctx context.Context, id uuid.UUID) (*Prompt, error) {
	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Prompt, error) {
		var stage Stage
		if err := tx.QueryRowContext(ctx, "SELECT stage FROM prompts WHERE id = $1 FOR UPDATE", id).Scan(&stage); err != nil {
			return Prompt{}, err
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE prompts SET active = false WHERE stage = $1 AND active AND id <> $2",
			stage, id,
		); err != nil {
			return Prompt{}, fmt.Errorf("clear active %s prompt: %w", stage, err)
		}

		return repository.QueryOne(ctx, tx,
			"UPDATE prompts SET active = true WHERE id = $1 RETURNING "+columns,
			[]any{id}, scanPrompt,
		)
	})
	if err != nil {
		return nil, r.mapErr(err)
	}
	r.logger.Info("prompt activated", "id", p.ID, "name", p.Name, "stage", p.Stage)
	return &p, nil
}

func (r *repo) Deactivate(ctx context.Context, id uuid.UUID) (*Prompt, error) {
	p, err := r.mutate(ctx, "UPDATE prompts SET active = false WHERE id = $1 RETURNING "+columns, id)
	if err != nil {
		return nil, err
	}
	r.logger.Info("prompt deactivated", "id", p.ID, "stage", p.Stage)
	return p, nil
}

// mutate runs a single-row write returning the prompt columns.
func (r *repo) mutate(ctx context.Context, q string, args ...any) (*Prompt, error) {
	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Prompt, error) {
		return repository.QueryOne(ctx, tx, q, args, scanPrompt)
	})
	if err != nil {
		return nil, r.mapErr(err)
	}
	return &p, nil
}

func (r *repo) mapErr(err error) error {
	if repository.IsViolation(err, repository.CheckViolation) {
		return ErrInvalidStage
	}
	return repository.MapError(err, ErrNotFound, ErrDuplicate)
}
