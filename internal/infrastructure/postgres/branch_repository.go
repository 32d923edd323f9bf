package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-distribution/internal/domain"
	"github.com/jhoicas/stock-distribution/internal/domain/entity"
	"github.com/jhoicas/stock-distribution/internal/domain/repository"
)

var _ repository.BranchRepository = (*BranchRepo)(nil)

const branchColumns = `id, name, name_key, sales_target, position, created_at, updated_at`

// BranchRepo implementación del puerto BranchRepository sobre PostgreSQL.
type BranchRepo struct {
	q Querier
}

// NewBranchRepository construye el adaptador de persistencia para sucursales.
func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

// Create persiste la sucursal. position la asigna la columna identity y se devuelve en branch.Position.
func (r *BranchRepo) Create(ctx context.Context, branch *entity.Branch) error {
	query := `
		INSERT INTO branches (id, name, name_key, sales_target, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING position`
	err := r.q.QueryRow(ctx, query,
		branch.ID, branch.Name, branch.NameKey, branch.SalesTarget, branch.CreatedAt, branch.UpdatedAt,
	).Scan(&branch.Position)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert branch: %w", err)
	}
	return nil
}

// GetByID obtiene una sucursal por ID.
func (r *BranchRepo) GetByID(ctx context.Context, id string) (*entity.Branch, error) {
	return r.getOne(ctx, "get branch", `SELECT `+branchColumns+` FROM branches WHERE id = $1`, id)
}

// GetByNameKey obtiene una sucursal por nombre normalizado.
func (r *BranchRepo) GetByNameKey(ctx context.Context, nameKey string) (*entity.Branch, error) {
	return r.getOne(ctx, "get branch by name", `SELECT `+branchColumns+` FROM branches WHERE name_key = $1`, nameKey)
}

func (r *BranchRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.Branch, error) {
	b, err := scanBranch(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}

// UpdateSalesTarget cambia la meta de ventas semanal.
func (r *BranchRepo) UpdateSalesTarget(ctx context.Context, id string, salesTarget int64) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE branches SET sales_target = $2, updated_at = now() WHERE id = $1`,
		id, salesTarget,
	)
	if err != nil {
		return fmt.Errorf("update branch sales target: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve todas las sucursales en orden de position.
func (r *BranchRepo) List(ctx context.Context) ([]*entity.Branch, error) {
	rows, err := r.q.Query(ctx, `SELECT `+branchColumns+` FROM branches ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	return collectBranches(rows)
}

// ListPage lista sucursales con paginación.
func (r *BranchRepo) ListPage(ctx context.Context, limit, offset int) ([]*entity.Branch, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+branchColumns+` FROM branches ORDER BY position LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	return collectBranches(rows)
}

func scanBranch(row pgx.Row) (*entity.Branch, error) {
	var b entity.Branch
	if err := row.Scan(&b.ID, &b.Name, &b.NameKey, &b.SalesTarget, &b.Position, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func collectBranches(rows pgx.Rows) ([]*entity.Branch, error) {
	defer rows.Close()
	var list []*entity.Branch
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		list = append(list, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate branches: %w", err)
	}
	return list, nil
}
