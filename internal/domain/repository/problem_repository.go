package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"techfix/internal/common"
	"techfix/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type ProblemRepository interface {
	CreateProblem(ctx context.Context, problem *model.Problem) error
	FindProblemByID(ctx context.Context, id string) (*model.Problem, error)
	FindProblemBySlug(ctx context.Context, slug string) (*model.Problem, error)
	ListProblems(ctx context.Context, filter model.ProblemFilter) ([]model.Problem, error)
	ListProblemsByUserID(ctx context.Context, userID string) ([]model.Problem, error)
	RecentSolved(ctx context.Context, limit int) ([]model.Problem, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	IncrementViews(ctx context.Context, id string) error
	UpdateSolutionState(ctx context.Context, tx *sql.Tx, problemID string, solutionCount int, isSolved bool) error
}

type pgProblemRepository struct {
	db *sql.DB
}

func NewPgProblemRepository(db *sql.DB) ProblemRepository {
	return &pgProblemRepository{db: db}
}

func (r *pgProblemRepository) CreateProblem(ctx context.Context, p *model.Problem) error {
	query := `INSERT INTO problems (id, title, slug, description, category, device_type, operating_system, urgency, user_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.Title, p.Slug, p.Description, p.Category, p.DeviceType, p.OperatingSystem, p.Urgency, p.UserID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint for slug
			return fmt.Errorf("problem with this slug already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgProblemRepository.CreateProblem: %w", err)
	}
	return nil
}

const problemColumns = `p.id, p.title, p.slug, p.description, p.category, p.device_type, p.operating_system,
               p.urgency, p.is_solved, p.views, p.solution_count, p.user_id, u.username,
               p.created_at, p.updated_at`

func scanProblem(row interface{ Scan(...interface{}) error }) (*model.Problem, error) {
	p := &model.Problem{}
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Description, &p.Category, &p.DeviceType, &p.OperatingSystem,
		&p.Urgency, &p.IsSolved, &p.Views, &p.SolutionCount, &p.UserID, &p.AuthorUsername,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *pgProblemRepository) findProblem(ctx context.Context, where string, arg interface{}, caller string) (*model.Problem, error) {
	query := `SELECT ` + problemColumns + `
        FROM problems p
        JOIN users u ON p.user_id = u.id
        WHERE ` + where

	problem, err := scanProblem(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProblemRepository.%s: %w", caller, err)
	}
	return problem, nil
}

func (r *pgProblemRepository) FindProblemByID(ctx context.Context, id string) (*model.Problem, error) {
	return r.findProblem(ctx, "p.id = $1", id, "FindProblemByID")
}

func (r *pgProblemRepository) FindProblemBySlug(ctx context.Context, slug string) (*model.Problem, error) {
	return r.findProblem(ctx, "p.slug = $1", slug, "FindProblemBySlug")
}

// buildBrowseQuery composes the filtered, sorted browse query from the
// independent optional criteria. All supplied predicates are AND-combined;
// the search term matches title OR description case-insensitively.
func buildBrowseQuery(filter model.ProblemFilter) (string, []interface{}) {
	var query strings.Builder
	query.WriteString(`SELECT ` + problemColumns + `
        FROM problems p
        JOIN users u ON p.user_id = u.id`)

	var conditions []string
	var args []interface{}
	argID := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(p.title ILIKE $%d OR p.description ILIKE $%d)", argID, argID))
		args = append(args, "%"+filter.Search+"%")
		argID++
	}
	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("p.category = $%d", argID))
		args = append(args, filter.Category)
		argID++
	}
	if filter.Sort == model.SortUnsolved {
		conditions = append(conditions, "p.is_solved = FALSE")
	}

	if len(conditions) > 0 {
		query.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}

	switch filter.Sort {
	case model.SortViews:
		query.WriteString(" ORDER BY p.views DESC")
	case model.SortSolutions:
		query.WriteString(" ORDER BY p.solution_count DESC")
	default: // newest and unsolved both order by creation time
		query.WriteString(" ORDER BY p.created_at DESC")
	}

	return query.String(), args
}

func (r *pgProblemRepository) ListProblems(ctx context.Context, filter model.ProblemFilter) ([]model.Problem, error) {
	query, args := buildBrowseQuery(filter)
	return r.queryProblems(ctx, query, args, "ListProblems")
}

func (r *pgProblemRepository) ListProblemsByUserID(ctx context.Context, userID string) ([]model.Problem, error) {
	query := `SELECT ` + problemColumns + `
        FROM problems p
        JOIN users u ON p.user_id = u.id
        WHERE p.user_id = $1
        ORDER BY p.created_at DESC`
	return r.queryProblems(ctx, query, []interface{}{userID}, "ListProblemsByUserID")
}

func (r *pgProblemRepository) RecentSolved(ctx context.Context, limit int) ([]model.Problem, error) {
	query := `SELECT ` + problemColumns + `
        FROM problems p
        JOIN users u ON p.user_id = u.id
        WHERE p.is_solved = TRUE
        ORDER BY p.created_at DESC
        LIMIT $1`
	return r.queryProblems(ctx, query, []interface{}{limit}, "RecentSolved")
}

func (r *pgProblemRepository) queryProblems(ctx context.Context, query string, args []interface{}, caller string) ([]model.Problem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgProblemRepository.%s: %w", caller, err)
	}
	defer rows.Close()

	problems := []model.Problem{}
	for rows.Next() {
		p, err := scanProblem(rows)
		if err != nil {
			return nil, fmt.Errorf("pgProblemRepository.%s: scan: %w", caller, err)
		}
		problems = append(problems, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProblemRepository.%s: rows: %w", caller, err)
	}
	return problems, nil
}

func (r *pgProblemRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT category FROM problems WHERE category <> '' ORDER BY category`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgProblemRepository.DistinctCategories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("pgProblemRepository.DistinctCategories: scan: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProblemRepository.DistinctCategories: rows: %w", err)
	}
	return categories, nil
}

// IncrementViews bumps the view counter with a single relative update, so
// concurrent detail reads never lose increments.
func (r *pgProblemRepository) IncrementViews(ctx context.Context, id string) error {
	query := `UPDATE problems SET views = views + 1 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("pgProblemRepository.IncrementViews: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// UpdateSolutionState writes the recomputed cached aggregate. Only the
// solution service calls this, inside the same transaction as the solution
// insert.
func (r *pgProblemRepository) UpdateSolutionState(ctx context.Context, tx *sql.Tx, problemID string, solutionCount int, isSolved bool) error {
	query := `UPDATE problems SET solution_count = $1, is_solved = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, solutionCount, isSolved, problemID)
	} else {
		_, err = r.db.ExecContext(ctx, query, solutionCount, isSolved, problemID)
	}
	if err != nil {
		return fmt.Errorf("pgProblemRepository.UpdateSolutionState: %w", err)
	}
	return nil
}
