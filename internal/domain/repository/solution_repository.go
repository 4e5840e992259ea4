package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"techfix/internal/common"
	"techfix/internal/domain/model"
)

type SolutionRepository interface {
	CreateSolution(ctx context.Context, tx *sql.Tx, solution *model.Solution) error
	FindSolutionByID(ctx context.Context, id string) (*model.Solution, error)
	ListByProblemID(ctx context.Context, problemID string) ([]model.Solution, error)
	ListByUserID(ctx context.Context, userID string) ([]model.Solution, error)
	CountByProblemID(ctx context.Context, tx *sql.Tx, problemID string) (int, error)
	IncrementVoteCount(ctx context.Context, tx *sql.Tx, solutionID string, value model.VoteValue) error
}

type pgSolutionRepository struct {
	db *sql.DB
}

func NewPgSolutionRepository(db *sql.DB) SolutionRepository {
	return &pgSolutionRepository{db: db}
}

func (r *pgSolutionRepository) CreateSolution(ctx context.Context, tx *sql.Tx, s *model.Solution) error {
	query := `INSERT INTO solutions (id, title, steps, difficulty, estimated_time, problem_id, user_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, s.ID, s.Title, s.Steps, s.Difficulty, s.EstimatedTime, s.ProblemID, s.UserID)
	} else {
		_, err = r.db.ExecContext(ctx, query, s.ID, s.Title, s.Steps, s.Difficulty, s.EstimatedTime, s.ProblemID, s.UserID)
	}
	if err != nil {
		return fmt.Errorf("pgSolutionRepository.CreateSolution: %w", err)
	}
	return nil
}

const solutionColumns = `s.id, s.title, s.steps, s.difficulty, s.estimated_time, s.upvotes, s.downvotes,
               s.is_verified, s.problem_id, s.user_id, s.created_at, u.username, p.title`

func scanSolution(row interface{ Scan(...interface{}) error }) (*model.Solution, error) {
	s := &model.Solution{}
	err := row.Scan(
		&s.ID, &s.Title, &s.Steps, &s.Difficulty, &s.EstimatedTime, &s.Upvotes, &s.Downvotes,
		&s.IsVerified, &s.ProblemID, &s.UserID, &s.CreatedAt, &s.AuthorUsername, &s.ProblemTitle,
	)
	if err != nil {
		return nil, err
	}
	s.FillHelpfulScore()
	return s, nil
}

func (r *pgSolutionRepository) FindSolutionByID(ctx context.Context, id string) (*model.Solution, error) {
	query := `SELECT ` + solutionColumns + `
        FROM solutions s
        JOIN users u ON s.user_id = u.id
        JOIN problems p ON s.problem_id = p.id
        WHERE s.id = $1`

	solution, err := scanSolution(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSolutionRepository.FindSolutionByID: %w", err)
	}
	return solution, nil
}

func (r *pgSolutionRepository) ListByProblemID(ctx context.Context, problemID string) ([]model.Solution, error) {
	query := `SELECT ` + solutionColumns + `
        FROM solutions s
        JOIN users u ON s.user_id = u.id
        JOIN problems p ON s.problem_id = p.id
        WHERE s.problem_id = $1
        ORDER BY s.upvotes DESC, s.created_at ASC`
	return r.querySolutions(ctx, query, []interface{}{problemID}, "ListByProblemID")
}

func (r *pgSolutionRepository) ListByUserID(ctx context.Context, userID string) ([]model.Solution, error) {
	query := `SELECT ` + solutionColumns + `
        FROM solutions s
        JOIN users u ON s.user_id = u.id
        JOIN problems p ON s.problem_id = p.id
        WHERE s.user_id = $1
        ORDER BY s.created_at DESC`
	return r.querySolutions(ctx, query, []interface{}{userID}, "ListByUserID")
}

func (r *pgSolutionRepository) querySolutions(ctx context.Context, query string, args []interface{}, caller string) ([]model.Solution, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgSolutionRepository.%s: %w", caller, err)
	}
	defer rows.Close()

	solutions := []model.Solution{}
	for rows.Next() {
		s, err := scanSolution(rows)
		if err != nil {
			return nil, fmt.Errorf("pgSolutionRepository.%s: scan: %w", caller, err)
		}
		solutions = append(solutions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgSolutionRepository.%s: rows: %w", caller, err)
	}
	return solutions, nil
}

// CountByProblemID is the source of truth the cached solution_count is
// recomputed from.
func (r *pgSolutionRepository) CountByProblemID(ctx context.Context, tx *sql.Tx, problemID string) (int, error) {
	query := `SELECT COUNT(*) FROM solutions WHERE problem_id = $1`

	var count int
	var err error
	if tx != nil {
		err = tx.QueryRowContext(ctx, query, problemID).Scan(&count)
	} else {
		err = r.db.QueryRowContext(ctx, query, problemID).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("pgSolutionRepository.CountByProblemID: %w", err)
	}
	return count, nil
}

// IncrementVoteCount bumps exactly one counter with a relative update.
// Counters only ever grow, so they stay non-negative by construction.
func (r *pgSolutionRepository) IncrementVoteCount(ctx context.Context, tx *sql.Tx, solutionID string, value model.VoteValue) error {
	var query string
	if value == model.VoteUp {
		query = `UPDATE solutions SET upvotes = upvotes + 1 WHERE id = $1`
	} else {
		query = `UPDATE solutions SET downvotes = downvotes + 1 WHERE id = $1`
	}

	var res sql.Result
	var err error
	if tx != nil {
		res, err = tx.ExecContext(ctx, query, solutionID)
	} else {
		res, err = r.db.ExecContext(ctx, query, solutionID)
	}
	if err != nil {
		return fmt.Errorf("pgSolutionRepository.IncrementVoteCount: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}
