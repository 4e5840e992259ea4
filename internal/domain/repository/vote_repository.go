package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"techfix/internal/common"
	"techfix/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type VoteRepository interface {
	CreateVote(ctx context.Context, tx *sql.Tx, vote *model.Vote) error
}

type pgVoteRepository struct {
	db *sql.DB
}

func NewPgVoteRepository(db *sql.DB) VoteRepository {
	return &pgVoteRepository{db: db}
}

// CreateVote inserts the ledger row. The UNIQUE (solution_id, user_id)
// constraint turns a repeat vote into a conflict instead of a silent
// double count.
func (r *pgVoteRepository) CreateVote(ctx context.Context, tx *sql.Tx, v *model.Vote) error {
	query := `INSERT INTO votes (id, solution_id, user_id, value) VALUES ($1, $2, $3, $4)`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, v.ID, v.SolutionID, v.UserID, v.Value)
	} else {
		_, err = r.db.ExecContext(ctx, query, v.ID, v.SolutionID, v.UserID, v.Value)
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // One vote per (user, solution)
			return fmt.Errorf("you have already voted on this solution: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgVoteRepository.CreateVote: %w", err)
	}
	return nil
}
