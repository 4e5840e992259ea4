package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"techfix/internal/common"
	"techfix/internal/domain/model"
	"techfix/internal/domain/repository"

	"github.com/google/uuid"
)

type SolutionService struct {
	solutionRepo        repository.SolutionRepository
	problemRepo         repository.ProblemRepository
	userRepo            repository.UserRepository
	voteRepo            repository.VoteRepository
	notificationService *NotificationService
	db                  *sql.DB // For transactions
}

func NewSolutionService(
	solutionRepo repository.SolutionRepository,
	problemRepo repository.ProblemRepository,
	userRepo repository.UserRepository,
	voteRepo repository.VoteRepository,
	notificationService *NotificationService,
	db *sql.DB,
) *SolutionService {
	return &SolutionService{
		solutionRepo:        solutionRepo,
		problemRepo:         problemRepo,
		userRepo:            userRepo,
		voteRepo:            voteRepo,
		notificationService: notificationService,
		db:                  db,
	}
}

type CreateSolutionRequest struct {
	Title         string                   `json:"title"`
	Steps         string                   `json:"steps"`
	Difficulty    model.SolutionDifficulty `json:"difficulty"`
	EstimatedTime string                   `json:"estimated_time"`
}

// CreateSolution is the single entry point for both the full form and the
// quick path. The self-help rule and the solved-state recomputation live
// here and nowhere else.
func (s *SolutionService) CreateSolution(ctx context.Context, userID, problemID string, req CreateSolutionRequest) (*model.Solution, error) {
	author, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	problem, err := s.problemRepo.FindProblemByID(ctx, problemID)
	if err != nil {
		return nil, err
	}

	if problem.UserID == userID {
		return nil, fmt.Errorf("you can't add a solution to your own problem: %w", common.ErrForbidden)
	}

	req.Steps = strings.TrimSpace(req.Steps)
	if req.Steps == "" {
		return nil, fmt.Errorf("please provide solution steps: %w", common.ErrValidation)
	}
	if req.Title == "" {
		req.Title = "Solution by " + author.Username
	}
	if req.Difficulty == "" {
		req.Difficulty = model.DifficultyBeginner
	}
	if !req.Difficulty.Valid() {
		return nil, fmt.Errorf("difficulty must be Beginner, Intermediate or Advanced: %w", common.ErrValidation)
	}

	solution := &model.Solution{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Steps:         req.Steps,
		Difficulty:    req.Difficulty,
		EstimatedTime: req.EstimatedTime,
		ProblemID:     problemID,
		UserID:        userID,
	}

	// The insert and the derived problem counters commit together or not
	// at all.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Rollback if not committed

	if err := s.solutionRepo.CreateSolution(ctx, tx, solution); err != nil {
		return nil, fmt.Errorf("failed to create solution: %w", err)
	}

	count, err := s.solutionRepo.CountByProblemID(ctx, tx, problemID)
	if err != nil {
		return nil, fmt.Errorf("failed to count solutions: %w", err)
	}
	if err := s.problemRepo.UpdateSolutionState(ctx, tx, problemID, count, count > 0); err != nil {
		return nil, fmt.Errorf("failed to update problem state: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if s.notificationService != nil {
		// Solution is committed; a queue failure must not fail the action.
		if err := s.notificationService.EnqueueSolutionAdded(ctx, SolutionAddedPayload{
			ProblemID:   problemID,
			SolutionID:  solution.ID,
			RecipientID: problem.UserID,
		}); err != nil {
			log.Printf("ERROR: Failed to enqueue notification for solution %s: %v", solution.ID, err)
		}
	}

	solution.AuthorUsername = &author.Username
	solution.FillHelpfulScore()
	return solution, nil
}

// Vote records one vote in the ledger and bumps the matching counter, both
// inside one transaction. A second vote by the same user on the same
// solution is rejected with a conflict and changes nothing.
func (s *SolutionService) Vote(ctx context.Context, userID, solutionID string, value model.VoteValue) (*model.Solution, error) {
	if _, err := s.solutionRepo.FindSolutionByID(ctx, solutionID); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	vote := &model.Vote{
		ID:         uuid.NewString(),
		SolutionID: solutionID,
		UserID:     userID,
		Value:      value,
	}
	if err := s.voteRepo.CreateVote(ctx, tx, vote); err != nil {
		return nil, err
	}
	if err := s.solutionRepo.IncrementVoteCount(ctx, tx, solutionID, value); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return s.solutionRepo.FindSolutionByID(ctx, solutionID)
}
