package service

import (
	"context"
	"errors"
	"fmt"
	"techfix/internal/common"
	"techfix/internal/domain/model"
	"techfix/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const recentSolvedLimit = 4

type ProblemService struct {
	problemRepo  repository.ProblemRepository
	solutionRepo repository.SolutionRepository
}

func NewProblemService(problemRepo repository.ProblemRepository, solutionRepo repository.SolutionRepository) *ProblemService {
	return &ProblemService{problemRepo: problemRepo, solutionRepo: solutionRepo}
}

type SubmitProblemRequest struct {
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	Category        string               `json:"category"`
	DeviceType      string               `json:"device_type"`
	OperatingSystem string               `json:"operating_system"`
	Urgency         model.ProblemUrgency `json:"urgency"`
}

func (s *ProblemService) SubmitProblem(ctx context.Context, userID string, req SubmitProblemRequest) (*model.Problem, error) {
	if req.Title == "" || req.Description == "" || req.Category == "" {
		return nil, fmt.Errorf("title, description and category are required: %w", common.ErrValidation)
	}
	if req.Urgency == "" {
		req.Urgency = model.UrgencyMedium
	}
	if !req.Urgency.Valid() {
		return nil, fmt.Errorf("urgency must be low, medium or high: %w", common.ErrValidation)
	}

	problem := &model.Problem{
		ID:              uuid.NewString(),
		Title:           req.Title,
		Slug:            slug.Make(req.Title),
		Description:     req.Description,
		Category:        req.Category,
		DeviceType:      req.DeviceType,
		OperatingSystem: req.OperatingSystem,
		Urgency:         req.Urgency,
		UserID:          userID,
	}

	err := s.problemRepo.CreateProblem(ctx, problem)
	if errors.Is(err, common.ErrConflict) {
		// Slug collision with an existing title; disambiguate and retry once.
		problem.Slug = fmt.Sprintf("%s-%s", problem.Slug, problem.ID[:8])
		err = s.problemRepo.CreateProblem(ctx, problem)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create problem: %w", err)
	}

	return s.problemRepo.FindProblemByID(ctx, problem.ID)
}

// GetProblemDetail counts the view and returns the problem with its
// solutions. The increment is a single relative update in the store.
func (s *ProblemService) GetProblemDetail(ctx context.Context, problemID string) (*model.Problem, error) {
	if err := s.problemRepo.IncrementViews(ctx, problemID); err != nil {
		return nil, err
	}

	problem, err := s.problemRepo.FindProblemByID(ctx, problemID)
	if err != nil {
		return nil, err
	}

	solutions, err := s.solutionRepo.ListByProblemID(ctx, problemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load solutions: %w", err)
	}
	problem.Solutions = solutions
	return problem, nil
}

// Browse returns the problems matching every supplied criterion. Unknown
// sort modes fall back to newest; the full matching set is returned.
func (s *ProblemService) Browse(ctx context.Context, filter model.ProblemFilter) ([]model.Problem, model.ProblemFilter, error) {
	filter = filter.Normalized()
	problems, err := s.problemRepo.ListProblems(ctx, filter)
	if err != nil {
		return nil, filter, fmt.Errorf("failed to browse problems: %w", err)
	}
	return problems, filter, nil
}

// Categories lists the non-empty category values currently in use, for the
// browse filter choices.
func (s *ProblemService) Categories(ctx context.Context) ([]string, error) {
	return s.problemRepo.DistinctCategories(ctx)
}

// RecentSolved returns the latest solved problems for the home page.
func (s *ProblemService) RecentSolved(ctx context.Context) ([]model.Problem, error) {
	return s.problemRepo.RecentSolved(ctx, recentSolvedLimit)
}
