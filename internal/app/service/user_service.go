package service

import (
	"context"
	"fmt"
	"io"
	"techfix/internal/common"
	"techfix/internal/domain/model"
	"techfix/internal/domain/repository"
	"techfix/internal/platform/storage"
)

type UserService struct {
	userRepo     repository.UserRepository
	problemRepo  repository.ProblemRepository
	solutionRepo repository.SolutionRepository
	imageStore   storage.ImageStore
}

func NewUserService(
	userRepo repository.UserRepository,
	problemRepo repository.ProblemRepository,
	solutionRepo repository.SolutionRepository,
	imageStore storage.ImageStore,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		problemRepo:  problemRepo,
		solutionRepo: solutionRepo,
		imageStore:   imageStore,
	}
}

type ProfileResponse struct {
	User      *model.User      `json:"user"`
	Problems  []model.Problem  `json:"problems"`
	Solutions []model.Solution `json:"solutions"`
}

func (s *UserService) GetProfile(ctx context.Context, username string) (*ProfileResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = ""

	problems, err := s.problemRepo.ListProblemsByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user problems: %w", err)
	}
	solutions, err := s.solutionRepo.ListByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user solutions: %w", err)
	}

	return &ProfileResponse{User: user, Problems: problems, Solutions: solutions}, nil
}

// UpdateProfilePic stores the uploaded image and saves its reference on the
// acting user's own record. The route shape makes a cross-user edit
// impossible: the target is always the authenticated user.
func (s *UserService) UpdateProfilePic(ctx context.Context, userID, filename string, src io.Reader) (*model.User, error) {
	if filename == "" {
		return nil, fmt.Errorf("no file selected: %w", common.ErrValidation)
	}
	if !storage.AllowedExtension(filename) {
		return nil, fmt.Errorf("invalid file type, allowed: PNG, JPG, JPEG, GIF: %w", common.ErrValidation)
	}

	stored, err := s.imageStore.Save(userID, filename, src)
	if err != nil {
		return nil, fmt.Errorf("failed to store profile picture: %w", err)
	}

	if err := s.userRepo.UpdateProfilePic(ctx, userID, stored); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}
