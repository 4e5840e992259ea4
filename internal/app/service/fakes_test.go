package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"techfix/internal/common"
	"techfix/internal/domain/model"
)

type fakeUserRepo struct {
	users map[string]*model.User // by ID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("user with given username or email already exists: %w", common.ErrConflict)
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) UpdateProfilePic(ctx context.Context, userID, profilePic string) error {
	u, ok := r.users[userID]
	if !ok {
		return common.ErrNotFound
	}
	u.ProfilePic = &profilePic
	return nil
}

type fakeProblemRepo struct {
	problems map[string]*model.Problem
	order    []string // insertion order, newest last
}

func newFakeProblemRepo() *fakeProblemRepo {
	return &fakeProblemRepo{problems: map[string]*model.Problem{}}
}

func (r *fakeProblemRepo) CreateProblem(ctx context.Context, p *model.Problem) error {
	for _, existing := range r.problems {
		if existing.Slug == p.Slug {
			return fmt.Errorf("problem with this slug already exists: %w", common.ErrConflict)
		}
	}
	cp := *p
	r.problems[p.ID] = &cp
	r.order = append(r.order, p.ID)
	return nil
}

func (r *fakeProblemRepo) FindProblemByID(ctx context.Context, id string) (*model.Problem, error) {
	p, ok := r.problems[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProblemRepo) FindProblemBySlug(ctx context.Context, slug string) (*model.Problem, error) {
	for _, p := range r.problems {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

// ListProblems mirrors the store's browse semantics: AND-combined optional
// predicates, case-insensitive substring search over title or description.
func (r *fakeProblemRepo) ListProblems(ctx context.Context, filter model.ProblemFilter) ([]model.Problem, error) {
	matched := []model.Problem{}
	for i := len(r.order) - 1; i >= 0; i-- { // newest first
		p := r.problems[r.order[i]]
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(p.Title), needle) &&
				!strings.Contains(strings.ToLower(p.Description), needle) {
				continue
			}
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Sort == model.SortUnsolved && p.IsSolved {
			continue
		}
		matched = append(matched, *p)
	}

	switch filter.Sort {
	case model.SortViews:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Views > matched[j].Views })
	case model.SortSolutions:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].SolutionCount > matched[j].SolutionCount })
	}
	return matched, nil
}

func (r *fakeProblemRepo) ListProblemsByUserID(ctx context.Context, userID string) ([]model.Problem, error) {
	out := []model.Problem{}
	for _, id := range r.order {
		if p := r.problems[id]; p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProblemRepo) RecentSolved(ctx context.Context, limit int) ([]model.Problem, error) {
	out := []model.Problem{}
	for i := len(r.order) - 1; i >= 0 && len(out) < limit; i-- {
		if p := r.problems[r.order[i]]; p.IsSolved {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProblemRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	out := []string{}
	for _, id := range r.order {
		c := r.problems[id].Category
		if c != "" && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *fakeProblemRepo) IncrementViews(ctx context.Context, id string) error {
	p, ok := r.problems[id]
	if !ok {
		return common.ErrNotFound
	}
	p.Views++
	return nil
}

func (r *fakeProblemRepo) UpdateSolutionState(ctx context.Context, tx *sql.Tx, problemID string, solutionCount int, isSolved bool) error {
	p, ok := r.problems[problemID]
	if !ok {
		return common.ErrNotFound
	}
	p.SolutionCount = solutionCount
	p.IsSolved = isSolved
	return nil
}

type fakeSolutionRepo struct {
	solutions  map[string]*model.Solution
	order      []string
	failCreate bool
}

func newFakeSolutionRepo() *fakeSolutionRepo {
	return &fakeSolutionRepo{solutions: map[string]*model.Solution{}}
}

func (r *fakeSolutionRepo) CreateSolution(ctx context.Context, tx *sql.Tx, s *model.Solution) error {
	if r.failCreate {
		return fmt.Errorf("pgSolutionRepository.CreateSolution: %w", common.ErrInternalServer)
	}
	cp := *s
	r.solutions[s.ID] = &cp
	r.order = append(r.order, s.ID)
	return nil
}

func (r *fakeSolutionRepo) FindSolutionByID(ctx context.Context, id string) (*model.Solution, error) {
	s, ok := r.solutions[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *s
	cp.FillHelpfulScore()
	return &cp, nil
}

func (r *fakeSolutionRepo) ListByProblemID(ctx context.Context, problemID string) ([]model.Solution, error) {
	out := []model.Solution{}
	for _, id := range r.order {
		if s := r.solutions[id]; s.ProblemID == problemID {
			cp := *s
			cp.FillHelpfulScore()
			out = append(out, cp)
		}
	}
	return out, nil
}

func (r *fakeSolutionRepo) ListByUserID(ctx context.Context, userID string) ([]model.Solution, error) {
	out := []model.Solution{}
	for _, id := range r.order {
		if s := r.solutions[id]; s.UserID == userID {
			cp := *s
			cp.FillHelpfulScore()
			out = append(out, cp)
		}
	}
	return out, nil
}

func (r *fakeSolutionRepo) CountByProblemID(ctx context.Context, tx *sql.Tx, problemID string) (int, error) {
	count := 0
	for _, s := range r.solutions {
		if s.ProblemID == problemID {
			count++
		}
	}
	return count, nil
}

func (r *fakeSolutionRepo) IncrementVoteCount(ctx context.Context, tx *sql.Tx, solutionID string, value model.VoteValue) error {
	s, ok := r.solutions[solutionID]
	if !ok {
		return common.ErrNotFound
	}
	if value == model.VoteUp {
		s.Upvotes++
	} else {
		s.Downvotes++
	}
	return nil
}

type fakeVoteRepo struct {
	votes map[string]model.VoteValue // keyed by solutionID|userID
}

func newFakeVoteRepo() *fakeVoteRepo {
	return &fakeVoteRepo{votes: map[string]model.VoteValue{}}
}

func (r *fakeVoteRepo) CreateVote(ctx context.Context, tx *sql.Tx, v *model.Vote) error {
	key := v.SolutionID + "|" + v.UserID
	if _, exists := r.votes[key]; exists {
		return fmt.Errorf("you have already voted on this solution: %w", common.ErrConflict)
	}
	r.votes[key] = v.Value
	return nil
}
