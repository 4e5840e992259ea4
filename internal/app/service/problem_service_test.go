package service

import (
	"context"
	"strings"
	"techfix/internal/common"
	"techfix/internal/domain/model"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type problemEnv struct {
	service      *ProblemService
	problemRepo  *fakeProblemRepo
	solutionRepo *fakeSolutionRepo
}

func newProblemEnv() *problemEnv {
	env := &problemEnv{
		problemRepo:  newFakeProblemRepo(),
		solutionRepo: newFakeSolutionRepo(),
	}
	env.service = NewProblemService(env.problemRepo, env.solutionRepo)
	return env
}

func (env *problemEnv) submit(t *testing.T, req SubmitProblemRequest) *model.Problem {
	t.Helper()
	p, err := env.service.SubmitProblem(context.Background(), uuid.NewString(), req)
	require.NoError(t, err)
	return p
}

func TestSubmitProblemDefaults(t *testing.T) {
	env := newProblemEnv()

	problem := env.submit(t, SubmitProblemRequest{
		Title:       "Printer offline",
		Description: "My HP printer shows offline.",
		Category:    "Hardware",
	})

	assert.Equal(t, "printer-offline", problem.Slug)
	assert.Equal(t, model.UrgencyMedium, problem.Urgency)
	assert.False(t, problem.IsSolved)
	assert.Equal(t, 0, problem.SolutionCount)
	assert.Equal(t, 0, problem.Views)
}

func TestSubmitProblemValidation(t *testing.T) {
	env := newProblemEnv()

	_, err := env.service.SubmitProblem(context.Background(), uuid.NewString(), SubmitProblemRequest{Title: "No description"})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = env.service.SubmitProblem(context.Background(), uuid.NewString(), SubmitProblemRequest{
		Title:       "Bad urgency",
		Description: "desc",
		Category:    "Software",
		Urgency:     model.ProblemUrgency("critical"),
	})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestSubmitProblemDuplicateTitleGetsDistinctSlug(t *testing.T) {
	env := newProblemEnv()

	first := env.submit(t, SubmitProblemRequest{Title: "Printer offline", Description: "a", Category: "Hardware"})
	second := env.submit(t, SubmitProblemRequest{Title: "Printer offline", Description: "b", Category: "Hardware"})

	assert.Equal(t, "printer-offline", first.Slug)
	assert.NotEqual(t, first.Slug, second.Slug)
}

func TestGetProblemDetailIncrementsViews(t *testing.T) {
	env := newProblemEnv()
	problem := env.submit(t, SubmitProblemRequest{Title: "Slow laptop", Description: "desc", Category: "Performance"})

	for i := 1; i <= 3; i++ {
		detail, err := env.service.GetProblemDetail(context.Background(), problem.ID)
		require.NoError(t, err)
		assert.Equal(t, i, detail.Views)
	}
}

func TestGetProblemDetailNotFound(t *testing.T) {
	env := newProblemEnv()

	_, err := env.service.GetProblemDetail(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestBrowseSearchMatchesTitleOrDescription(t *testing.T) {
	env := newProblemEnv()
	env.submit(t, SubmitProblemRequest{Title: "Fix WiFi dropouts", Description: "router", Category: "Network"})
	env.submit(t, SubmitProblemRequest{Title: "Printer offline", Description: "no wifi connection to printer", Category: "Hardware"})
	env.submit(t, SubmitProblemRequest{Title: "Blue screen", Description: "crashes on boot", Category: "Software"})

	problems, _, err := env.service.Browse(context.Background(), model.ProblemFilter{Search: "WIFI"})
	require.NoError(t, err)
	require.Len(t, problems, 2)
	for _, p := range problems {
		matched := strings.Contains(strings.ToLower(p.Title), "wifi") ||
			strings.Contains(strings.ToLower(p.Description), "wifi")
		assert.True(t, matched, "problem %q should match the search", p.Title)
	}
}

func TestBrowseUnsolvedNeverReturnsSolved(t *testing.T) {
	env := newProblemEnv()
	solved := env.submit(t, SubmitProblemRequest{Title: "Solved one", Description: "desc", Category: "Software"})
	env.submit(t, SubmitProblemRequest{Title: "Open one", Description: "desc", Category: "Software"})
	require.NoError(t, env.problemRepo.UpdateSolutionState(context.Background(), nil, solved.ID, 1, true))

	problems, _, err := env.service.Browse(context.Background(), model.ProblemFilter{Sort: model.SortUnsolved})
	require.NoError(t, err)
	require.Len(t, problems, 1)
	assert.False(t, problems[0].IsSolved)
	assert.Equal(t, "Open one", problems[0].Title)
}

func TestBrowseUnknownSortFallsBackToNewest(t *testing.T) {
	env := newProblemEnv()
	env.submit(t, SubmitProblemRequest{Title: "Older", Description: "desc", Category: "Software"})
	env.submit(t, SubmitProblemRequest{Title: "Newer", Description: "desc", Category: "Software"})

	problems, applied, err := env.service.Browse(context.Background(), model.ProblemFilter{Sort: model.ProblemSortMode("bogus")})
	require.NoError(t, err)
	assert.Equal(t, model.SortNewest, applied.Sort)
	require.Len(t, problems, 2)
	assert.Equal(t, "Newer", problems[0].Title)
}

func TestBrowseCategoryAndSearchCombine(t *testing.T) {
	env := newProblemEnv()
	env.submit(t, SubmitProblemRequest{Title: "WiFi slow", Description: "desc", Category: "Network"})
	env.submit(t, SubmitProblemRequest{Title: "WiFi printer", Description: "desc", Category: "Hardware"})

	problems, _, err := env.service.Browse(context.Background(), model.ProblemFilter{Search: "wifi", Category: "Network"})
	require.NoError(t, err)
	require.Len(t, problems, 1)
	assert.Equal(t, "WiFi slow", problems[0].Title)
}

func TestCategoriesSkipsEmpty(t *testing.T) {
	env := newProblemEnv()
	env.submit(t, SubmitProblemRequest{Title: "A", Description: "desc", Category: "Network"})
	env.submit(t, SubmitProblemRequest{Title: "B", Description: "desc", Category: "Hardware"})
	env.submit(t, SubmitProblemRequest{Title: "C", Description: "desc", Category: "Network"})

	categories, err := env.service.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Hardware", "Network"}, categories)
}

func TestRecentSolvedOnlyReturnsSolved(t *testing.T) {
	env := newProblemEnv()
	for i := 0; i < 6; i++ {
		p := env.submit(t, SubmitProblemRequest{Title: "Problem " + uuid.NewString()[:8], Description: "desc", Category: "Software"})
		if i%2 == 0 {
			require.NoError(t, env.problemRepo.UpdateSolutionState(context.Background(), nil, p.ID, 1, true))
		}
	}

	problems, err := env.service.RecentSolved(context.Background())
	require.NoError(t, err)
	require.Len(t, problems, 3)
	for _, p := range problems {
		assert.True(t, p.IsSolved)
	}
}
