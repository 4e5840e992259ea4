package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"techfix/internal/app/service"
	"techfix/internal/common/security"
	"techfix/internal/domain/model"
	"techfix/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	config.AppConfig = &config.Config{
		JWTKey: []byte("test-secret"),
		JWTExp: time.Hour,
	}
	security.InitJWT()
	os.Exit(m.Run())
}

// stubProblemRepo serves the public browse route; everything else on the
// interface is unreachable from these tests.
type stubProblemRepo struct {
	problems []model.Problem
	created  int
}

func (r *stubProblemRepo) CreateProblem(ctx context.Context, p *model.Problem) error {
	r.created++
	r.problems = append(r.problems, *p)
	return nil
}

func (r *stubProblemRepo) FindProblemByID(ctx context.Context, id string) (*model.Problem, error) {
	for i := range r.problems {
		if r.problems[i].ID == id {
			return &r.problems[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *stubProblemRepo) FindProblemBySlug(ctx context.Context, slug string) (*model.Problem, error) {
	return nil, sql.ErrNoRows
}

func (r *stubProblemRepo) ListProblems(ctx context.Context, filter model.ProblemFilter) ([]model.Problem, error) {
	return r.problems, nil
}

func (r *stubProblemRepo) ListProblemsByUserID(ctx context.Context, userID string) ([]model.Problem, error) {
	return nil, nil
}

func (r *stubProblemRepo) RecentSolved(ctx context.Context, limit int) ([]model.Problem, error) {
	return nil, nil
}

func (r *stubProblemRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	return []string{"Network"}, nil
}

func (r *stubProblemRepo) IncrementViews(ctx context.Context, id string) error { return nil }

func (r *stubProblemRepo) UpdateSolutionState(ctx context.Context, tx *sql.Tx, problemID string, solutionCount int, isSolved bool) error {
	return nil
}

func newTestRouter(problemRepo *stubProblemRepo) http.Handler {
	problemService := service.NewProblemService(problemRepo, nil)
	solutionService := service.NewSolutionService(nil, problemRepo, nil, nil, nil, nil)
	return NewRouter(nil, problemService, solutionService, nil)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(&stubProblemRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnauthenticatedMutationsRejected(t *testing.T) {
	repo := &stubProblemRepo{}
	router := newTestRouter(repo)

	requests := []*http.Request{
		httptest.NewRequest(http.MethodPost, "/api/v1/problems", strings.NewReader(`{"title":"t"}`)),
		httptest.NewRequest(http.MethodPost, "/api/v1/problems/abc/solutions", strings.NewReader(`{"steps":"s"}`)),
		httptest.NewRequest(http.MethodPost, "/api/v1/problems/abc/solutions/quick", strings.NewReader(`{"steps":"s"}`)),
		httptest.NewRequest(http.MethodPost, "/api/v1/solutions/abc/upvote", nil),
		httptest.NewRequest(http.MethodPost, "/api/v1/solutions/abc/downvote", nil),
	}
	for _, req := range requests {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", req.Method, req.URL.Path)
	}
	// Rejected before any store access.
	assert.Zero(t, repo.created)
}

func TestBrowseUnknownSortReportedAsNewest(t *testing.T) {
	router := newTestRouter(&stubProblemRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/problems?sort=bogus&search=+wifi+", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Sort   string `json:"sort"`
		Search string `json:"search"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "newest", body.Sort)
	assert.Equal(t, "wifi", body.Search)
}

func TestSubmitProblemWithTokenSucceeds(t *testing.T) {
	repo := &stubProblemRepo{}
	router := newTestRouter(repo)

	token, err := security.GenerateToken("user-1", "alice")
	require.NoError(t, err)

	payload := `{"title":"Printer offline","description":"It shows offline.","category":"Hardware"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/problems", strings.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, repo.created)
}
