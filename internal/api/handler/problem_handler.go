package handler

import (
	"encoding/json"
	"net/http"
	"techfix/internal/api/middleware"
	"techfix/internal/app/service"
	"techfix/internal/common"
	"techfix/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type ProblemHandler struct {
	problemService *service.ProblemService
}

func NewProblemHandler(ps *service.ProblemService) *ProblemHandler {
	return &ProblemHandler{problemService: ps}
}

func (h *ProblemHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.browse)                // GET /api/v1/problems
	r.Get("/categories", h.categories)  // GET /api/v1/problems/categories
	r.Get("/recent", h.recentSolved)    // GET /api/v1/problems/recent
	r.Get("/{problemID}", h.getProblem) // GET /api/v1/problems/{id}

	r.Group(func(authRouter chi.Router) {
		authRouter.Use(middleware.Authenticator)
		authRouter.Post("/", h.submitProblem) // POST /api/v1/problems
	})
}

func (h *ProblemHandler) submitProblem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.SubmitProblemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	problem, err := h.problemService.SubmitProblem(r.Context(), userID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	type submitResponse struct {
		Problem *model.Problem `json:"problem"`
		Flash   common.Flash   `json:"flash"`
	}
	common.RespondWithJSON(w, http.StatusCreated, submitResponse{
		Problem: problem,
		Flash:   common.Flash{Message: "Problem submitted successfully!", Category: common.FlashSuccess},
	})
}

func (h *ProblemHandler) browse(w http.ResponseWriter, r *http.Request) {
	filter := model.ProblemFilter{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
		Sort:     model.ProblemSortMode(r.URL.Query().Get("sort")),
	}

	problems, applied, err := h.problemService.Browse(r.Context(), filter)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	type browseResponse struct {
		Problems []model.Problem `json:"problems"`
		Search   string          `json:"search"`
		Category string          `json:"category"`
		Sort     string          `json:"sort"`
	}
	common.RespondWithJSON(w, http.StatusOK, browseResponse{
		Problems: problems,
		Search:   applied.Search,
		Category: applied.Category,
		Sort:     string(applied.Sort),
	})
}

func (h *ProblemHandler) categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.problemService.Categories(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	type categoriesResponse struct {
		Categories []string `json:"categories"`
	}
	common.RespondWithJSON(w, http.StatusOK, categoriesResponse{Categories: categories})
}

func (h *ProblemHandler) recentSolved(w http.ResponseWriter, r *http.Request) {
	problems, err := h.problemService.RecentSolved(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	type recentResponse struct {
		Problems []model.Problem `json:"problems"`
	}
	common.RespondWithJSON(w, http.StatusOK, recentResponse{Problems: problems})
}

func (h *ProblemHandler) getProblem(w http.ResponseWriter, r *http.Request) {
	problemID := chi.URLParam(r, "problemID")

	problem, err := h.problemService.GetProblemDetail(r.Context(), problemID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, problem)
}
