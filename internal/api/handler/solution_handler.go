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

type SolutionHandler struct {
	solutionService *service.SolutionService
}

func NewSolutionHandler(ss *service.SolutionService) *SolutionHandler {
	return &SolutionHandler{solutionService: ss}
}

// RegisterProblemRoutes mounts the solution-creation endpoints under a
// problem. Both paths require authentication and share one service entry
// point.
func (h *SolutionHandler) RegisterProblemRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Post("/", h.addSolution)        // POST /api/v1/problems/{id}/solutions
	r.Post("/quick", h.quickSolution) // POST /api/v1/problems/{id}/solutions/quick
}

// RegisterRoutes mounts the voting endpoints.
func (h *SolutionHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Post("/{solutionID}/upvote", h.upvote)     // POST /api/v1/solutions/{id}/upvote
	r.Post("/{solutionID}/downvote", h.downvote) // POST /api/v1/solutions/{id}/downvote
}

type solutionResult struct {
	Solution *model.Solution `json:"solution"`
	Flash    common.Flash    `json:"flash"`
}

func (h *SolutionHandler) addSolution(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	problemID := chi.URLParam(r, "problemID")

	var req service.CreateSolutionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	solution, err := h.solutionService.CreateSolution(r.Context(), userID, problemID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, solutionResult{
		Solution: solution,
		Flash:    common.Flash{Message: "Solution added successfully!", Category: common.FlashSuccess},
	})
}

// quickSolution is the comment-style path: steps only, title always derived
// from the author.
func (h *SolutionHandler) quickSolution(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	problemID := chi.URLParam(r, "problemID")

	var body struct {
		Steps         string                   `json:"steps"`
		Difficulty    model.SolutionDifficulty `json:"difficulty"`
		EstimatedTime string                   `json:"estimated_time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	solution, err := h.solutionService.CreateSolution(r.Context(), userID, problemID, service.CreateSolutionRequest{
		Steps:         body.Steps,
		Difficulty:    body.Difficulty,
		EstimatedTime: body.EstimatedTime,
	})
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, solutionResult{
		Solution: solution,
		Flash:    common.Flash{Message: "Your solution has been posted!", Category: common.FlashSuccess},
	})
}

func (h *SolutionHandler) upvote(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, model.VoteUp, "Thanks for your vote!", common.FlashSuccess)
}

func (h *SolutionHandler) downvote(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, model.VoteDown, "Vote recorded.", common.FlashInfo)
}

func (h *SolutionHandler) vote(w http.ResponseWriter, r *http.Request, value model.VoteValue, message, category string) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	solutionID := chi.URLParam(r, "solutionID")

	solution, err := h.solutionService.Vote(r.Context(), userID, solutionID, value)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, solutionResult{
		Solution: solution,
		Flash:    common.Flash{Message: message, Category: category},
	})
}
