package handler

import (
	"encoding/json"
	"net/http"
	"techfix/internal/app/service"
	"techfix/internal/common"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(as *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/signup", h.signup) // POST /api/v1/auth/signup
	r.Post("/auth/login", h.login)   // POST /api/v1/auth/login
}

type authResult struct {
	*service.AuthResponse
	Flash common.Flash `json:"flash"`
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	resp, err := h.authService.Signup(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, authResult{
		AuthResponse: resp,
		Flash:        common.Flash{Message: "Registration successful! Welcome to TechFix!", Category: common.FlashSuccess},
	})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, authResult{
		AuthResponse: resp,
		Flash:        common.Flash{Message: "Welcome back, " + resp.User.Username + "!", Category: common.FlashSuccess},
	})
}
