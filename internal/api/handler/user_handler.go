package handler

import (
	"net/http"
	"techfix/internal/api/middleware"
	"techfix/internal/app/service"
	"techfix/internal/common"
	"techfix/internal/domain/model"
	"techfix/internal/platform/config"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(us *service.UserService) *UserHandler {
	return &UserHandler{userService: us}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{username}", h.getProfile) // GET /api/v1/users/{username}

	r.Group(func(authRouter chi.Router) {
		authRouter.Use(middleware.Authenticator)
		authRouter.Post("/me/avatar", h.uploadProfilePic) // POST /api/v1/users/me/avatar
	})
}

func (h *UserHandler) getProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	profile, err := h.userService.GetProfile(r.Context(), username)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, profile)
}

func (h *UserHandler) uploadProfilePic(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	maxSize := config.AppConfig.MaxUploadSizeBytes
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)
	if err := r.ParseMultipartForm(maxSize); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "File too large or invalid form (max 2 MB)")
		return
	}

	file, header, err := r.FormFile("profile_pic")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "No file selected")
		return
	}
	defer file.Close()

	user, err := h.userService.UpdateProfilePic(r.Context(), userID, header.Filename, file)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	type avatarResponse struct {
		User  *model.User  `json:"user"`
		Flash common.Flash `json:"flash"`
	}
	common.RespondWithJSON(w, http.StatusOK, avatarResponse{
		User:  user,
		Flash: common.Flash{Message: "Profile picture updated successfully!", Category: common.FlashSuccess},
	})
}
