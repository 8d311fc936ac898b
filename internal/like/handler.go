package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"artifactvault/internal/artifact/model"
	artifactrepo "artifactvault/internal/artifact/repository"
	"artifactvault/internal/like/service"
	"artifactvault/pkg/logger"
	"artifactvault/pkg/respond"

	"github.com/go-chi/chi/v5"
)

type LikeHandler struct {
	Service *service.LikeService
}

func NewLikeHandler(service *service.LikeService) *LikeHandler {
	return &LikeHandler{Service: service}
}

func (h *LikeHandler) Status(w http.ResponseWriter, r *http.Request) {
	artifactID := chi.URLParam(r, "id")
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		respond.Error(w, http.StatusBadRequest, "userId query parameter is required")
		return
	}

	liked, err := h.Service.Status(r.Context(), artifactID, userID)
	if err != nil {
		logger.Sugar.Errorf("Error checking like status: %v", err)
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, model.LikeStatusResponse{Liked: liked})
}

func (h *LikeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	artifactID := chi.URLParam(r, "id")

	var req model.ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		respond.Error(w, http.StatusBadRequest, "userId is required")
		return
	}

	liked, _, err := h.Service.Toggle(r.Context(), artifactID, req.UserID)
	if errors.Is(err, artifactrepo.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "artifact not found")
		return
	}
	if err != nil {
		logger.Sugar.Errorf("Error toggling like: %v", err)
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, model.LikeStatusResponse{Liked: liked})
}

func (h *LikeHandler) LikedArtifacts(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	artifacts, err := h.Service.ListLiked(r.Context(), userID)
	if err != nil {
		logger.Sugar.Errorf("Error fetching liked artifacts for %s: %v", userID, err)
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, artifacts)
}
