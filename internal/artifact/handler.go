package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"artifactvault/internal/artifact/model"
	"artifactvault/internal/artifact/repository"
	"artifactvault/internal/artifact/service"
	"artifactvault/middleware"
	"artifactvault/pkg/logger"
	"artifactvault/pkg/respond"

	"github.com/go-chi/chi/v5"
)

type ArtifactHandler struct {
	Service *service.ArtifactService
}

func NewArtifactHandler(service *service.ArtifactService) *ArtifactHandler {
	return &ArtifactHandler{Service: service}
}

func (h *ArtifactHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	artifacts, err := h.Service.ListAll(r.Context())
	if err != nil {
		logger.Sugar.Errorf("Error fetching artifacts: %v", err)
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, artifacts)
}

func (h *ArtifactHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	artifact, err := h.Service.Get(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "artifact not found")
		return
	}
	if err != nil {
		logger.Sugar.Errorf("Error fetching artifact %s: %v", id, err)
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, artifact)
}

func (h *ArtifactHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// The submitted fields are stored verbatim, but the payload must at
	// least be a JSON object.
	var fields map[string]interface{}
	if err := json.Unmarshal(body, &fields); err != nil {
		respond.Error(w, http.StatusBadRequest, "request body must be a JSON object")
		return
	}

	id, err := h.Service.Create(r.Context(), body)
	if err != nil {
		logger.Sugar.Errorf("Error creating artifact: %v", err)
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, model.CreateResponse{Success: true, InsertedID: id})
}

func (h *ArtifactHandler) MyArtifacts(w http.ResponseWriter, r *http.Request) {
	claim, ok := middleware.ClaimFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	artifacts, err := h.Service.ListByOwner(r.Context(), claim.Email)
	if err != nil {
		logger.Sugar.Errorf("Error fetching artifacts for %s: %v", claim.Email, err)
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, model.OwnedListResponse{Success: true, Artifacts: artifacts})
}

func (h *ArtifactHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	claim, ok := middleware.ClaimFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	var patch map[string]interface{}
	if err := json.Unmarshal(body, &patch); err != nil {
		respond.Error(w, http.StatusBadRequest, "request body must be a JSON object")
		return
	}

	updated, err := h.Service.UpdateOwned(r.Context(), id, claim.Email, body)
	if errors.Is(err, repository.ErrForbidden) {
		respond.Error(w, http.StatusForbidden, "forbidden: you do not own this artifact")
		return
	}
	if err != nil {
		logger.Sugar.Errorf("Error updating artifact %s: %v", id, err)
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, model.MutationResponse{
		Success: true,
		Message: "artifact updated",
		Result:  updated,
	})
}

func (h *ArtifactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	claim, ok := middleware.ClaimFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	err := h.Service.DeleteOwned(r.Context(), id, claim.Email)
	if errors.Is(err, repository.ErrForbidden) {
		respond.Error(w, http.StatusForbidden, "forbidden: you do not own this artifact")
		return
	}
	if err != nil {
		logger.Sugar.Errorf("Error deleting artifact %s: %v", id, err)
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, model.MutationResponse{
		Success: true,
		Message: "artifact deleted",
		Result:  map[string]int{"deletedCount": 1},
	})
}
