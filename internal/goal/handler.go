package goal

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/volition-os/volition-api/internal/config"
)

type Handler struct {
	service GoalService
}

func NewHandler(service GoalService) *Handler {
	return &Handler{service: service}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrGoalNotFound):
		http.Error(w, "goal not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrEmptyTitle),
		errors.Is(err, ErrInvalidScope),
		errors.Is(err, ErrInvalidComplexity):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrStatusConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	goals, err := h.service.FindAllByUser(r.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list goals")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, goals)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	g, err := h.service.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		log.WithError(err).Warn("Failed to get goal")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, g)
}

func (h *Handler) BeginScoping(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	g, err := h.service.BeginScoping(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		log.WithError(err).Warn("Failed to begin scoping")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, g)
}

func (h *Handler) SubmitScope(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto SubmitScopeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	g, err := h.service.SubmitScope(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		log.WithError(err).Warn("Failed to submit scope")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, g)
}

func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	g, err := h.service.Archive(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		log.WithError(err).Warn("Failed to archive goal")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, g)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if err := h.service.DeleteByID(r.Context(), chi.URLParam(r, "id")); err != nil {
		log.WithError(err).Warn("Failed to delete goal")
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
