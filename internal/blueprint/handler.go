package blueprint

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/volition-os/volition-api/internal/config"
	"github.com/volition-os/volition-api/internal/goal"
	"github.com/volition-os/volition-api/internal/planner"
)

type Handler struct {
	service BlueprintService
}

func NewHandler(service BlueprintService) *Handler {
	return &Handler{service: service}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, goal.ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, goal.ErrGoalNotFound), errors.Is(err, ErrMilestoneNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, goal.ErrInvalidID):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrBlueprintExists),
		errors.Is(err, ErrStatusConflict),
		errors.Is(err, goal.ErrStatusConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, planner.ErrSchema), errors.Is(err, planner.ErrEmptyResponse):
		http.Error(w, "generation failed", http.StatusBadGateway)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	tree, err := h.service.Generate(r.Context(), chi.URLParam(r, "goalId"))
	if err != nil {
		log.WithError(err).Warn("Blueprint generation failed")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusCreated, tree)
}

func (h *Handler) GetTree(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	tree, err := h.service.GetTree(r.Context(), chi.URLParam(r, "goalId"))
	if err != nil {
		log.WithError(err).Warn("Failed to load blueprint")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, tree)
}

func (h *Handler) SetActiveMilestone(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	err := h.service.SetActiveMilestone(r.Context(), chi.URLParam(r, "goalId"), chi.URLParam(r, "milestoneId"))
	if err != nil {
		log.WithError(err).Warn("Failed to set active milestone")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{"message": "milestone activated"})
}

func (h *Handler) SyncMilestone(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	m, err := h.service.SyncMilestoneStatusIfNeeded(r.Context(), chi.URLParam(r, "goalId"), chi.URLParam(r, "milestoneId"))
	if err != nil {
		log.WithError(err).Warn("Milestone sync failed")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, m)
}

func (h *Handler) ConfirmVerification(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	m, err := h.service.ConfirmMilestoneVerification(r.Context(), chi.URLParam(r, "goalId"), chi.URLParam(r, "milestoneId"))
	if err != nil {
		log.WithError(err).Warn("Milestone verification failed")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, m)
}
