package trial

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/volition-os/volition-api/internal/config"
	"github.com/volition-os/volition-api/internal/goal"
)

type Handler struct {
	service TrialService
}

func NewHandler(service TrialService) *Handler {
	return &Handler{service: service}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, goal.ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, goal.ErrGoalNotFound), errors.Is(err, ErrTrialTaskNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, goal.ErrInvalidID):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotActiveTask),
		errors.Is(err, ErrTrialExists),
		errors.Is(err, goal.ErrStatusConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrNoActiveTask):
		http.Error(w, err.Error(), http.StatusInternalServerError)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	plan, err := h.service.GetPlan(r.Context(), chi.URLParam(r, "goalId"))
	if err != nil {
		log.WithError(err).Warn("Failed to load trial plan")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, plan)
}

func (h *Handler) MarkDone(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	plan, err := h.service.MarkDone(r.Context(), chi.URLParam(r, "goalId"), chi.URLParam(r, "taskId"))
	if err != nil {
		log.WithError(err).Warn("Failed to complete trial task")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, plan)
}

func (h *Handler) GiveUp(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if err := h.service.GiveUp(r.Context(), chi.URLParam(r, "goalId")); err != nil {
		log.WithError(err).Warn("Failed to give up trial")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{"message": "goal archived"})
}
