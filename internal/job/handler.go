package job

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/volition-os/volition-api/internal/blueprint"
	"github.com/volition-os/volition-api/internal/config"
	"github.com/volition-os/volition-api/internal/goal"
	"github.com/volition-os/volition-api/internal/planner"
	util "github.com/volition-os/volition-api/internal/utils"
)

type Handler struct {
	service JobService
}

func NewHandler(service JobService) *Handler {
	return &Handler{service: service}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, goal.ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrJobNotFound),
		errors.Is(err, goal.ErrGoalNotFound),
		errors.Is(err, blueprint.ErrMilestoneNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, goal.ErrInvalidID),
		errors.Is(err, ErrEmptyReason),
		errors.Is(err, ErrInvalidEnergy):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrClustersExist),
		errors.Is(err, ErrStatusConflict),
		errors.Is(err, blueprint.ErrStatusConflict),
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

	clusters, err := h.service.GenerateForMilestone(r.Context(), chi.URLParam(r, "milestoneId"))
	if err != nil {
		log.WithError(err).Warn("Job generation failed")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusCreated, clusters)
}

func (h *Handler) DeleteClusters(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if err := h.service.DeleteClusters(r.Context(), chi.URLParam(r, "milestoneId")); err != nil {
		log.WithError(err).Warn("Failed to delete job clusters")
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Explorer(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	view, err := h.service.Explorer(r.Context(), chi.URLParam(r, "milestoneId"))
	if err != nil {
		log.WithError(err).Warn("Failed to load cluster explorer")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, view)
}

func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	energy := EnergyLevel(r.URL.Query().Get("energy"))
	jobs, err := h.service.Recommend(r.Context(), chi.URLParam(r, "goalId"), energy)
	if err != nil {
		log.WithError(err).Warn("Job recommendation failed")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, jobs)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, action string, fn func() (*JobView, error)) {
	log := config.WithContext(r.Context())

	view, err := fn()
	if err != nil {
		log.WithError(err).Warnf("Failed to %s job", action)
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, view)
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "start", func() (*JobView, error) {
		return h.service.Start(r.Context(), chi.URLParam(r, "jobId"))
	})
}

func (h *Handler) Pause(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "pause", func() (*JobView, error) {
		return h.service.Pause(r.Context(), chi.URLParam(r, "jobId"))
	})
}

func (h *Handler) Resume(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "resume", func() (*JobView, error) {
		return h.service.Resume(r.Context(), chi.URLParam(r, "jobId"))
	})
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "complete", func() (*JobView, error) {
		return h.service.Complete(r.Context(), chi.URLParam(r, "jobId"))
	})
}

func (h *Handler) MarkFailed(w http.ResponseWriter, r *http.Request) {
	var dto FailJobDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	h.transition(w, r, "fail", func() (*JobView, error) {
		return h.service.MarkFailed(r.Context(), chi.URLParam(r, "jobId"), dto.Reason)
	})
}

func (h *Handler) Retry(w http.ResponseWriter, r *http.Request) {
	var dto FailJobDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	h.transition(w, r, "retry", func() (*JobView, error) {
		return h.service.Retry(r.Context(), chi.URLParam(r, "jobId"), dto.Reason)
	})
}

func (h *Handler) Negotiate(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto FailJobDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.Negotiate(r.Context(), chi.URLParam(r, "jobId"), dto.Reason)
	if err != nil {
		log.WithError(err).Warn("Job negotiation failed")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, result)
}

func (h *Handler) MutatePreview(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto FailJobDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	draft, err := h.service.MutatePreview(r.Context(), chi.URLParam(r, "jobId"), dto.Reason)
	if err != nil {
		log.WithError(err).Warn("Job mutation preview failed")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, draft)
}

func (h *Handler) MutateConfirm(w http.ResponseWriter, r *http.Request) {
	var dto MutateConfirmDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	h.transition(w, r, "mutate", func() (*JobView, error) {
		return h.service.MutateConfirm(r.Context(), chi.URLParam(r, "jobId"), planner.JobDraft{
			Title:      dto.Title,
			Type:       dto.Type,
			EstMinutes: dto.EstMinutes,
		})
	})
}

func (h *Handler) SetDeadline(w http.ResponseWriter, r *http.Request) {
	var dto SetDeadlineDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	h.transition(w, r, "set deadline on", func() (*JobView, error) {
		return h.service.SetDeadline(r.Context(), chi.URLParam(r, "jobId"), util.ToTimePtr(dto.Deadline))
	})
}

func (h *Handler) GiveUp(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if err := h.service.GiveUp(r.Context(), chi.URLParam(r, "jobId")); err != nil {
		log.WithError(err).Warn("Failed to give up goal from job")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{"message": "goal archived"})
}
