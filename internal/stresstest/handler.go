package stresstest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/volition-os/volition-api/internal/config"
	"github.com/volition-os/volition-api/internal/goal"
	"github.com/volition-os/volition-api/internal/planner"
)

type Handler struct {
	service StressTestService
}

func NewHandler(service StressTestService) *Handler {
	return &Handler{service: service}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, goal.ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrInvalidAnswers), errors.Is(err, goal.ErrEmptyTitle):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, planner.ErrSchema), errors.Is(err, planner.ErrEmptyResponse):
		http.Error(w, "generation failed", http.StatusBadGateway)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	classification, err := h.service.Classify(r.Context(), req.Title)
	if err != nil {
		log.WithError(err).Warn("Goal classification failed")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, ClassifyResponse{Classification: classification})
}

func (h *Handler) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req QuestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	questions, err := h.service.GenerateQuestions(r.Context(), req.Title)
	if err != nil {
		log.WithError(err).Error("Failed to generate stress questions")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, questions)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.service.Submit(r.Context(), req)
	if err != nil {
		log.WithError(err).Warn("Stress test submission failed")
		writeServiceError(w, err)
		return
	}

	status := http.StatusOK
	if response.Goal != nil {
		status = http.StatusCreated
	}
	config.JSON(w, status, response)
}
