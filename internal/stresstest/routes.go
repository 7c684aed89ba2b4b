package stresstest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/classify", h.Classify)
	r.Post("/questions", h.GenerateQuestions)
	r.Post("/submit", h.Submit)

	return r
}
