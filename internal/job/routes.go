package job

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/milestones/{milestoneId}/generate", h.Generate)
	r.Get("/milestones/{milestoneId}/clusters", h.Explorer)
	r.Delete("/milestones/{milestoneId}/clusters", h.DeleteClusters)
	r.Get("/goals/{goalId}/recommended", h.Recommend)

	r.Route("/{jobId}", func(r chi.Router) {
		r.Post("/start", h.Start)
		r.Post("/pause", h.Pause)
		r.Post("/resume", h.Resume)
		r.Post("/complete", h.Complete)
		r.Put("/deadline", h.SetDeadline)

		r.Post("/fail", h.MarkFailed)
		r.Post("/retry", h.Retry)
		r.Post("/negotiate", h.Negotiate)
		r.Post("/mutate/preview", h.MutatePreview)
		r.Post("/mutate/confirm", h.MutateConfirm)
		r.Post("/give-up", h.GiveUp)
	})

	return r
}
