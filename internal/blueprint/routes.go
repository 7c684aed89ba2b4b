package blueprint

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/{goalId}/generate", h.Generate)
	r.Get("/{goalId}", h.GetTree)
	r.Post("/{goalId}/milestones/{milestoneId}/activate", h.SetActiveMilestone)
	r.Post("/{goalId}/milestones/{milestoneId}/sync", h.SyncMilestone)
	r.Post("/{goalId}/milestones/{milestoneId}/confirm-verification", h.ConfirmVerification)

	return r
}
