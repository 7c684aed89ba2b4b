package trial

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/{goalId}", h.GetPlan)
	r.Post("/{goalId}/tasks/{taskId}/done", h.MarkDone)
	r.Post("/{goalId}/give-up", h.GiveUp)

	return r
}
