package goal

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/scoping", h.BeginScoping)
	r.Put("/{id}/scope", h.SubmitScope)
	r.Post("/{id}/archive", h.Archive)
	r.Delete("/{id}", h.Delete)

	return r
}
