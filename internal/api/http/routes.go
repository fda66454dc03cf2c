package http

import (
	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/sheetquiz/internal/storage"
)

// Routes mounts the quiz pages, actions and JSON view. Callers install the
// session middleware in front of it.
func Routes(r chi.Router, h *QuizHandlers, bs storage.BlobStore) {
	r.Get("/", h.PageHandler())
	r.Post("/upload", h.UploadHandler())
	r.Post("/answer", h.AnswerHandler())
	r.Post("/student", h.StudentInfoHandler())
	r.Post("/next", h.NextHandler())
	r.Post("/previous", h.PreviousHandler())
	r.Post("/jump", h.JumpHandler())
	r.Post("/submit", h.SubmitHandler())
	r.Post("/reset", h.ResetHandler())
	r.Get("/api/session", h.GetSessionHandler())

	if bs != nil {
		r.Route("/assets", func(ar chi.Router) {
			MountAssets(ar, bs)
		})
	}
}
