package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/mind-engage/sheetquiz/internal/quiz"
)

var errTooLarge = errors.New("upload too large")

// POST /upload (multipart: file=quiz.xlsx)
func (h *QuizHandlers) UploadHandler() http.HandlerFunc {
	return h.action("upload", func(r *http.Request, s *quiz.Session) error {
		data, name, err := h.readUpload(r)
		if err != nil {
			return err
		}
		return s.LoadFile(r.Context(), data, name)
	})
}

func (h *QuizHandlers) readUpload(r *http.Request) ([]byte, string, error) {
	limit := h.MaxUpload
	if limit <= 0 {
		limit = 10 << 20
	}
	r.Body = http.MaxBytesReader(nil, r.Body, limit+1<<20) // room for multipart framing

	f, hdr, err := r.FormFile("file")
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, "", errTooLarge
		}
		return nil, "", fmt.Errorf("file required: %w", errBadInput)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, "", err
	}
	if int64(len(data)) > limit {
		return nil, "", errTooLarge
	}
	return data, filepath.Base(hdr.Filename), nil
}
