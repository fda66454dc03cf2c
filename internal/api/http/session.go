package http

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"

	authmw "github.com/mind-engage/sheetquiz/internal/auth/middleware"
	"github.com/mind-engage/sheetquiz/internal/quiz"
	"github.com/mind-engage/sheetquiz/internal/sheet"
	"github.com/mind-engage/sheetquiz/internal/store"
)

// Page holds the static text shown around every quiz page.
type Page struct {
	Title    string
	Subtitle string
}

// QuizHandlers serves one quiz.Session per browser session. Each request
// loads the session snapshot, applies one action and saves it back.
type QuizHandlers struct {
	Store     store.Store
	Reader    sheet.Reader
	Page      Page
	MaxUpload int64

	locks [64]sync.Mutex
}

func NewQuizHandlers(st store.Store, reader sheet.Reader, page Page, maxUpload int64) *QuizHandlers {
	return &QuizHandlers{Store: st, Reader: reader, Page: page, MaxUpload: maxUpload}
}

// lock serialises requests of the same session so concurrent actions cannot
// overwrite each other's snapshot.
func (h *QuizHandlers) lock(sid string) func() {
	f := fnv.New32a()
	_, _ = f.Write([]byte(sid))
	m := &h.locks[f.Sum32()%uint32(len(h.locks))]
	m.Lock()
	return m.Unlock
}

func (h *QuizHandlers) load(ctx context.Context) (*quiz.Session, error) {
	st, err := h.Store.Get(ctx, authmw.SessionIDFromContext(ctx))
	if errors.Is(err, store.ErrNotFound) {
		return quiz.NewSession(h.Reader), nil
	}
	if err != nil {
		return nil, err
	}
	return quiz.Restore(h.Reader, st), nil
}

// save writes the session back. A session back in the upload phase holds
// nothing worth keeping, so its snapshot is dropped.
func (h *QuizHandlers) save(ctx context.Context, s *quiz.Session) error {
	sid := authmw.SessionIDFromContext(ctx)
	if s.Phase() == quiz.PhaseUploading {
		return h.Store.Delete(ctx, sid)
	}
	return h.Store.Put(ctx, sid, s.State())
}
