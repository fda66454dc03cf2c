package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"strconv"
	"strings"

	authmw "github.com/mind-engage/sheetquiz/internal/auth/middleware"
	"github.com/mind-engage/sheetquiz/internal/quiz"
	"github.com/mind-engage/sheetquiz/internal/sheet"
)

var errBadInput = errors.New("bad input")

// actionInput is the union of fields any action accepts, from a form post or
// a JSON body.
type actionInput struct {
	QuestionID string  `json:"question_id"`
	Answer     string  `json:"answer"`
	Index      *int    `json:"index"`
	Name       *string `json:"name"`
	Date       *string `json:"date"`
	Period     *string `json:"period"`
}

func parseInput(r *http.Request) (actionInput, error) {
	var in actionInput
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil && !errors.Is(err, io.EOF) {
			return in, fmt.Errorf("bad json: %w", errBadInput)
		}
		return in, nil
	}
	if err := r.ParseForm(); err != nil {
		return in, fmt.Errorf("bad form: %w", errBadInput)
	}
	in.QuestionID = r.PostForm.Get("question_id")
	in.Answer = r.PostForm.Get("answer")
	if v := r.PostForm.Get("index"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return in, fmt.Errorf("index %q: %w", v, errBadInput)
		}
		in.Index = &i
	}
	field := func(k string) *string {
		if _, ok := r.PostForm[k]; !ok {
			return nil
		}
		v := r.PostForm.Get(k)
		return &v
	}
	in.Name, in.Date, in.Period = field("name"), field("date"), field("period")
	return in, nil
}

// applyPending stores what the test page form carries along with every
// navigation button: the selected option and, on the first question, the
// student fields.
func applyPending(s *quiz.Session, in actionInput) error {
	if in.QuestionID != "" && in.Answer != "" {
		if err := s.SetAnswer(in.QuestionID, quiz.Letter(in.Answer)); err != nil {
			return err
		}
	}
	fields := []struct {
		f quiz.StudentField
		v *string
	}{{quiz.FieldName, in.Name}, {quiz.FieldDate, in.Date}, {quiz.FieldPeriod, in.Period}}
	for _, f := range fields {
		if f.v == nil {
			continue
		}
		if err := s.SetStudentInfo(f.f, strings.TrimSpace(*f.v)); err != nil {
			return err
		}
	}
	return nil
}

type actionFunc func(r *http.Request, s *quiz.Session) error

// action wraps one state transition: load, apply, save, respond. A failed
// transition is not saved, so the stored session stays as it was.
func (h *QuizHandlers) action(name string, fn actionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sid := authmw.SessionIDFromContext(ctx)
		defer h.lock(sid)()

		sess, err := h.load(ctx)
		if err != nil {
			log.Printf("session %s: load: %v", sid, err)
			http.Error(w, "session unavailable", http.StatusInternalServerError)
			return
		}

		if err := fn(r, sess); err != nil {
			status, msg := classify(err)
			log.Printf("session %s: %s: %v", sid, name, err)
			if status >= 500 {
				http.Error(w, msg, status)
				return
			}
			// rejected actions leave the session untouched; show it again
			if fresh, lerr := h.load(ctx); lerr == nil {
				sess = fresh
			}
			if status == http.StatusConflict && !wantsJSON(r) {
				redirectHome(w, r)
				return
			}
			h.respond(w, r, sess, status, msg)
			return
		}

		if err := h.save(ctx, sess); err != nil {
			log.Printf("session %s: save after %s: %v", sid, name, err)
			http.Error(w, "session unavailable", http.StatusInternalServerError)
			return
		}
		if wantsJSON(r) {
			h.respond(w, r, sess, http.StatusOK, "")
			return
		}
		redirectHome(w, r)
	}
}

// classify maps an action error to a status and a user-facing message.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, quiz.ErrNoQuestions):
		return http.StatusUnprocessableEntity, "The file has no question rows."
	case errors.Is(err, sheet.ErrDecode):
		return http.StatusUnprocessableEntity, "Error reading file. Please ensure it is a valid Excel or CSV file."
	case errors.Is(err, errTooLarge):
		return http.StatusRequestEntityTooLarge, "The file is too large."
	case errors.Is(err, errBadInput), errors.Is(err, quiz.ErrInvalidLetter), errors.Is(err, quiz.ErrUnknownField):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, quiz.ErrInvalidTransition), errors.Is(err, quiz.ErrOutOfRange):
		return http.StatusConflict, err.Error()
	}
	return http.StatusInternalServerError, "internal error"
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// POST /answer  question_id, answer
func (h *QuizHandlers) AnswerHandler() http.HandlerFunc {
	return h.action("answer", func(r *http.Request, s *quiz.Session) error {
		in, err := parseInput(r)
		if err != nil {
			return err
		}
		if in.QuestionID == "" || in.Answer == "" {
			return fmt.Errorf("question_id and answer required: %w", errBadInput)
		}
		return s.SetAnswer(in.QuestionID, quiz.Letter(in.Answer))
	})
}

// POST /student  name, date, period
func (h *QuizHandlers) StudentInfoHandler() http.HandlerFunc {
	return h.action("student", func(r *http.Request, s *quiz.Session) error {
		in, err := parseInput(r)
		if err != nil {
			return err
		}
		in.QuestionID, in.Answer = "", ""
		return applyPending(s, in)
	})
}

// navigate builds the handlers of the test page buttons; each first keeps
// the pending form values.
func (h *QuizHandlers) navigate(name string, step func(s *quiz.Session, in actionInput) error) http.HandlerFunc {
	return h.action(name, func(r *http.Request, s *quiz.Session) error {
		in, err := parseInput(r)
		if err != nil {
			return err
		}
		if err := applyPending(s, in); err != nil {
			return err
		}
		return step(s, in)
	})
}

// POST /next
func (h *QuizHandlers) NextHandler() http.HandlerFunc {
	return h.navigate("next", func(s *quiz.Session, _ actionInput) error { return s.GoNext() })
}

// POST /previous
func (h *QuizHandlers) PreviousHandler() http.HandlerFunc {
	return h.navigate("previous", func(s *quiz.Session, _ actionInput) error { return s.GoPrevious() })
}

// POST /jump  index (0-based)
func (h *QuizHandlers) JumpHandler() http.HandlerFunc {
	return h.navigate("jump", func(s *quiz.Session, in actionInput) error {
		if in.Index == nil {
			return fmt.Errorf("index required: %w", errBadInput)
		}
		return s.JumpTo(*in.Index)
	})
}

// POST /submit
func (h *QuizHandlers) SubmitHandler() http.HandlerFunc {
	return h.navigate("submit", func(s *quiz.Session, _ actionInput) error { return s.Submit() })
}

// POST /reset
func (h *QuizHandlers) ResetHandler() http.HandlerFunc {
	return h.action("reset", func(_ *http.Request, s *quiz.Session) error {
		s.Reset()
		return nil
	})
}

// GET /
func (h *QuizHandlers) PageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := h.load(r.Context())
		if err != nil {
			log.Printf("session %s: load: %v", authmw.SessionIDFromContext(r.Context()), err)
			http.Error(w, "session unavailable", http.StatusInternalServerError)
			return
		}
		h.render(w, sess, http.StatusOK, "")
	}
}

// GET /api/session
func (h *QuizHandlers) GetSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := h.load(r.Context())
		if err != nil {
			log.Printf("session %s: load: %v", authmw.SessionIDFromContext(r.Context()), err)
			http.Error(w, "session unavailable", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{View: sess.View()})
	}
}

type sessionResponse struct {
	quiz.View
	Error string `json:"error,omitempty"`
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func (h *QuizHandlers) respond(w http.ResponseWriter, r *http.Request, s *quiz.Session, status int, msg string) {
	if wantsJSON(r) {
		writeJSON(w, status, sessionResponse{View: s.View(), Error: msg})
		return
	}
	h.render(w, s, status, msg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
