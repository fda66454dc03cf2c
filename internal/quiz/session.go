package quiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/mind-engage/sheetquiz/internal/sheet"
)

var (
	ErrInvalidTransition = errors.New("action not allowed in current phase")
	ErrInvalidLetter     = errors.New("answer must be one of A, B, C, D")
	ErrOutOfRange        = errors.New("question index out of range")
	ErrUnknownField      = errors.New("unknown student field")
	ErrNoQuestions       = errors.New("spreadsheet has no question rows")
)

// Session is the state machine of one quiz attempt. It is not safe for
// concurrent use; callers own one Session per attempt.
type Session struct {
	reader sheet.Reader
	state  State
}

func NewSession(reader sheet.Reader) *Session {
	return &Session{reader: reader, state: newState()}
}

// Restore rebuilds a Session from a previously saved State. The session works
// on its own copy of st.
func Restore(reader sheet.Reader, st State) *Session {
	s := &Session{reader: reader, state: st.clone()}
	if s.state.Phase != PhaseUploading && len(s.state.Questions) == 0 {
		s.state = newState()
	}
	s.state.CurrentIndex = s.clamp(s.state.CurrentIndex)
	return s
}

// State returns a copy of the current state.
func (s *Session) State() State { return s.state.clone() }

func (s *Session) Phase() Phase { return s.state.Phase }

func (s *Session) guard(allowed Phase, action string) error {
	if s.state.Phase != allowed {
		return fmt.Errorf("%s while %s: %w", action, s.state.Phase, ErrInvalidTransition)
	}
	return nil
}

// LoadFile decodes data and starts a fresh attempt over its rows. It is
// allowed from any phase. State changes only once decoding has succeeded, so
// an abandoned or failed load leaves the session as it was.
func (s *Session) LoadFile(ctx context.Context, data []byte, fileName string) error {
	rows, err := s.reader.Read(ctx, fileName, data)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(rows) == 0 {
		return &sheet.DecodeError{Name: fileName, Err: ErrNoQuestions}
	}
	questions := BuildQuestions(rows)

	s.state = newState()
	s.state.Questions = questions
	s.state.SourceFileName = fileName
	s.state.Phase = PhaseInProgress
	return nil
}

func (s *Session) SetAnswer(questionID string, letter Letter) error {
	if err := s.guard(PhaseInProgress, "answer"); err != nil {
		return err
	}
	if !letter.Valid() {
		return fmt.Errorf("%q: %w", letter, ErrInvalidLetter)
	}
	s.state.Answers[questionID] = letter
	return nil
}

func (s *Session) GoNext() error {
	if err := s.guard(PhaseInProgress, "next"); err != nil {
		return err
	}
	s.state.CurrentIndex = s.clamp(s.state.CurrentIndex + 1)
	return nil
}

func (s *Session) GoPrevious() error {
	if err := s.guard(PhaseInProgress, "previous"); err != nil {
		return err
	}
	s.state.CurrentIndex = s.clamp(s.state.CurrentIndex - 1)
	return nil
}

func (s *Session) JumpTo(index int) error {
	if err := s.guard(PhaseInProgress, "jump"); err != nil {
		return err
	}
	if index < 0 || index >= len(s.state.Questions) {
		return fmt.Errorf("jump to %d of %d: %w", index, len(s.state.Questions), ErrOutOfRange)
	}
	s.state.CurrentIndex = index
	return nil
}

// SetStudentInfo updates one student field. Student details are only
// editable on the first question.
func (s *Session) SetStudentInfo(field StudentField, v string) error {
	if err := s.guard(PhaseInProgress, "edit student info"); err != nil {
		return err
	}
	if s.state.CurrentIndex != 0 {
		return fmt.Errorf("edit student info on question %d: %w", s.state.CurrentIndex+1, ErrInvalidTransition)
	}
	switch field {
	case FieldName:
		s.state.Student.Name = v
	case FieldDate:
		s.state.Student.Date = v
	case FieldPeriod:
		s.state.Student.Period = v
	default:
		return fmt.Errorf("%q: %w", field, ErrUnknownField)
	}
	return nil
}

// Submit ends the attempt. Unanswered questions are allowed.
func (s *Session) Submit() error {
	if err := s.guard(PhaseInProgress, "submit"); err != nil {
		return err
	}
	s.state.Phase = PhaseSubmitted
	return nil
}

func (s *Session) Reset() {
	s.state = newState()
}

func (s *Session) clamp(i int) int {
	if n := len(s.state.Questions); i > n-1 {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
