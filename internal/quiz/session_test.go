package quiz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mind-engage/sheetquiz/internal/sheet"
)

// stubReader hands back canned rows, or fails every read.
type stubReader struct {
	rows []sheet.Row
	err  error
}

func (r stubReader) Read(ctx context.Context, name string, data []byte) ([]sheet.Row, error) {
	if r.err != nil {
		return nil, &sheet.DecodeError{Name: name, Err: r.err}
	}
	return r.rows, nil
}

func fourRows() []sheet.Row {
	return []sheet.Row{
		row("ID", "q1", "Text", "one"),
		row("ID", "q2", "Text", "two"),
		row("ID", "q3", "Text", "three"),
		row("ID", "q4", "Text", "four"),
	}
}

func loaded(t *testing.T) *Session {
	t.Helper()
	s := NewSession(stubReader{rows: fourRows()})
	require.NoError(t, s.LoadFile(context.Background(), []byte("x"), "quiz.xlsx"))
	return s
}

func TestNewSessionStartsUploading(t *testing.T) {
	s := NewSession(stubReader{})
	st := s.State()
	require.Equal(t, PhaseUploading, st.Phase)
	require.Empty(t, st.Questions)
	require.Empty(t, st.Answers)
	require.Equal(t, 0, st.CurrentIndex)
	_, ok := s.Current()
	require.False(t, ok)
}

func TestLoadFile(t *testing.T) {
	s := loaded(t)
	st := s.State()
	require.Equal(t, PhaseInProgress, st.Phase)
	require.Len(t, st.Questions, 4)
	require.Equal(t, "quiz.xlsx", st.SourceFileName)
	require.Equal(t, 0, st.CurrentIndex)

	q, ok := s.Current()
	require.True(t, ok)
	require.Equal(t, "q1", q.ID)
}

func TestLoadFileDecodeErrorKeepsState(t *testing.T) {
	s := loaded(t)
	require.NoError(t, s.SetAnswer("q1", LetterB))
	require.NoError(t, s.GoNext())
	before := s.State()

	s.reader = stubReader{err: errors.New("bad bytes")}
	err := s.LoadFile(context.Background(), []byte("junk"), "junk.xlsx")
	require.ErrorIs(t, err, sheet.ErrDecode)
	require.Equal(t, before, s.State())
}

func TestLoadFileDecodeErrorWhileUploading(t *testing.T) {
	s := NewSession(stubReader{err: errors.New("bad bytes")})
	err := s.LoadFile(context.Background(), nil, "junk.xlsx")
	require.ErrorIs(t, err, sheet.ErrDecode)
	require.Equal(t, PhaseUploading, s.Phase())
	require.Empty(t, s.State().Questions)
}

func TestLoadFileWithoutRowsIsRejected(t *testing.T) {
	s := NewSession(stubReader{rows: []sheet.Row{}})
	err := s.LoadFile(context.Background(), []byte("h\n"), "empty.csv")
	require.ErrorIs(t, err, ErrNoQuestions)
	require.ErrorIs(t, err, sheet.ErrDecode)
	require.Equal(t, PhaseUploading, s.Phase())
}

func TestLoadFileCancelledLeavesState(t *testing.T) {
	s := NewSession(stubReader{rows: fourRows()})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, s.LoadFile(ctx, []byte("x"), "quiz.xlsx"), context.Canceled)
	require.Equal(t, NewSession(stubReader{}).State(), s.State())
}

func TestLoadFileReplacesRunningAttempt(t *testing.T) {
	s := loaded(t)
	require.NoError(t, s.SetStudentInfo(FieldName, "Ada"))
	require.NoError(t, s.SetAnswer("q1", LetterA))
	require.NoError(t, s.JumpTo(3))
	require.NoError(t, s.Submit())

	s.reader = stubReader{rows: fourRows()[:2]}
	require.NoError(t, s.LoadFile(context.Background(), []byte("y"), "second.csv"))
	st := s.State()
	require.Equal(t, PhaseInProgress, st.Phase)
	require.Len(t, st.Questions, 2)
	require.Empty(t, st.Answers)
	require.Equal(t, 0, st.CurrentIndex)
	require.Equal(t, StudentInfo{}, st.Student)
	require.Equal(t, "second.csv", st.SourceFileName)
}

func TestAnswerSurvivesNavigation(t *testing.T) {
	s := loaded(t)
	require.NoError(t, s.JumpTo(1))
	require.NoError(t, s.SetAnswer("q2", LetterC))
	require.NoError(t, s.GoNext())
	require.NoError(t, s.GoPrevious())

	st := s.State()
	require.Equal(t, 1, st.CurrentIndex)
	require.Equal(t, LetterC, st.Answers["q2"])
}

func TestSetAnswerOverwrites(t *testing.T) {
	s := loaded(t)
	require.NoError(t, s.SetAnswer("q1", LetterA))
	require.NoError(t, s.SetAnswer("q1", LetterD))
	require.Equal(t, map[string]Letter{"q1": LetterD}, s.State().Answers)
}

func TestSetAnswerRejectsUnknownLetter(t *testing.T) {
	s := loaded(t)
	require.ErrorIs(t, s.SetAnswer("q1", "E"), ErrInvalidLetter)
	require.ErrorIs(t, s.SetAnswer("q1", "a"), ErrInvalidLetter)
	require.Empty(t, s.State().Answers)
}

func TestNavigationClampsAtBoundaries(t *testing.T) {
	s := loaded(t)
	require.NoError(t, s.GoPrevious())
	require.Equal(t, 0, s.State().CurrentIndex)

	for i := 0; i < 10; i++ {
		require.NoError(t, s.GoNext())
	}
	require.Equal(t, 3, s.State().CurrentIndex)
}

func TestJumpTo(t *testing.T) {
	s := loaded(t)
	require.NoError(t, s.JumpTo(2))
	require.Equal(t, 2, s.State().CurrentIndex)

	require.ErrorIs(t, s.JumpTo(4), ErrOutOfRange)
	require.ErrorIs(t, s.JumpTo(-1), ErrOutOfRange)
	require.Equal(t, 2, s.State().CurrentIndex)
}

func TestStudentInfoOnlyOnFirstQuestion(t *testing.T) {
	s := loaded(t)
	require.NoError(t, s.SetStudentInfo(FieldName, "Ada"))
	require.NoError(t, s.SetStudentInfo(FieldDate, "01/02/2026"))
	require.NoError(t, s.SetStudentInfo(FieldPeriod, "3"))
	require.ErrorIs(t, s.SetStudentInfo("grade", "A"), ErrUnknownField)

	require.NoError(t, s.GoNext())
	require.ErrorIs(t, s.SetStudentInfo(FieldName, "Bob"), ErrInvalidTransition)
	require.Equal(t, StudentInfo{Name: "Ada", Date: "01/02/2026", Period: "3"}, s.State().Student)
}

func TestInvalidTransitionsLeaveStateUntouched(t *testing.T) {
	s := NewSession(stubReader{rows: fourRows()})
	fresh := s.State()

	require.ErrorIs(t, s.SetAnswer("q1", LetterA), ErrInvalidTransition)
	require.ErrorIs(t, s.GoNext(), ErrInvalidTransition)
	require.ErrorIs(t, s.GoPrevious(), ErrInvalidTransition)
	require.ErrorIs(t, s.JumpTo(0), ErrInvalidTransition)
	require.ErrorIs(t, s.SetStudentInfo(FieldName, "x"), ErrInvalidTransition)
	require.ErrorIs(t, s.Submit(), ErrInvalidTransition)
	require.Equal(t, fresh, s.State())

	s = loaded(t)
	require.NoError(t, s.Submit())
	submitted := s.State()
	require.ErrorIs(t, s.SetAnswer("q1", LetterA), ErrInvalidTransition)
	require.ErrorIs(t, s.GoNext(), ErrInvalidTransition)
	require.ErrorIs(t, s.Submit(), ErrInvalidTransition)
	require.Equal(t, submitted, s.State())
}

func TestSubmitKeepsAnswersAndQuestions(t *testing.T) {
	s := loaded(t)
	require.NoError(t, s.SetAnswer("q3", LetterB))
	before := s.State()
	require.NoError(t, s.Submit())

	after := s.State()
	require.Equal(t, PhaseSubmitted, after.Phase)
	require.Equal(t, before.Answers, after.Answers)
	require.Equal(t, before.Questions, after.Questions)
}

func TestResetFromSubmittedMatchesFreshSession(t *testing.T) {
	s := loaded(t)
	require.NoError(t, s.SetStudentInfo(FieldName, "Ada"))
	require.NoError(t, s.SetAnswer("q1", LetterA))
	require.NoError(t, s.GoNext())
	require.NoError(t, s.Submit())

	s.Reset()
	require.Equal(t, NewSession(stubReader{}).State(), s.State())
}

func TestResetFromAnyPhase(t *testing.T) {
	s := NewSession(stubReader{})
	s.Reset()
	require.Equal(t, PhaseUploading, s.Phase())

	s = loaded(t)
	s.Reset()
	require.Equal(t, PhaseUploading, s.Phase())
}

func TestRestoreRoundTrip(t *testing.T) {
	s := loaded(t)
	require.NoError(t, s.JumpTo(2))
	require.NoError(t, s.SetAnswer("q3", LetterD))

	r := Restore(stubReader{}, s.State())
	require.Equal(t, s.State(), r.State())
	require.NoError(t, r.GoNext())
	require.Equal(t, 3, r.State().CurrentIndex)
}

func TestRestoreRepairsInconsistentState(t *testing.T) {
	r := Restore(stubReader{}, State{Phase: PhaseInProgress, CurrentIndex: 7})
	require.Equal(t, NewSession(stubReader{}).State(), r.State())

	st := loaded(t).State()
	st.CurrentIndex = 99
	st.Answers = nil
	r = Restore(stubReader{}, st)
	require.Equal(t, 3, r.State().CurrentIndex)
	require.NotNil(t, r.State().Answers)
}
