// Package quiz turns spreadsheet rows into multiple-choice questions and
// drives one attempt over them: upload, answer, navigate, submit, reset.
package quiz

import "fmt"

type Letter string

const (
	LetterA Letter = "A"
	LetterB Letter = "B"
	LetterC Letter = "C"
	LetterD Letter = "D"
)

// Letters is the fixed option order of every question.
var Letters = [4]Letter{LetterA, LetterB, LetterC, LetterD}

func (l Letter) Valid() bool {
	switch l {
	case LetterA, LetterB, LetterC, LetterD:
		return true
	}
	return false
}

type Option struct {
	Letter Letter `json:"letter"`
	Text   string `json:"text"`
}

type Question struct {
	ID      string    `json:"id"` // display key, not unique
	Text    string    `json:"text"`
	Image   *string   `json:"image"`
	Note    *string   `json:"note"`
	Options [4]Option `json:"options"`
}

type StudentInfo struct {
	Name   string `json:"name"`
	Date   string `json:"date"`
	Period string `json:"period"`
}

type StudentField string

const (
	FieldName   StudentField = "name"
	FieldDate   StudentField = "date"
	FieldPeriod StudentField = "period"
)

type Phase int

const (
	PhaseUploading Phase = iota
	PhaseInProgress
	PhaseSubmitted
)

func (p Phase) String() string {
	switch p {
	case PhaseUploading:
		return "uploading"
	case PhaseInProgress:
		return "in_progress"
	case PhaseSubmitted:
		return "submitted"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

func (p Phase) MarshalText() ([]byte, error) {
	switch p {
	case PhaseUploading, PhaseInProgress, PhaseSubmitted:
		return []byte(p.String()), nil
	}
	return nil, fmt.Errorf("unknown phase %d", int(p))
}

func (p *Phase) UnmarshalText(b []byte) error {
	switch string(b) {
	case "uploading":
		*p = PhaseUploading
	case "in_progress":
		*p = PhaseInProgress
	case "submitted":
		*p = PhaseSubmitted
	default:
		return fmt.Errorf("unknown phase %q", b)
	}
	return nil
}

// State is everything one quiz attempt holds. It is what session stores save.
type State struct {
	Phase          Phase             `json:"phase"`
	Questions      []Question        `json:"questions"`
	CurrentIndex   int               `json:"current_index"`
	Answers        map[string]Letter `json:"answers"`
	Student        StudentInfo       `json:"student"`
	SourceFileName string            `json:"source_file_name"`
}

func newState() State {
	return State{
		Phase:     PhaseUploading,
		Questions: []Question{},
		Answers:   map[string]Letter{},
	}
}

func (st State) clone() State {
	out := st
	out.Questions = make([]Question, len(st.Questions))
	copy(out.Questions, st.Questions)
	out.Answers = make(map[string]Letter, len(st.Answers))
	for k, v := range st.Answers {
		out.Answers[k] = v
	}
	return out
}
