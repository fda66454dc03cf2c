package quiz

import "math"

const (
	NoAnswer    = "No answer"
	NotProvided = "Not provided"
)

// ProgressPercent is the rounded position of the current question, 1-based.
func (s *Session) ProgressPercent() int {
	n := len(s.state.Questions)
	if n == 0 {
		return 0
	}
	return int(math.Round(100 * float64(s.state.CurrentIndex+1) / float64(n)))
}

func (s *Session) Answered(q Question) bool {
	_, ok := s.state.Answers[q.ID]
	return ok
}

// Current returns the question on screen; ok is false outside an attempt.
func (s *Session) Current() (Question, bool) {
	if s.state.Phase == PhaseUploading || len(s.state.Questions) == 0 {
		return Question{}, false
	}
	return s.state.Questions[s.state.CurrentIndex], true
}

type OverviewItem struct {
	Index    int    `json:"index"`
	ID       string `json:"id"`
	Current  bool   `json:"current"`
	Answered bool   `json:"answered"`
}

func (s *Session) Overview() []OverviewItem {
	out := make([]OverviewItem, 0, len(s.state.Questions))
	for i, q := range s.state.Questions {
		out = append(out, OverviewItem{
			Index:    i,
			ID:       q.ID,
			Current:  i == s.state.CurrentIndex,
			Answered: s.Answered(q),
		})
	}
	return out
}

type SummaryLine struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

type Summary struct {
	SourceFileName string        `json:"source_file_name"`
	Student        StudentInfo   `json:"student"`
	Answers        []SummaryLine `json:"answers"`
}

// Summary is the submitted-attempt report, with display defaults filled in.
func (s *Session) Summary() Summary {
	sum := Summary{
		SourceFileName: s.state.SourceFileName,
		Student: StudentInfo{
			Name:   orDefault(s.state.Student.Name, NotProvided),
			Date:   orDefault(s.state.Student.Date, NotProvided),
			Period: orDefault(s.state.Student.Period, NotProvided),
		},
		Answers: make([]SummaryLine, 0, len(s.state.Questions)),
	}
	for _, q := range s.state.Questions {
		sum.Answers = append(sum.Answers, SummaryLine{
			QuestionID: q.ID,
			Answer:     orDefault(string(s.state.Answers[q.ID]), NoAnswer),
		})
	}
	return sum
}

// View is the read model rendered by the HTML pages and returned by the JSON
// endpoints.
type View struct {
	Phase          Phase          `json:"phase"`
	SourceFileName string         `json:"source_file_name,omitempty"`
	Index          int            `json:"index"`
	Total          int            `json:"total"`
	Percent        int            `json:"percent"`
	Question       *Question      `json:"question,omitempty"`
	Selected       Letter         `json:"selected,omitempty"`
	Answered       bool           `json:"answered"`
	First          bool           `json:"first"`
	Last           bool           `json:"last"`
	Student        StudentInfo    `json:"student"`
	Overview       []OverviewItem `json:"overview,omitempty"`
	Summary        *Summary       `json:"summary,omitempty"`
}

func (s *Session) View() View {
	v := View{
		Phase:          s.state.Phase,
		SourceFileName: s.state.SourceFileName,
		Index:          s.state.CurrentIndex,
		Total:          len(s.state.Questions),
		Student:        s.state.Student,
	}
	switch s.state.Phase {
	case PhaseInProgress:
		q, _ := s.Current()
		v.Question = &q
		v.Selected = s.state.Answers[q.ID]
		v.Answered = s.Answered(q)
		v.Percent = s.ProgressPercent()
		v.First = s.state.CurrentIndex == 0
		v.Last = s.state.CurrentIndex == len(s.state.Questions)-1
		v.Overview = s.Overview()
	case PhaseSubmitted:
		sum := s.Summary()
		v.Summary = &sum
	}
	return v
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
