package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mind-engage/sheetquiz/internal/quiz"
)

const playHelp = `Commands:
  a|b|c|d            answer the current question
  n, next            next question
  p, prev            previous question
  j <number>         jump to question number
  name|date|period <value>
                     student details (first question only)
  submit             finish and show the summary
  q, quit            leave without submitting`

// play runs an attempt over in/out until it is submitted or the user quits.
func play(s *quiz.Session, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, playHelp)
	sc := bufio.NewScanner(in)
	for {
		printView(out, s.View())
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		done, err := command(s, sc.Text())
		if err != nil {
			fmt.Fprintf(out, "! %v\n", err)
		}
		if done {
			break
		}
	}
	if s.Phase() == quiz.PhaseSubmitted {
		printSummary(out, s.Summary())
	}
	return nil
}

// command applies one input line; done reports that the loop should stop.
func command(s *quiz.Session, line string) (done bool, err error) {
	verb, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)
	switch strings.ToLower(verb) {
	case "":
		return false, nil
	case "a", "b", "c", "d":
		q, _ := s.Current()
		return false, s.SetAnswer(q.ID, quiz.Letter(strings.ToUpper(verb)))
	case "n", "next":
		return false, s.GoNext()
	case "p", "prev", "previous":
		return false, s.GoPrevious()
	case "j", "jump":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return false, fmt.Errorf("jump needs a question number")
		}
		return false, s.JumpTo(n - 1)
	case "name", "date", "period":
		return false, s.SetStudentInfo(quiz.StudentField(strings.ToLower(verb)), arg)
	case "submit":
		return true, s.Submit()
	case "q", "quit", "exit":
		return true, nil
	}
	return false, fmt.Errorf("unknown command %q", verb)
}

func printView(out io.Writer, v quiz.View) {
	if v.Question == nil {
		return
	}
	fmt.Fprintf(out, "\nQuestion %d of %d (%d%% complete)\n", v.Index+1, v.Total, v.Percent)
	if v.First {
		fmt.Fprintf(out, "Student: %s / %s / %s\n", v.Student.Name, v.Student.Date, v.Student.Period)
	}
	printQuestion(out, *v.Question)
	if v.Answered {
		fmt.Fprintf(out, "Answered: %s\n", v.Selected)
	}
}

func printQuestion(out io.Writer, q quiz.Question) {
	fmt.Fprintf(out, "%s: %s\n", q.ID, q.Text)
	if q.Note != nil {
		fmt.Fprintf(out, "  Note: %s\n", *q.Note)
	}
	if q.Image != nil {
		fmt.Fprintf(out, "  Image: %s\n", *q.Image)
	}
	for _, o := range q.Options {
		fmt.Fprintf(out, "  (%s) %s\n", o.Letter, o.Text)
	}
}

func printSummary(out io.Writer, sum quiz.Summary) {
	fmt.Fprintf(out, "\nTest submitted: %s\n", sum.SourceFileName)
	fmt.Fprintf(out, "Name: %s\nDate: %s\nClass Period: %s\n", sum.Student.Name, sum.Student.Date, sum.Student.Period)
	for _, l := range sum.Answers {
		fmt.Fprintf(out, "Question %s: %s\n", l.QuestionID, l.Answer)
	}
}
