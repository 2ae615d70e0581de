package service

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shaunchuang/DtxEx/internals/features/surveys/questionnaires/model"
)

var (
	ErrUnknownQuestion = errors.New("question is not part of this form")
	ErrWrongControl    = errors.New("operation does not apply to this control")
	ErrUnknownOption   = errors.New("option does not belong to this question")
)

const dateLayout = "2006-01-02"

// AnswerPayload is one entry of a submission body.
type AnswerPayload struct {
	QuestionID      uuid.UUID   `json:"questionId"`
	AnswerText      *string     `json:"answerText,omitempty"`
	AnswerDate      *string     `json:"answerDate,omitempty"`
	SelectedOptions []uuid.UUID `json:"selectedOptions,omitempty"`
}

// FormState holds the answer drafts of one form being filled in.
type FormState struct {
	form     Form
	controls map[uuid.UUID]*Control
	drafts   map[uuid.UUID]model.AnswerValue
}

func NewFormState(f Form) *FormState {
	s := &FormState{
		form:     f,
		controls: make(map[uuid.UUID]*Control),
		drafts:   make(map[uuid.UUID]model.AnswerValue),
	}
	for si := range s.form.Sections {
		for ci := range s.form.Sections[si].Controls {
			c := &s.form.Sections[si].Controls[ci]
			s.controls[c.QuestionID] = c
		}
	}
	return s
}

func (s *FormState) control(questionID uuid.UUID, want model.ControlKind) (*Control, error) {
	c, ok := s.controls[questionID]
	if !ok {
		return nil, ErrUnknownQuestion
	}
	if c.Control != want {
		return nil, fmt.Errorf("%w: %s is a %s", ErrWrongControl, c.QuestionType, c.Control)
	}
	return c, nil
}

func (s *FormState) SetText(questionID uuid.UUID, text string) error {
	if _, err := s.control(questionID, model.ControlTextInput); err != nil {
		return err
	}
	s.drafts[questionID] = model.AnswerValue{Text: &text}
	return nil
}

func (s *FormState) SetDate(questionID uuid.UUID, d time.Time) error {
	if _, err := s.control(questionID, model.ControlDateInput); err != nil {
		return err
	}
	s.drafts[questionID] = model.AnswerValue{Date: &d}
	return nil
}

// Select is radio-group input: the option replaces any earlier choice.
func (s *FormState) Select(questionID, optionID uuid.UUID) error {
	c, err := s.control(questionID, model.ControlRadioGroup)
	if err != nil {
		return err
	}
	if !c.hasOption(optionID) {
		return ErrUnknownOption
	}
	s.drafts[questionID] = model.AnswerValue{Options: []uuid.UUID{optionID}}
	return nil
}

// Toggle is checkbox-group input: adds the option, or removes it when
// already selected.
func (s *FormState) Toggle(questionID, optionID uuid.UUID) error {
	c, err := s.control(questionID, model.ControlCheckboxGroup)
	if err != nil {
		return err
	}
	if !c.hasOption(optionID) {
		return ErrUnknownOption
	}

	cur := s.drafts[questionID].Options
	if i := slices.Index(cur, optionID); i >= 0 {
		cur = slices.Delete(slices.Clone(cur), i, i+1)
	} else {
		cur = append(slices.Clone(cur), optionID)
	}
	s.drafts[questionID] = model.AnswerValue{Options: cur}
	return nil
}

// Clear drops the draft of one question.
func (s *FormState) Clear(questionID uuid.UUID) {
	delete(s.drafts, questionID)
}

func (s *FormState) Draft(questionID uuid.UUID) model.AnswerValue {
	return s.drafts[questionID]
}

// Apply feeds a whole draft through the control's own operation. Values for
// display-only questions are ignored.
func (s *FormState) Apply(questionID uuid.UUID, v model.AnswerValue) error {
	c, ok := s.controls[questionID]
	if !ok {
		return ErrUnknownQuestion
	}
	if v.Text != nil && c.kind.Shape != model.ShapeText && c.kind.Answerable() {
		return fmt.Errorf("%w: %s does not take answerText", ErrWrongControl, c.QuestionType)
	}
	if v.Date != nil && c.kind.Shape != model.ShapeDate && c.kind.Answerable() {
		return fmt.Errorf("%w: %s does not take answerDate", ErrWrongControl, c.QuestionType)
	}
	if len(v.Options) > 0 && c.kind.Shape != model.ShapeOptions && c.kind.Answerable() {
		return fmt.Errorf("%w: %s does not take selectedOptions", ErrWrongControl, c.QuestionType)
	}

	switch c.Control {
	case model.ControlTextInput:
		s.Clear(questionID)
		if v.Text != nil {
			return s.SetText(questionID, *v.Text)
		}
	case model.ControlDateInput:
		s.Clear(questionID)
		if v.Date != nil {
			return s.SetDate(questionID, *v.Date)
		}
	case model.ControlRadioGroup:
		if len(v.Options) > 1 {
			return fmt.Errorf("%s questions accept one option", c.QuestionType)
		}
		s.Clear(questionID)
		if len(v.Options) == 1 {
			return s.Select(questionID, v.Options[0])
		}
	case model.ControlCheckboxGroup:
		s.Clear(questionID)
		for _, id := range c.kind.Normalize(v).Options {
			if err := s.Toggle(questionID, id); err != nil {
				return err
			}
		}
	}
	return nil
}

// Validate flags required questions without an answer, keyed by question id.
func (s *FormState) Validate() map[string][]string {
	fields := map[string][]string{}
	s.each(func(c *Control) {
		if c.Required && !c.kind.IsAnswered(s.drafts[c.QuestionID]) {
			fields[c.QuestionID.String()] = []string{"is required"}
		}
	})
	return fields
}

// Submission lists answered questions in form order, display-only and
// unanswered questions left out.
func (s *FormState) Submission() []AnswerPayload {
	out := []AnswerPayload{}
	s.each(func(c *Control) {
		v := s.drafts[c.QuestionID]
		if !c.kind.Answerable() || !c.kind.IsAnswered(v) {
			return
		}
		p := AnswerPayload{QuestionID: c.QuestionID}
		switch c.kind.Shape {
		case model.ShapeText:
			t := strings.TrimSpace(*v.Text)
			p.AnswerText = &t
		case model.ShapeDate:
			d := v.Date.Format(dateLayout)
			p.AnswerDate = &d
		case model.ShapeOptions:
			p.SelectedOptions = slices.Clone(v.Options)
		}
		out = append(out, p)
	})
	return out
}

func (s *FormState) each(fn func(c *Control)) {
	for si := range s.form.Sections {
		for ci := range s.form.Sections[si].Controls {
			fn(&s.form.Sections[si].Controls[ci])
		}
	}
}
