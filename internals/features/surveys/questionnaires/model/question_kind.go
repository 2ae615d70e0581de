package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type QuestionType string

const (
	QuestionTypeText           QuestionType = "TEXT"
	QuestionTypeSingleChoice   QuestionType = "SINGLE_CHOICE"
	QuestionTypeMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionTypeScale          QuestionType = "SCALE"
	QuestionTypeParagraph      QuestionType = "PARAGRAPH"
	QuestionTypeDate           QuestionType = "DATE"
)

// AnswerShape is the single field of an answer a question type accepts.
type AnswerShape int

const (
	ShapeNone AnswerShape = iota
	ShapeText
	ShapeDate
	ShapeOptions
)

// ControlKind names the input widget a form renders for a question.
type ControlKind string

const (
	ControlTextInput     ControlKind = "text_input"
	ControlDateInput     ControlKind = "date_input"
	ControlStaticText    ControlKind = "static_text"
	ControlRadioGroup    ControlKind = "radio_group"
	ControlCheckboxGroup ControlKind = "checkbox_group"
)

// Unlimited selection count for checkbox style questions.
const Unlimited = -1

type QuestionKind struct {
	Type            QuestionType
	Shape           AnswerShape
	RequiresOptions bool
	MaxSelections   int
	Control         ControlKind
}

var questionTypes = []QuestionType{
	QuestionTypeText,
	QuestionTypeSingleChoice,
	QuestionTypeMultipleChoice,
	QuestionTypeScale,
	QuestionTypeParagraph,
	QuestionTypeDate,
}

var questionKinds = map[QuestionType]QuestionKind{
	QuestionTypeText:           {Type: QuestionTypeText, Shape: ShapeText, Control: ControlTextInput},
	QuestionTypeParagraph:      {Type: QuestionTypeParagraph, Shape: ShapeNone, Control: ControlStaticText},
	QuestionTypeDate:           {Type: QuestionTypeDate, Shape: ShapeDate, Control: ControlDateInput},
	QuestionTypeSingleChoice:   {Type: QuestionTypeSingleChoice, Shape: ShapeOptions, RequiresOptions: true, MaxSelections: 1, Control: ControlRadioGroup},
	QuestionTypeScale:          {Type: QuestionTypeScale, Shape: ShapeOptions, RequiresOptions: true, MaxSelections: 1, Control: ControlRadioGroup},
	QuestionTypeMultipleChoice: {Type: QuestionTypeMultipleChoice, Shape: ShapeOptions, RequiresOptions: true, MaxSelections: Unlimited, Control: ControlCheckboxGroup},
}

// QuestionTypes lists the supported types in display order.
func QuestionTypes() []QuestionType {
	return append([]QuestionType(nil), questionTypes...)
}

func ParseQuestionType(s string) (QuestionType, bool) {
	t := QuestionType(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := questionKinds[t]
	return t, ok
}

func (t QuestionType) Valid() bool {
	_, ok := questionKinds[t]
	return ok
}

func (t QuestionType) Kind() (QuestionKind, bool) {
	k, ok := questionKinds[t]
	return k, ok
}

// AnswerValue is the answer draft shape shared by submissions and forms:
// {answerText | answerDate | selectedOptions[]}.
type AnswerValue struct {
	Text    *string
	Date    *time.Time
	Options []uuid.UUID
}

// Answerable reports whether answers of this kind are stored at all.
func (k QuestionKind) Answerable() bool { return k.Shape != ShapeNone }

// Normalize drops fields that do not belong to the kind and de-duplicates
// selected options, keeping their first occurrence order.
func (k QuestionKind) Normalize(v AnswerValue) AnswerValue {
	var out AnswerValue
	switch k.Shape {
	case ShapeText:
		out.Text = v.Text
	case ShapeDate:
		if v.Date != nil {
			d := truncateDay(*v.Date)
			out.Date = &d
		}
	case ShapeOptions:
		seen := make(map[uuid.UUID]struct{}, len(v.Options))
		for _, id := range v.Options {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out.Options = append(out.Options, id)
		}
	}
	return out
}

func (k QuestionKind) IsAnswered(v AnswerValue) bool {
	switch k.Shape {
	case ShapeText:
		return v.Text != nil && strings.TrimSpace(*v.Text) != ""
	case ShapeDate:
		return v.Date != nil && !v.Date.IsZero()
	case ShapeOptions:
		return len(v.Options) > 0
	default:
		return false
	}
}

func (k QuestionKind) CheckSelections(n int) error {
	switch {
	case k.Shape != ShapeOptions && n > 0:
		return fmt.Errorf("%s questions do not take options", k.Type)
	case k.MaxSelections != Unlimited && n > k.MaxSelections:
		return fmt.Errorf("%s questions accept at most %d option", k.Type, k.MaxSelections)
	}
	return nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
