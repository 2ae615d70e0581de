package service

import (
	"github.com/google/uuid"

	"github.com/shaunchuang/DtxEx/internals/features/surveys/questionnaires/model"
)

/* ===============================
   Render model
=================================*/

type OptionView struct {
	ID    uuid.UUID `json:"id"`
	Label string    `json:"label"`
	Value *string   `json:"value,omitempty"`
}

// Control is one question as the client should draw it.
type Control struct {
	QuestionID    uuid.UUID          `json:"questionId"`
	Label         string             `json:"label"`
	Description   *string            `json:"description,omitempty"`
	QuestionType  model.QuestionType `json:"questionType"`
	Control       model.ControlKind  `json:"control"`
	Required      bool               `json:"required"`
	MaxSelections int                `json:"maxSelections,omitempty"`
	Options       []OptionView       `json:"options,omitempty"`

	kind model.QuestionKind
}

type SectionView struct {
	ID          uuid.UUID `json:"id"`
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Controls    []Control `json:"controls"`
}

type Form struct {
	QuestionnaireID uuid.UUID     `json:"questionnaireId"`
	Title           string        `json:"title"`
	Description     *string       `json:"description,omitempty"`
	Sections        []SectionView `json:"sections"`
}

// Render maps a hydrated questionnaire to its form. Section, question and
// option order is taken as loaded.
func Render(q *model.QuestionnaireModel) Form {
	f := Form{
		QuestionnaireID: q.QuestionnaireID,
		Title:           q.QuestionnaireTitle,
		Description:     q.QuestionnaireDescription,
		Sections:        make([]SectionView, 0, len(q.Sections)),
	}
	for _, sec := range q.Sections {
		sv := SectionView{
			ID:          sec.SectionID,
			Title:       sec.SectionTitle,
			Description: sec.SectionDescription,
			Controls:    make([]Control, 0, len(sec.Questions)),
		}
		for i := range sec.Questions {
			sv.Controls = append(sv.Controls, renderControl(&sec.Questions[i]))
		}
		f.Sections = append(f.Sections, sv)
	}
	return f
}

func renderControl(q *model.QuestionModel) Control {
	kind := q.Kind()
	c := Control{
		QuestionID:   q.QuestionID,
		Label:        q.QuestionText,
		Description:  q.QuestionDescription,
		QuestionType: q.QuestionType,
		Control:      kind.Control,
		// display-only questions are never required
		Required: q.QuestionIsRequired && kind.Answerable(),
		kind:     kind,
	}
	if kind.Shape == model.ShapeOptions {
		c.MaxSelections = kind.MaxSelections
		for _, o := range q.Options {
			c.Options = append(c.Options, OptionView{
				ID:    o.QuestionOptionID,
				Label: o.QuestionOptionText,
				Value: o.QuestionOptionValue,
			})
		}
	}
	return c
}

func (c *Control) hasOption(id uuid.UUID) bool {
	for _, o := range c.Options {
		if o.ID == id {
			return true
		}
	}
	return false
}
