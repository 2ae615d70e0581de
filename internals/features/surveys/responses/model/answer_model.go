package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	qmodel "github.com/shaunchuang/DtxEx/internals/features/surveys/questionnaires/model"
)

type AnswerModel struct {
	AnswerID         uuid.UUID       `gorm:"column:answer_id;type:uuid;primaryKey" json:"id"`
	AnswerResponseID uuid.UUID       `gorm:"column:answer_response_id;type:uuid;not null;uniqueIndex:uq_answers_response_question,priority:1" json:"responseId"`
	AnswerQuestionID uuid.UUID       `gorm:"column:answer_question_id;type:uuid;not null;uniqueIndex:uq_answers_response_question,priority:2" json:"questionId"`
	AnswerText       *string         `gorm:"column:answer_text;type:text" json:"answerText,omitempty"`
	AnswerDate       *datatypes.Date `gorm:"column:answer_date;type:date" json:"answerDate,omitempty"`
	AnswerPosition   int             `gorm:"column:answer_position;not null;default:0" json:"-"`

	AnswerCreatedAt time.Time `gorm:"column:answer_created_at;autoCreateTime" json:"createdAt"`
	AnswerUpdatedAt time.Time `gorm:"column:answer_updated_at;autoUpdateTime" json:"updatedAt"`

	Question        *qmodel.QuestionModel `gorm:"foreignKey:AnswerQuestionID;references:QuestionID;constraint:OnDelete:CASCADE" json:"question,omitempty"`
	SelectedOptions []AnswerOptionModel   `gorm:"foreignKey:AnswerOptionAnswerID;references:AnswerID;constraint:OnDelete:CASCADE" json:"selectedOptions"`
}

func (AnswerModel) TableName() string { return "answers" }

func (m *AnswerModel) BeforeCreate(tx *gorm.DB) error {
	if m.AnswerID == uuid.Nil {
		m.AnswerID = uuid.New()
	}
	return nil
}

// OptionIDs lists the selected option ids in selection order.
func (m *AnswerModel) OptionIDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(m.SelectedOptions))
	for _, o := range m.SelectedOptions {
		out = append(out, o.AnswerOptionOptionID)
	}
	return out
}
