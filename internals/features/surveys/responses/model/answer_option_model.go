package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	qmodel "github.com/shaunchuang/DtxEx/internals/features/surveys/questionnaires/model"
)

type AnswerOptionModel struct {
	AnswerOptionID       uuid.UUID `gorm:"column:answer_option_id;type:uuid;primaryKey" json:"id"`
	AnswerOptionAnswerID uuid.UUID `gorm:"column:answer_option_answer_id;type:uuid;not null;uniqueIndex:uq_answer_options_answer_option,priority:1" json:"answerId"`
	AnswerOptionOptionID uuid.UUID `gorm:"column:answer_option_option_id;type:uuid;not null;uniqueIndex:uq_answer_options_answer_option,priority:2" json:"optionId"`
	AnswerOptionPosition int       `gorm:"column:answer_option_position;not null;default:0" json:"-"`

	AnswerOptionCreatedAt time.Time `gorm:"column:answer_option_created_at;autoCreateTime" json:"createdAt"`
	AnswerOptionUpdatedAt time.Time `gorm:"column:answer_option_updated_at;autoUpdateTime" json:"updatedAt"`

	Option *qmodel.QuestionOptionModel `gorm:"foreignKey:AnswerOptionOptionID;references:QuestionOptionID;constraint:OnDelete:CASCADE" json:"option,omitempty"`
}

func (AnswerOptionModel) TableName() string { return "answer_options" }

func (m *AnswerOptionModel) BeforeCreate(tx *gorm.DB) error {
	if m.AnswerOptionID == uuid.Nil {
		m.AnswerOptionID = uuid.New()
	}
	return nil
}
