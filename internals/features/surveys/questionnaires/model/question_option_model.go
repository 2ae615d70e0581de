package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestionOptionModel struct {
	QuestionOptionID         uuid.UUID `gorm:"column:question_option_id;type:uuid;primaryKey" json:"id"`
	QuestionOptionQuestionID uuid.UUID `gorm:"column:question_option_question_id;type:uuid;not null;index:idx_question_options_question_order,priority:1" json:"questionId"`
	QuestionOptionText       string    `gorm:"column:question_option_text;type:varchar(500);not null" json:"optionText"`
	QuestionOptionValue      *string   `gorm:"column:question_option_value;type:varchar(100)" json:"optionValue"`
	QuestionOptionOrder      int       `gorm:"column:question_option_order;not null;default:1;index:idx_question_options_question_order,priority:2" json:"order"`
	QuestionOptionPosition   int       `gorm:"column:question_option_position;not null;default:0" json:"-"`

	QuestionOptionCreatedAt time.Time `gorm:"column:question_option_created_at;autoCreateTime" json:"createdAt"`
	QuestionOptionUpdatedAt time.Time `gorm:"column:question_option_updated_at;autoUpdateTime" json:"updatedAt"`
}

func (QuestionOptionModel) TableName() string { return "question_options" }

func (m *QuestionOptionModel) BeforeCreate(tx *gorm.DB) error {
	if m.QuestionOptionID == uuid.Nil {
		m.QuestionOptionID = uuid.New()
	}
	return nil
}
