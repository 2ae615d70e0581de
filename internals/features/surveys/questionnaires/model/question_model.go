package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestionModel struct {
	QuestionID          uuid.UUID    `gorm:"column:question_id;type:uuid;primaryKey" json:"id"`
	QuestionSectionID   uuid.UUID    `gorm:"column:question_section_id;type:uuid;not null;index:idx_questions_section_order,priority:1" json:"sectionId"`
	QuestionText        string       `gorm:"column:question_text;type:text;not null" json:"questionText"`
	QuestionType        QuestionType `gorm:"column:question_type;type:varchar(32);not null" json:"questionType"`
	QuestionOrder       int          `gorm:"column:question_order;not null;default:1;index:idx_questions_section_order,priority:2" json:"order"`
	QuestionPosition    int          `gorm:"column:question_position;not null;default:0" json:"-"`
	QuestionIsRequired  bool         `gorm:"column:question_is_required;not null;default:false" json:"isRequired"`
	QuestionDescription *string      `gorm:"column:question_description;type:text" json:"description"`

	QuestionCreatedAt time.Time `gorm:"column:question_created_at;autoCreateTime" json:"createdAt"`
	QuestionUpdatedAt time.Time `gorm:"column:question_updated_at;autoUpdateTime" json:"updatedAt"`

	Options []QuestionOptionModel `gorm:"foreignKey:QuestionOptionQuestionID;references:QuestionID;constraint:OnDelete:CASCADE" json:"options"`
}

func (QuestionModel) TableName() string { return "questions" }

func (m *QuestionModel) BeforeCreate(tx *gorm.DB) error {
	if m.QuestionID == uuid.Nil {
		m.QuestionID = uuid.New()
	}
	return nil
}

// Kind resolves the question's type; unknown types never reach the database
// through the services, so the zero kind is only seen on corrupt rows.
func (m *QuestionModel) Kind() QuestionKind {
	k, _ := m.QuestionType.Kind()
	return k
}

func (m *QuestionModel) HasOption(id uuid.UUID) bool {
	for i := range m.Options {
		if m.Options[i].QuestionOptionID == id {
			return true
		}
	}
	return false
}
