package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestionnaireModel struct {
	QuestionnaireID          uuid.UUID `gorm:"column:questionnaire_id;type:uuid;primaryKey" json:"id"`
	QuestionnaireTitle       string    `gorm:"column:questionnaire_title;type:varchar(255);not null" json:"title"`
	QuestionnaireDescription *string   `gorm:"column:questionnaire_description;type:text" json:"description"`

	QuestionnaireCreatedAt time.Time `gorm:"column:questionnaire_created_at;autoCreateTime;index:idx_questionnaires_created_at" json:"createdAt"`
	QuestionnaireUpdatedAt time.Time `gorm:"column:questionnaire_updated_at;autoUpdateTime" json:"updatedAt"`

	Sections []SectionModel `gorm:"foreignKey:SectionQuestionnaireID;references:QuestionnaireID;constraint:OnDelete:CASCADE" json:"sections"`
}

func (QuestionnaireModel) TableName() string { return "questionnaires" }

func (m *QuestionnaireModel) BeforeCreate(tx *gorm.DB) error {
	if m.QuestionnaireID == uuid.Nil {
		m.QuestionnaireID = uuid.New()
	}
	return nil
}

// QuestionCount counts questions across all loaded sections.
func (m *QuestionnaireModel) QuestionCount() int {
	n := 0
	for i := range m.Sections {
		n += len(m.Sections[i].Questions)
	}
	return n
}
