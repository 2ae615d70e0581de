package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SectionModel struct {
	SectionID              uuid.UUID `gorm:"column:section_id;type:uuid;primaryKey" json:"id"`
	SectionQuestionnaireID uuid.UUID `gorm:"column:section_questionnaire_id;type:uuid;not null;index:idx_sections_questionnaire_order,priority:1" json:"formId"`
	SectionTitle           *string   `gorm:"column:section_title;type:varchar(255)" json:"title"`
	SectionDescription     *string   `gorm:"column:section_description;type:text" json:"description"`
	SectionOrder           int       `gorm:"column:section_order;not null;default:1;index:idx_sections_questionnaire_order,priority:2" json:"order"`
	// index of the section in the authoring payload, breaks order ties
	SectionPosition int `gorm:"column:section_position;not null;default:0" json:"-"`

	SectionCreatedAt time.Time `gorm:"column:section_created_at;autoCreateTime" json:"createdAt"`
	SectionUpdatedAt time.Time `gorm:"column:section_updated_at;autoUpdateTime" json:"updatedAt"`

	Questions []QuestionModel `gorm:"foreignKey:QuestionSectionID;references:SectionID;constraint:OnDelete:CASCADE" json:"questions"`
}

func (SectionModel) TableName() string { return "sections" }

func (m *SectionModel) BeforeCreate(tx *gorm.DB) error {
	if m.SectionID == uuid.Nil {
		m.SectionID = uuid.New()
	}
	return nil
}
