package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	qmodel "github.com/shaunchuang/DtxEx/internals/features/surveys/questionnaires/model"
	usermodel "github.com/shaunchuang/DtxEx/internals/features/users/user/model"
)

type ResponseStatus string

const (
	ResponseStatusDraft     ResponseStatus = "DRAFT"
	ResponseStatusSubmitted ResponseStatus = "SUBMITTED"
	ResponseStatusCompleted ResponseStatus = "COMPLETED"
)

// ResponseModel is one respondent's answer set for one questionnaire; the
// (form, user) pair is unique.
type ResponseModel struct {
	ResponseID             uuid.UUID      `gorm:"column:response_id;type:uuid;primaryKey" json:"id"`
	ResponseFormID         uuid.UUID      `gorm:"column:response_form_id;type:uuid;not null;uniqueIndex:uq_responses_form_user,priority:1" json:"formId"`
	ResponseUserID         string         `gorm:"column:response_user_id;type:varchar(64);not null;uniqueIndex:uq_responses_form_user,priority:2;index:idx_responses_user" json:"userId"`
	ResponseSubmitTime     time.Time      `gorm:"column:response_submit_time;not null" json:"submitTime"`
	ResponseLastUpdateTime *time.Time     `gorm:"column:response_last_update_time" json:"lastUpdateTime"`
	ResponseStatus         ResponseStatus `gorm:"column:response_status;type:varchar(16);not null;default:'DRAFT'" json:"status"`

	ResponseCreatedAt time.Time `gorm:"column:response_created_at;autoCreateTime;index:idx_responses_created_at" json:"createdAt"`
	ResponseUpdatedAt time.Time `gorm:"column:response_updated_at;autoUpdateTime" json:"updatedAt"`

	User          *usermodel.UserModel       `gorm:"foreignKey:ResponseUserID;references:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Questionnaire *qmodel.QuestionnaireModel `gorm:"foreignKey:ResponseFormID;references:QuestionnaireID;constraint:OnDelete:CASCADE" json:"questionnaire,omitempty"`
	Answers       []AnswerModel              `gorm:"foreignKey:AnswerResponseID;references:ResponseID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

func (ResponseModel) TableName() string { return "responses" }

func (m *ResponseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ResponseID == uuid.Nil {
		m.ResponseID = uuid.New()
	}
	return nil
}
