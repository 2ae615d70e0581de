package dto

import (
	"github.com/google/uuid"

	"github.com/shaunchuang/DtxEx/internals/features/surveys/forms/service"
	rdto "github.com/shaunchuang/DtxEx/internals/features/surveys/responses/dto"
)

// ValidateFormRequest carries drafts in the same shape as a submission.
type ValidateFormRequest struct {
	Answers []rdto.AnswerRequest `json:"answers" validate:"dive"`
}

// ValidateFormResult is ready to be posted to /api/responses.
type ValidateFormResult struct {
	FormID  uuid.UUID               `json:"formId"`
	Answers []service.AnswerPayload `json:"answers"`
}
