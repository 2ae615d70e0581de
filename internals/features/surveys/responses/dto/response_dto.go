package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	qmodel "github.com/shaunchuang/DtxEx/internals/features/surveys/questionnaires/model"
	rmodel "github.com/shaunchuang/DtxEx/internals/features/surveys/responses/model"
	"github.com/shaunchuang/DtxEx/internals/features/surveys/responses/service"
	helper "github.com/shaunchuang/DtxEx/internals/helpers"
	"github.com/shaunchuang/DtxEx/internals/helpers/apperr"
)

// =============================
// 📥 Request DTO
// =============================

type AnswerRequest struct {
	QuestionID      string   `json:"questionId" validate:"required,uuid"`
	AnswerText      *string  `json:"answerText"`
	AnswerDate      *string  `json:"answerDate"`
	SelectedOptions []string `json:"selectedOptions" validate:"dive,uuid"`
}

type SubmitResponseRequest struct {
	FormID    string          `json:"formId" validate:"required,uuid"`
	UserID    string          `json:"userId" validate:"required,respondent_id"`
	UserName  *string         `json:"userName" validate:"omitempty,max=100"`
	UserEmail *string         `json:"userEmail" validate:"omitempty,email,max=255"`
	Answers   []AnswerRequest `json:"answers" validate:"required,dive"`
}

type UpdateResponseRequest struct {
	Answers []AnswerRequest `json:"answers" validate:"required,dive"`
}

// =============================
// 📤 Response DTO
// =============================

type ResponseListDTO struct {
	Responses  []rmodel.ResponseModel `json:"responses"`
	Pagination helper.Pagination      `json:"pagination"`
}

func ToResponseListDTO(rows []rmodel.ResponseModel, total int64, paging helper.Paging) ResponseListDTO {
	if rows == nil {
		rows = []rmodel.ResponseModel{}
	}
	return ResponseListDTO{
		Responses:  rows,
		Pagination: helper.BuildPagination(total, paging.Page, paging.Limit),
	}
}

// =============================
// 🔁 Converters
// =============================

var dateLayouts = []string{"2006-01-02", time.RFC3339, time.RFC3339Nano}

// ParseAnswerDate accepts YYYY-MM-DD or an RFC3339 timestamp.
func ParseAnswerDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("must be a date (YYYY-MM-DD or RFC3339)")
}

// ToAnswerInputs converts validated answer requests; unparseable dates are
// reported as field errors.
func ToAnswerInputs(in []AnswerRequest) ([]service.AnswerInput, error) {
	out := make([]service.AnswerInput, 0, len(in))
	fields := map[string][]string{}

	for i, a := range in {
		qid, err := uuid.Parse(a.QuestionID)
		if err != nil {
			fields[fmt.Sprintf("answers[%d].questionId", i)] = []string{"must be a valid UUID"}
			continue
		}
		v := qmodel.AnswerValue{Text: a.AnswerText}
		if a.AnswerDate != nil && strings.TrimSpace(*a.AnswerDate) != "" {
			d, err := ParseAnswerDate(*a.AnswerDate)
			if err != nil {
				fields[fmt.Sprintf("answers[%d].answerDate", i)] = []string{err.Error()}
				continue
			}
			v.Date = &d
		}
		for j, raw := range a.SelectedOptions {
			oid, err := uuid.Parse(raw)
			if err != nil {
				fields[fmt.Sprintf("answers[%d].selectedOptions[%d]", i, j)] = []string{"must be a valid UUID"}
				continue
			}
			v.Options = append(v.Options, oid)
		}
		out = append(out, service.AnswerInput{QuestionID: qid, Value: v})
	}

	if len(fields) > 0 {
		return nil, apperr.Validation("answers are invalid", fields)
	}
	return out, nil
}

func (r SubmitResponseRequest) ToInput() (service.SubmitInput, error) {
	formID, err := uuid.Parse(r.FormID)
	if err != nil {
		return service.SubmitInput{}, apperr.Validation("invalid formId", map[string][]string{"formId": {"must be a valid UUID"}})
	}
	answers, err := ToAnswerInputs(r.Answers)
	if err != nil {
		return service.SubmitInput{}, err
	}
	return service.SubmitInput{
		FormID:    formID,
		UserID:    strings.TrimSpace(r.UserID),
		UserName:  r.UserName,
		UserEmail: r.UserEmail,
		Answers:   answers,
	}, nil
}
