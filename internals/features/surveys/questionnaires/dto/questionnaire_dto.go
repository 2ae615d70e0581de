package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/shaunchuang/DtxEx/internals/features/surveys/questionnaires/model"
	"github.com/shaunchuang/DtxEx/internals/features/surveys/questionnaires/service"
	rmodel "github.com/shaunchuang/DtxEx/internals/features/surveys/responses/model"
	helper "github.com/shaunchuang/DtxEx/internals/helpers"
)

// RegisterValidations adds the question_type rule.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation("question_type", func(fl validator.FieldLevel) bool {
		_, ok := model.ParseQuestionType(fl.Field().String())
		return ok
	})
}

// =============================
// 📥 Request DTO (Create / Update)
// =============================

type OptionRequest struct {
	OptionText  string  `json:"optionText" validate:"required,max=500"`
	OptionValue *string `json:"optionValue" validate:"omitempty,max=100"`
	Order       int     `json:"order" validate:"required,min=1"`
}

type QuestionRequest struct {
	QuestionText string          `json:"questionText" validate:"required"`
	QuestionType string          `json:"questionType" validate:"required,question_type"`
	Order        int             `json:"order" validate:"required,min=1"`
	IsRequired   bool            `json:"isRequired"`
	Description  *string         `json:"description"`
	Options      []OptionRequest `json:"options" validate:"dive"`
}

type SectionRequest struct {
	Title       *string           `json:"title" validate:"omitempty,max=255"`
	Description *string           `json:"description"`
	Order       int               `json:"order" validate:"required,min=1"`
	Questions   []QuestionRequest `json:"questions" validate:"dive"`
}

type CreateQuestionnaireRequest struct {
	Title       string           `json:"title" validate:"required,max=255"`
	Description *string          `json:"description"`
	Sections    []SectionRequest `json:"sections" validate:"dive"`
}

// UpdateQuestionnaireRequest: absent fields are left alone. A present
// "sections" (even []) replaces the whole tree.
type UpdateQuestionnaireRequest struct {
	Title       *string          `json:"title" validate:"omitempty,max=255"`
	Description *string          `json:"description"`
	Sections    []SectionRequest `json:"sections" validate:"dive"`
}

// =============================
// 📤 Response DTO
// =============================

type QuestionnaireSummary struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
}

type QuestionnaireResponsesDTO struct {
	Questionnaire QuestionnaireSummary   `json:"questionnaire"`
	Responses     []rmodel.ResponseModel `json:"responses"`
	Pagination    helper.Pagination      `json:"pagination"`
}

// =============================
// 🔁 Converters
// =============================

func toSectionModels(in []SectionRequest) []model.SectionModel {
	out := make([]model.SectionModel, 0, len(in))
	for _, s := range in {
		sec := model.SectionModel{
			SectionTitle:       s.Title,
			SectionDescription: s.Description,
			SectionOrder:       s.Order,
		}
		for _, q := range s.Questions {
			qt, _ := model.ParseQuestionType(q.QuestionType)
			qm := model.QuestionModel{
				QuestionText:        q.QuestionText,
				QuestionType:        qt,
				QuestionOrder:       q.Order,
				QuestionIsRequired:  q.IsRequired,
				QuestionDescription: q.Description,
			}
			for _, o := range q.Options {
				qm.Options = append(qm.Options, model.QuestionOptionModel{
					QuestionOptionText:  o.OptionText,
					QuestionOptionValue: o.OptionValue,
					QuestionOptionOrder: o.Order,
				})
			}
			sec.Questions = append(sec.Questions, qm)
		}
		out = append(out, sec)
	}
	return out
}

func (r CreateQuestionnaireRequest) ToModel() model.QuestionnaireModel {
	return model.QuestionnaireModel{
		QuestionnaireTitle:       r.Title,
		QuestionnaireDescription: r.Description,
		Sections:                 toSectionModels(r.Sections),
	}
}

func (r UpdateQuestionnaireRequest) ToPatch() service.QuestionnairePatch {
	p := service.QuestionnairePatch{
		Title:       r.Title,
		Description: r.Description,
	}
	if r.Sections != nil {
		p.ReplaceSections = true
		p.Sections = toSectionModels(r.Sections)
	}
	return p
}

func ToQuestionnaireResponsesDTO(page *service.ResponsePage, paging helper.Paging) QuestionnaireResponsesDTO {
	responses := page.Responses
	if responses == nil {
		responses = []rmodel.ResponseModel{}
	}
	return QuestionnaireResponsesDTO{
		Questionnaire: QuestionnaireSummary{
			ID:          page.Questionnaire.QuestionnaireID,
			Title:       page.Questionnaire.QuestionnaireTitle,
			Description: page.Questionnaire.QuestionnaireDescription,
		},
		Responses:  responses,
		Pagination: helper.BuildPagination(page.Total, paging.Page, paging.Limit),
	}
}
