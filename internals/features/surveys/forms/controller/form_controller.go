package controller

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shaunchuang/DtxEx/internals/features/surveys/forms/dto"
	"github.com/shaunchuang/DtxEx/internals/features/surveys/forms/service"
	qservice "github.com/shaunchuang/DtxEx/internals/features/surveys/questionnaires/service"
	rdto "github.com/shaunchuang/DtxEx/internals/features/surveys/responses/dto"
	helper "github.com/shaunchuang/DtxEx/internals/helpers"
	"github.com/shaunchuang/DtxEx/internals/helpers/apperr"
)

type FormController struct {
	Questionnaires *qservice.QuestionnaireService
	Validate       *validator.Validate
}

func NewFormController(db *gorm.DB, log *zap.Logger) *FormController {
	return &FormController{
		Questionnaires: qservice.NewQuestionnaireService(db, log),
		Validate:       helper.NewValidator(),
	}
}

func (ctrl *FormController) load(c *fiber.Ctx) (service.Form, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return service.Form{}, err
	}
	q, err := ctrl.Questionnaires.GetByID(c.UserContext(), id)
	if err != nil {
		return service.Form{}, err
	}
	if q == nil {
		return service.Form{}, apperr.NotFound("questionnaire", id)
	}
	return service.Render(q), nil
}

// =============================
// 🧾 Render model
// =============================

func (ctrl *FormController) GetForm(c *fiber.Ctx) error {
	form, err := ctrl.load(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", form)
}

// =============================
// ✅ Validate drafts
// =============================

func (ctrl *FormController) ValidateDrafts(c *fiber.Ctx) error {
	form, err := ctrl.load(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.ValidateFormRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, "validation failed", helper.ValidationFields(err))
	}
	inputs, err := rdto.ToAnswerInputs(req.Answers)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	state := service.NewFormState(form)
	fields := map[string][]string{}
	for i, in := range inputs {
		if err := state.Apply(in.QuestionID, in.Value); err != nil {
			key := fmt.Sprintf("answers[%d]", i)
			fields[key] = append(fields[key], err.Error())
		}
	}
	for k, v := range state.Validate() {
		fields[k] = append(fields[k], v...)
	}
	if len(fields) > 0 {
		return helper.JsonValidationError(c, "form is incomplete", fields)
	}

	return helper.JsonOK(c, "form is valid", dto.ValidateFormResult{
		FormID:  form.QuestionnaireID,
		Answers: state.Submission(),
	})
}
