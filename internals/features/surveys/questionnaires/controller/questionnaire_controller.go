package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shaunchuang/DtxEx/internals/features/surveys/questionnaires/dto"
	"github.com/shaunchuang/DtxEx/internals/features/surveys/questionnaires/service"
	helper "github.com/shaunchuang/DtxEx/internals/helpers"
	"github.com/shaunchuang/DtxEx/internals/helpers/apperr"
)

const defaultResponsesLimit = 10

type QuestionnaireController struct {
	Service  *service.QuestionnaireService
	Validate *validator.Validate
}

func NewQuestionnaireController(db *gorm.DB, log *zap.Logger) *QuestionnaireController {
	v := helper.NewValidator()
	if err := dto.RegisterValidations(v); err != nil {
		log.Fatal("register questionnaire validations", zap.Error(err))
	}
	return &QuestionnaireController{
		Service:  service.NewQuestionnaireService(db, log),
		Validate: v,
	}
}

// =============================
// 📄 List / detail
// =============================

func (ctrl *QuestionnaireController) GetAll(c *fiber.Ctx) error {
	rows, err := ctrl.Service.GetAll(c.UserContext())
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", rows)
}

func (ctrl *QuestionnaireController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	q, err := ctrl.Service.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if q == nil {
		return helper.JsonFromError(c, apperr.NotFound("questionnaire", id))
	}
	return helper.JsonOK(c, "", q)
}

// =============================
// ➕ Create
// =============================

func (ctrl *QuestionnaireController) Create(c *fiber.Ctx) error {
	var req dto.CreateQuestionnaireRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, "validation failed", helper.ValidationFields(err))
	}

	q, err := ctrl.Service.Create(c.UserContext(), req.ToModel())
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "questionnaire created", q)
}

// =============================
// ✏️ Update
// =============================

func (ctrl *QuestionnaireController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.UpdateQuestionnaireRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, "validation failed", helper.ValidationFields(err))
	}

	q, err := ctrl.Service.Update(c.UserContext(), id, req.ToPatch())
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "questionnaire updated", q)
}

// =============================
// ❌ Delete
// =============================

func (ctrl *QuestionnaireController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := ctrl.Service.Delete(c.UserContext(), id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "questionnaire deleted")
}

// =============================
// 📊 Responses of a questionnaire
// =============================

func (ctrl *QuestionnaireController) GetResponses(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	paging := helper.ResolvePaging(c, defaultResponsesLimit, 100)

	page, err := ctrl.Service.GetResponses(c.UserContext(), id, paging.Limit, paging.Offset)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", dto.ToQuestionnaireResponsesDTO(page, paging))
}
