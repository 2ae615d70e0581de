package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shaunchuang/DtxEx/internals/features/surveys/responses/dto"
	"github.com/shaunchuang/DtxEx/internals/features/surveys/responses/service"
	usermodel "github.com/shaunchuang/DtxEx/internals/features/users/user/model"
	helper "github.com/shaunchuang/DtxEx/internals/helpers"
	"github.com/shaunchuang/DtxEx/internals/helpers/apperr"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type ResponseController struct {
	Service  *service.ResponseService
	Validate *validator.Validate
}

func NewResponseController(db *gorm.DB, log *zap.Logger) *ResponseController {
	return &ResponseController{
		Service:  service.NewResponseService(db, log),
		Validate: helper.NewValidator(),
	}
}

// =============================
// ➕ Submit (upsert per form × user)
// =============================

func (ctrl *ResponseController) Submit(c *fiber.Ctx) error {
	var req dto.SubmitResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, "validation failed", helper.ValidationFields(err))
	}

	in, err := req.ToInput()
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	resp, err := ctrl.Service.Submit(c.UserContext(), in)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "response submitted", resp)
}

// =============================
// 📄 List / detail
// =============================

func (ctrl *ResponseController) GetAll(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, defaultListLimit, maxListLimit)
	rows, total, err := ctrl.Service.List(c.UserContext(), paging.Limit, paging.Offset)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", dto.ToResponseListDTO(rows, total, paging))
}

func (ctrl *ResponseController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	resp, err := ctrl.Service.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if resp == nil {
		return helper.JsonFromError(c, apperr.NotFound("response", id))
	}
	return helper.JsonOK(c, "", resp)
}

func (ctrl *ResponseController) GetByUser(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if !usermodel.ValidRespondentID(userID) {
		return helper.JsonValidationError(c, "invalid userId", map[string][]string{
			"userId": {"must be 1-64 characters of letters, digits, '-' or '_'"},
		})
	}

	var formID *uuid.UUID
	if raw := c.Query("formId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonValidationError(c, "invalid formId", map[string][]string{"formId": {"must be a valid UUID"}})
		}
		formID = &id
	}

	rows, err := ctrl.Service.GetByUser(c.UserContext(), userID, formID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", rows)
}

// =============================
// ✏️ Update (replace answers)
// =============================

func (ctrl *ResponseController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.UpdateResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, "validation failed", helper.ValidationFields(err))
	}
	answers, err := dto.ToAnswerInputs(req.Answers)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	resp, err := ctrl.Service.Update(c.UserContext(), id, answers)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "response updated", resp)
}

// =============================
// ❌ Delete
// =============================

func (ctrl *ResponseController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := ctrl.Service.Delete(c.UserContext(), id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "response deleted")
}
