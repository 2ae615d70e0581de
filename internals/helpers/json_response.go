package helper

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/shaunchuang/DtxEx/internals/helpers/apperr"
)

/* ===============================
   Pagination
=================================*/

type Pagination struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// maxOffset keeps (page-1)*limit inside a 32-bit OFFSET.
const maxOffset = math.MaxInt32

type Paging struct {
	Page   int
	Limit  int
	Offset int
}

// ResolvePaging reads ?page= and ?limit= and normalises them.
// maxLimit 0 means no upper bound.
func ResolvePaging(c *fiber.Ctx, defaultLimit, maxLimit int) Paging {
	page, _ := strconv.Atoi(strings.TrimSpace(c.Query("page", "1")))
	if page < 1 {
		page = 1
	}

	limit, _ := strconv.Atoi(strings.TrimSpace(c.Query("limit", strconv.Itoa(defaultLimit))))
	if limit <= 0 {
		limit = defaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}

	if maxPage := maxOffset/limit + 1; page > maxPage {
		page = maxPage
	}

	return Paging{Page: page, Limit: limit, Offset: (page - 1) * limit}
}

func BuildPagination(total int64, page, limit int) Pagination {
	if limit <= 0 {
		limit = 10
	}
	if page <= 0 {
		page = 1
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit)) // ceil
	return Pagination{
		Page:        page,
		Limit:       limit,
		TotalCount:  total,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

/* ===============================
   Error helpers (standard shape)
=================================*/

type ErrorResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Error   string              `json:"error,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func statusToErrorCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case fiber.StatusTooManyRequests:
		return "TOO_MANY_REQUESTS"
	default:
		if status >= 500 {
			return "INTERNAL_ERROR"
		}
		return "ERROR"
	}
}

// JsonError: generic, non-validation error
func JsonError(c *fiber.Ctx, status int, message string) error {
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	if strings.TrimSpace(message) == "" {
		message = fiber.ErrInternalServerError.Message
	}
	return c.Status(status).JSON(ErrorResponse{
		Success: false,
		Message: message,
		Error:   statusToErrorCode(status),
	})
}

// JsonValidationError: 400 with per-field messages
func JsonValidationError(c *fiber.Ctx, message string, fieldErrors map[string][]string) error {
	if fieldErrors == nil {
		fieldErrors = map[string][]string{}
	}
	if strings.TrimSpace(message) == "" {
		message = "validation failed"
	}
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Success: false,
		Message: message,
		Error:   apperr.KindValidation.String(),
		Errors:  fieldErrors,
	})
}

// JsonFromError renders service and fiber errors. Storage failures are
// reported without their cause; the cause is left in Locals for the request
// logger.
func JsonFromError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}

	var ae *apperr.Error
	if !errors.As(err, &ae) {
		ae = apperr.Persistence("request", err)
	}
	switch ae.Kind {
	case apperr.KindValidation:
		return JsonValidationError(c, ae.Message, ae.Fields)
	case apperr.KindPersistence:
		c.Locals("error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Success: false,
			Message: "internal server error",
			Error:   ae.Kind.String(),
		})
	default:
		return c.Status(ae.Kind.Status()).JSON(ErrorResponse{
			Success: false,
			Message: ae.Message,
			Error:   ae.Kind.String(),
		})
	}
}

/* ===============================
   JSON responses (standard success)
=================================*/

func jsonSuccess(c *fiber.Ctx, status int, message string, data any) error {
	body := fiber.Map{"success": true, "data": data}
	if strings.TrimSpace(message) != "" {
		body["message"] = message
	}
	return c.Status(status).JSON(body)
}

// JsonOK: generic success (GET detail etc.)
func JsonOK(c *fiber.Ctx, message string, data any) error {
	return jsonSuccess(c, fiber.StatusOK, message, data)
}

// JsonCreated: POST
func JsonCreated(c *fiber.Ctx, message string, data any) error {
	return jsonSuccess(c, fiber.StatusCreated, message, data)
}

// JsonUpdated: PUT/PATCH
func JsonUpdated(c *fiber.Ctx, message string, data any) error {
	return jsonSuccess(c, fiber.StatusOK, message, data)
}

// JsonDeleted: DELETE
func JsonDeleted(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": message})
}
