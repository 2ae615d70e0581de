package details

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	formRoute "github.com/shaunchuang/DtxEx/internals/features/surveys/forms/route"
	questionnaireRoute "github.com/shaunchuang/DtxEx/internals/features/surveys/questionnaires/route"
	responseRoute "github.com/shaunchuang/DtxEx/internals/features/surveys/responses/route"
	"github.com/shaunchuang/DtxEx/internals/middlewares"
)

func SurveyRoutes(api fiber.Router, db *gorm.DB, log *zap.Logger) {
	// 📝 Questionnaires (aggregate CRUD + responses per questionnaire)
	questionnaireRoute.QuestionnaireRoutes(api, db, log)

	// 🧾 Form render model + draft validation
	formRoute.FormRoutes(api, db, log)

	// 🗳️ Responses (submit / replace / read)
	api.Use("/responses", middlewares.SubmitRateLimiter())
	responseRoute.ResponseRoutes(api, db, log)
}
