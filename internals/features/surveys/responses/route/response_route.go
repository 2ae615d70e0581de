package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shaunchuang/DtxEx/internals/features/surveys/responses/controller"
)

func ResponseRoutes(api fiber.Router, db *gorm.DB, log *zap.Logger) {
	ctrl := controller.NewResponseController(db, log)

	// 🗳️ /responses
	r := api.Group("/responses")
	r.Get("/", ctrl.GetAll)                // 📄 All responses (paginated)
	r.Post("/", ctrl.Submit)               // ➕ Submit or resubmit
	r.Get("/user/:userId", ctrl.GetByUser) // 👤 Responses of one respondent (?formId=)
	r.Get("/:id", ctrl.GetByID)            // 🔍 Detail (hydrated)
	r.Put("/:id", ctrl.Update)             // ✏️ Replace answers
	r.Delete("/:id", ctrl.Delete)          // ❌ Delete (cascade)
}
