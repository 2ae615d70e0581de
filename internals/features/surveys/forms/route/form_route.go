package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shaunchuang/DtxEx/internals/features/surveys/forms/controller"
)

func FormRoutes(api fiber.Router, db *gorm.DB, log *zap.Logger) {
	ctrl := controller.NewFormController(db, log)

	// 🧾 /questionnaires/:id/form
	f := api.Group("/questionnaires/:id/form")
	f.Get("/", ctrl.GetForm)                 // 🧾 Render model
	f.Post("/validate", ctrl.ValidateDrafts) // ✅ Check drafts, return submission payload
}
