package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shaunchuang/DtxEx/internals/features/surveys/questionnaires/controller"
)

func QuestionnaireRoutes(api fiber.Router, db *gorm.DB, log *zap.Logger) {
	ctrl := controller.NewQuestionnaireController(db, log)

	// 📝 /questionnaires
	q := api.Group("/questionnaires")
	q.Get("/", ctrl.GetAll)                    // 📄 All questionnaires (hydrated)
	q.Post("/", ctrl.Create)                   // ➕ Create with sections/questions/options
	q.Get("/:id", ctrl.GetByID)                // 🔍 Detail
	q.Put("/:id", ctrl.Update)                 // ✏️ Update (sections replaces the tree)
	q.Delete("/:id", ctrl.Delete)              // ❌ Delete (cascade)
	q.Get("/:id/responses", ctrl.GetResponses) // 📊 Responses per questionnaire (paginated)
}
