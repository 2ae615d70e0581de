package database

import (
	"fmt"

	"gorm.io/gorm"

	qmodel "github.com/shaunchuang/DtxEx/internals/features/surveys/questionnaires/model"
	rmodel "github.com/shaunchuang/DtxEx/internals/features/surveys/responses/model"
	usermodel "github.com/shaunchuang/DtxEx/internals/features/users/user/model"
)

// Models in dependency order: parents before children.
func Models() []any {
	return []any{
		&qmodel.QuestionnaireModel{},
		&qmodel.SectionModel{},
		&qmodel.QuestionModel{},
		&qmodel.QuestionOptionModel{},
		&usermodel.UserModel{},
		&rmodel.ResponseModel{},
		&rmodel.AnswerModel{},
		&rmodel.AnswerOptionModel{},
	}
}

// Migrate creates or updates tables, foreign keys (all ON DELETE CASCADE)
// and the ordering/uniqueness indexes declared on the models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
