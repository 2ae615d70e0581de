package seeds

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shaunchuang/DtxEx/internals/configs"
	questionnaires "github.com/shaunchuang/DtxEx/internals/seeds/surveys/questionnaires"
)

func RunAllSeeds(ctx context.Context, db *gorm.DB, log *zap.Logger, cfg configs.SeedConfig) {
	if !cfg.Enabled {
		return
	}
	log = log.Named("seed")

	//* Surveys
	if err := questionnaires.SeedQuestionnairesFromJSON(ctx, db, log, cfg.File); err != nil {
		log.Error("❌ questionnaire seed failed", zap.String("file", cfg.File), zap.Error(err))
	}
}
