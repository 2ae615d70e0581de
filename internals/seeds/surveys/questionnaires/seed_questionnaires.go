package questionnaires

import (
	"context"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"gorm.io/gorm"

	qdto "github.com/shaunchuang/DtxEx/internals/features/surveys/questionnaires/dto"
	qmodel "github.com/shaunchuang/DtxEx/internals/features/surveys/questionnaires/model"
	qservice "github.com/shaunchuang/DtxEx/internals/features/surveys/questionnaires/service"
	userService "github.com/shaunchuang/DtxEx/internals/features/users/user/service"
)

type RespondentSeed struct {
	ID    string  `json:"id"`
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type SurveySeed struct {
	Users          []RespondentSeed                  `json:"users"`
	Questionnaires []qdto.CreateQuestionnaireRequest `json:"questionnaires"`
}

// SeedQuestionnairesFromJSON creates respondents and questionnaires from
// filePath. Questionnaires whose title already exists are skipped.
func SeedQuestionnairesFromJSON(ctx context.Context, db *gorm.DB, log *zap.Logger, filePath string) error {
	log.Info("📥 Reading seed file", zap.String("file", filePath))

	file, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var seed SurveySeed
	if err := sonic.Unmarshal(file, &seed); err != nil {
		return fmt.Errorf("decode seed file: %w", err)
	}

	for _, u := range seed.Users {
		if _, err := userService.EnsureRespondent(ctx, db, log, userService.RespondentInput{
			UserID: u.ID,
			Name:   u.Name,
			Email:  u.Email,
		}); err != nil {
			return fmt.Errorf("seed respondent %s: %w", u.ID, err)
		}
	}

	svc := qservice.NewQuestionnaireService(db, log)
	created := 0
	for _, req := range seed.Questionnaires {
		var n int64
		if err := db.WithContext(ctx).Model(&qmodel.QuestionnaireModel{}).
			Where("questionnaire_title = ?", req.Title).
			Count(&n).Error; err != nil {
			return fmt.Errorf("check questionnaire %q: %w", req.Title, err)
		}
		if n > 0 {
			log.Info("ℹ️ Questionnaire already exists, skipped", zap.String("title", req.Title))
			continue
		}
		if _, err := svc.Create(ctx, req.ToModel()); err != nil {
			return fmt.Errorf("seed questionnaire %q: %w", req.Title, err)
		}
		created++
	}

	log.Info("✅ Seed finished",
		zap.Int("respondents", len(seed.Users)),
		zap.Int("questionnaires_created", created),
	)
	return nil
}
