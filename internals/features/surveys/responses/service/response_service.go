package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	qmodel "github.com/shaunchuang/DtxEx/internals/features/surveys/questionnaires/model"
	qservice "github.com/shaunchuang/DtxEx/internals/features/surveys/questionnaires/service"
	rmodel "github.com/shaunchuang/DtxEx/internals/features/surveys/responses/model"
	userservice "github.com/shaunchuang/DtxEx/internals/features/users/user/service"
	"github.com/shaunchuang/DtxEx/internals/helpers/apperr"
)

const insertBatchSize = 200

type ResponseService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewResponseService(db *gorm.DB, log *zap.Logger) *ResponseService {
	return &ResponseService{DB: db, Log: log.Named("responses")}
}

type SubmitInput struct {
	FormID    uuid.UUID
	UserID    string
	UserName  *string
	UserEmail *string
	Answers   []AnswerInput
}

// Hydrate preloads respondent, questionnaire, answers → question and
// answers → selected options → option.
func Hydrate(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Questionnaire").
		Preload("Answers", func(db *gorm.DB) *gorm.DB { return db.Order("answer_position ASC") }).
		Preload("Answers.Question").
		Preload("Answers.SelectedOptions", func(db *gorm.DB) *gorm.DB { return db.Order("answer_option_position ASC") }).
		Preload("Answers.SelectedOptions.Option")
}

/* =========================================================
   Submit (upsert per questionnaire × respondent)
========================================================= */

func (s *ResponseService) Submit(ctx context.Context, in SubmitInput) (*rmodel.ResponseModel, error) {
	var responseID uuid.UUID

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var formCount int64
		if err := tx.Model(&qmodel.QuestionnaireModel{}).
			Where("questionnaire_id = ?", in.FormID).
			Count(&formCount).Error; err != nil {
			return apperr.FromDB("get questionnaire", err)
		}
		if formCount == 0 {
			return apperr.NotFound("questionnaire", in.FormID)
		}

		questions, err := qservice.LoadQuestionSet(tx, in.FormID)
		if err != nil {
			return err
		}
		answers, err := BuildAnswers(questions, in.Answers)
		if err != nil {
			return err
		}

		if _, err := userservice.EnsureRespondent(ctx, tx, s.Log, userservice.RespondentInput{
			UserID: in.UserID,
			Name:   in.UserName,
			Email:  in.UserEmail,
		}); err != nil {
			return err
		}

		now := time.Now().UTC()
		resp := rmodel.ResponseModel{
			ResponseID:         uuid.New(),
			ResponseFormID:     in.FormID,
			ResponseUserID:     in.UserID,
			ResponseSubmitTime: now,
			ResponseStatus:     rmodel.ResponseStatusCompleted,
		}
		// the unique (form, user) index turns a concurrent second submit into an update
		if err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "response_form_id"}, {Name: "response_user_id"}},
				DoUpdates: clause.Assignments(map[string]any{
					"response_status":           rmodel.ResponseStatusCompleted,
					"response_last_update_time": now,
					"response_updated_at":       now,
				}),
			}).
			Create(&resp).Error; err != nil {
			return apperr.FromDB("save response", err)
		}

		var stored rmodel.ResponseModel
		if err := tx.Select("response_id").
			Where("response_form_id = ? AND response_user_id = ?", in.FormID, in.UserID).
			First(&stored).Error; err != nil {
			return apperr.FromDB("load response", err)
		}
		responseID = stored.ResponseID

		return replaceAnswers(tx, responseID, answers)
	})
	if err != nil {
		s.Log.Warn("submit response failed",
			zap.String("form_id", in.FormID.String()),
			zap.String("user_id", in.UserID),
			zap.Error(err),
		)
		return nil, err
	}

	s.Log.Info("response submitted",
		zap.String("response_id", responseID.String()),
		zap.String("form_id", in.FormID.String()),
		zap.String("user_id", in.UserID),
	)
	return s.mustGet(ctx, responseID)
}

/* =========================================================
   Update (replace answers of an existing response)
========================================================= */

func (s *ResponseService) Update(ctx context.Context, id uuid.UUID, answers []AnswerInput) (*rmodel.ResponseModel, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var resp rmodel.ResponseModel
		if err := tx.Select("response_id", "response_form_id").
			Where("response_id = ?", id).
			First(&resp).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("response", id)
			}
			return apperr.FromDB("load response", err)
		}

		questions, err := qservice.LoadQuestionSet(tx, resp.ResponseFormID)
		if err != nil {
			return err
		}
		rows, err := BuildAnswers(questions, answers)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := tx.Model(&rmodel.ResponseModel{}).
			Where("response_id = ?", id).
			Updates(map[string]any{
				"response_last_update_time": now,
				"response_submit_time":      now,
				"response_updated_at":       now,
			}).Error; err != nil {
			return apperr.FromDB("update response", err)
		}
		return replaceAnswers(tx, id, rows)
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("response updated", zap.String("response_id", id.String()))
	return s.mustGet(ctx, id)
}

/* =========================================================
   Reads & delete
========================================================= */

// GetByID returns (nil, nil) when the response does not exist.
func (s *ResponseService) GetByID(ctx context.Context, id uuid.UUID) (*rmodel.ResponseModel, error) {
	var resp rmodel.ResponseModel
	err := Hydrate(s.DB.WithContext(ctx)).
		Where("response_id = ?", id).
		First(&resp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.FromDB("get response", err)
	}
	return &resp, nil
}

// GetByUser lists a respondent's responses, optionally for one questionnaire.
func (s *ResponseService) GetByUser(ctx context.Context, userID string, formID *uuid.UUID) ([]rmodel.ResponseModel, error) {
	q := Hydrate(s.DB.WithContext(ctx)).Where("response_user_id = ?", userID)
	if formID != nil {
		q = q.Where("response_form_id = ?", *formID)
	}

	var rows []rmodel.ResponseModel
	if err := q.Order("response_created_at DESC").Order("response_id ASC").Find(&rows).Error; err != nil {
		return nil, apperr.FromDB("list user responses", err)
	}
	return rows, nil
}

// List pages every response, newest first.
func (s *ResponseService) List(ctx context.Context, limit, offset int) ([]rmodel.ResponseModel, int64, error) {
	db := s.DB.WithContext(ctx)

	var total int64
	if err := db.Model(&rmodel.ResponseModel{}).Count(&total).Error; err != nil {
		return nil, 0, apperr.FromDB("count responses", err)
	}

	var rows []rmodel.ResponseModel
	if err := Hydrate(db).
		Order("response_created_at DESC").
		Order("response_id ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, apperr.FromDB("list responses", err)
	}
	return rows, total, nil
}

func (s *ResponseService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).
		Where("response_id = ?", id).
		Delete(&rmodel.ResponseModel{})
	if res.Error != nil {
		return apperr.FromDB("delete response", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("response", id)
	}
	s.Log.Info("response deleted", zap.String("response_id", id.String()))
	return nil
}

/* =========================================================
   Internals
========================================================= */

func (s *ResponseService) mustGet(ctx context.Context, id uuid.UUID) (*rmodel.ResponseModel, error) {
	resp, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, apperr.NotFound("response", id)
	}
	return resp, nil
}

// replaceAnswers deletes the response's answers (answer options cascade) and
// inserts the new set: all answers in one batch, then all selected options.
func replaceAnswers(tx *gorm.DB, responseID uuid.UUID, answers []rmodel.AnswerModel) error {
	if err := tx.Where("answer_response_id = ?", responseID).
		Delete(&rmodel.AnswerModel{}).Error; err != nil {
		return apperr.FromDB("delete answers", err)
	}
	if len(answers) == 0 {
		return nil
	}

	var options []rmodel.AnswerOptionModel
	rows := make([]rmodel.AnswerModel, len(answers))
	for i, a := range answers {
		a.AnswerID = uuid.New()
		a.AnswerResponseID = responseID
		for _, o := range a.SelectedOptions {
			o.AnswerOptionID = uuid.New()
			o.AnswerOptionAnswerID = a.AnswerID
			options = append(options, o)
		}
		a.SelectedOptions = nil
		rows[i] = a
	}

	if err := tx.Omit(clause.Associations).CreateInBatches(&rows, insertBatchSize).Error; err != nil {
		return apperr.FromDB("create answers", err)
	}
	if len(options) > 0 {
		if err := tx.Omit(clause.Associations).CreateInBatches(&options, insertBatchSize).Error; err != nil {
			return apperr.FromDB("create answer options", err)
		}
	}
	return nil
}
