package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shaunchuang/DtxEx/internals/features/surveys/questionnaires/model"
	rmodel "github.com/shaunchuang/DtxEx/internals/features/surveys/responses/model"
	"github.com/shaunchuang/DtxEx/internals/helpers/apperr"
)

const insertBatchSize = 200

/* =========================================================
   SERVICE
========================================================= */

type QuestionnaireService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewQuestionnaireService(db *gorm.DB, log *zap.Logger) *QuestionnaireService {
	return &QuestionnaireService{DB: db, Log: log.Named("questionnaires")}
}

// QuestionnairePatch carries the fields of an update. Nil scalars are left
// untouched; ReplaceSections swaps the whole section tree for Sections.
type QuestionnairePatch struct {
	Title           *string
	Description     *string
	ReplaceSections bool
	Sections        []model.SectionModel
}

type ResponsePage struct {
	Questionnaire model.QuestionnaireModel
	Responses     []rmodel.ResponseModel
	Total         int64
}

/* =========================================================
   Hydration
========================================================= */

func orderBy(cols ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, c := range cols {
			db = db.Order(c + " ASC")
		}
		return db
	}
}

// Hydrate preloads sections → questions → options, each level by
// (order, position).
func Hydrate(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Sections", orderBy("section_order", "section_position")).
		Preload("Sections.Questions", orderBy("question_order", "question_position")).
		Preload("Sections.Questions.Options", orderBy("question_option_order", "question_option_position"))
}

/* =========================================================
   CRUD
========================================================= */

func (s *QuestionnaireService) Create(ctx context.Context, in model.QuestionnaireModel) (*model.QuestionnaireModel, error) {
	if err := ValidateAggregate(&in.QuestionnaireTitle, in.Sections); err != nil {
		return nil, err
	}

	q := model.QuestionnaireModel{
		QuestionnaireID:          uuid.New(),
		QuestionnaireTitle:       strings.TrimSpace(in.QuestionnaireTitle),
		QuestionnaireDescription: in.QuestionnaireDescription,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&q).Error; err != nil {
			return apperr.FromDB("create questionnaire", err)
		}
		return insertTree(tx, q.QuestionnaireID, in.Sections)
	})
	if err != nil {
		s.Log.Warn("create questionnaire failed", zap.Error(err))
		return nil, err
	}

	s.Log.Info("questionnaire created",
		zap.String("questionnaire_id", q.QuestionnaireID.String()),
		zap.Int("sections", len(in.Sections)),
	)
	return s.mustGet(ctx, q.QuestionnaireID)
}

// GetByID returns (nil, nil) when the questionnaire does not exist.
func (s *QuestionnaireService) GetByID(ctx context.Context, id uuid.UUID) (*model.QuestionnaireModel, error) {
	var q model.QuestionnaireModel
	err := Hydrate(s.DB.WithContext(ctx)).
		Where("questionnaire_id = ?", id).
		First(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.FromDB("get questionnaire", err)
	}
	return &q, nil
}

// GetAll returns every questionnaire hydrated, newest first.
func (s *QuestionnaireService) GetAll(ctx context.Context) ([]model.QuestionnaireModel, error) {
	var rows []model.QuestionnaireModel
	err := Hydrate(s.DB.WithContext(ctx)).
		Order("questionnaire_created_at DESC").
		Order("questionnaire_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, apperr.FromDB("list questionnaires", err)
	}
	return rows, nil
}

func (s *QuestionnaireService) Update(ctx context.Context, id uuid.UUID, p QuestionnairePatch) (*model.QuestionnaireModel, error) {
	var sections []model.SectionModel
	if p.ReplaceSections {
		sections = p.Sections
	}
	if err := ValidateAggregate(p.Title, sections); err != nil {
		return nil, err
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, id); err != nil {
			return err
		}

		updates := map[string]any{"questionnaire_updated_at": time.Now().UTC()}
		if p.Title != nil {
			updates["questionnaire_title"] = strings.TrimSpace(*p.Title)
		}
		if p.Description != nil {
			updates["questionnaire_description"] = *p.Description
		}
		if err := tx.Model(&model.QuestionnaireModel{}).
			Where("questionnaire_id = ?", id).
			Updates(updates).Error; err != nil {
			return apperr.FromDB("update questionnaire", err)
		}

		if !p.ReplaceSections {
			return nil
		}
		// destructive replace: questions, options and their answers go with the sections
		if err := tx.Where("section_questionnaire_id = ?", id).
			Delete(&model.SectionModel{}).Error; err != nil {
			return apperr.FromDB("delete sections", err)
		}
		return insertTree(tx, id, sections)
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("questionnaire updated",
		zap.String("questionnaire_id", id.String()),
		zap.Bool("sections_replaced", p.ReplaceSections),
	)
	return s.mustGet(ctx, id)
}

// Delete removes the questionnaire; the schema cascades to sections,
// questions, options, responses, answers and answer options.
func (s *QuestionnaireService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).
		Where("questionnaire_id = ?", id).
		Delete(&model.QuestionnaireModel{})
	if res.Error != nil {
		return apperr.FromDB("delete questionnaire", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("questionnaire", id)
	}
	s.Log.Info("questionnaire deleted", zap.String("questionnaire_id", id.String()))
	return nil
}

// GetResponses pages the questionnaire's responses (respondent only, no
// answers), newest first.
func (s *QuestionnaireService) GetResponses(ctx context.Context, id uuid.UUID, limit, offset int) (*ResponsePage, error) {
	db := s.DB.WithContext(ctx)

	var page ResponsePage
	err := db.Select("questionnaire_id", "questionnaire_title", "questionnaire_description").
		Where("questionnaire_id = ?", id).
		First(&page.Questionnaire).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("questionnaire", id)
	}
	if err != nil {
		return nil, apperr.FromDB("get questionnaire", err)
	}

	if err := db.Model(&rmodel.ResponseModel{}).
		Where("response_form_id = ?", id).
		Count(&page.Total).Error; err != nil {
		return nil, apperr.FromDB("count responses", err)
	}

	if err := db.Preload("User").
		Where("response_form_id = ?", id).
		Order("response_created_at DESC").
		Order("response_id ASC").
		Limit(limit).
		Offset(offset).
		Find(&page.Responses).Error; err != nil {
		return nil, apperr.FromDB("list responses", err)
	}
	return &page, nil
}

/* =========================================================
   Question set (used by submissions and forms)
========================================================= */

// LoadQuestionSet returns every question of a questionnaire with its options,
// in display order. db may be a transaction.
func LoadQuestionSet(db *gorm.DB, questionnaireID uuid.UUID) ([]model.QuestionModel, error) {
	var qs []model.QuestionModel
	err := db.Model(&model.QuestionModel{}).
		Select("questions.*").
		Joins("JOIN sections ON sections.section_id = questions.question_section_id").
		Where("sections.section_questionnaire_id = ?", questionnaireID).
		Preload("Options", orderBy("question_option_order", "question_option_position")).
		Order("sections.section_order ASC").
		Order("sections.section_position ASC").
		Order("questions.question_order ASC").
		Order("questions.question_position ASC").
		Find(&qs).Error
	if err != nil {
		return nil, apperr.FromDB("load question set", err)
	}
	return qs, nil
}

/* =========================================================
   Internals
========================================================= */

func ensureExists(tx *gorm.DB, id uuid.UUID) error {
	var n int64
	if err := tx.Model(&model.QuestionnaireModel{}).
		Where("questionnaire_id = ?", id).
		Count(&n).Error; err != nil {
		return apperr.FromDB("get questionnaire", err)
	}
	if n == 0 {
		return apperr.NotFound("questionnaire", id)
	}
	return nil
}

func (s *QuestionnaireService) mustGet(ctx context.Context, id uuid.UUID) (*model.QuestionnaireModel, error) {
	q, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, apperr.NotFound("questionnaire", id)
	}
	return q, nil
}

// insertTree writes the section tree level by level: all sections, then all
// questions, then all options, one batched insert per level.
func insertTree(tx *gorm.DB, questionnaireID uuid.UUID, sections []model.SectionModel) error {
	secs, qs, opts := flattenTree(questionnaireID, sections)

	if len(secs) > 0 {
		if err := tx.Omit(clause.Associations).CreateInBatches(&secs, insertBatchSize).Error; err != nil {
			return apperr.FromDB("create sections", err)
		}
	}
	if len(qs) > 0 {
		if err := tx.Omit(clause.Associations).CreateInBatches(&qs, insertBatchSize).Error; err != nil {
			return apperr.FromDB("create questions", err)
		}
	}
	if len(opts) > 0 {
		if err := tx.Omit(clause.Associations).CreateInBatches(&opts, insertBatchSize).Error; err != nil {
			return apperr.FromDB("create options", err)
		}
	}
	return nil
}

// flattenTree assigns fresh ids, parent keys and input positions.
func flattenTree(questionnaireID uuid.UUID, sections []model.SectionModel) ([]model.SectionModel, []model.QuestionModel, []model.QuestionOptionModel) {
	var (
		secs = make([]model.SectionModel, 0, len(sections))
		qs   []model.QuestionModel
		opts []model.QuestionOptionModel
	)
	for si, sec := range sections {
		sectionID := uuid.New()
		secs = append(secs, model.SectionModel{
			SectionID:              sectionID,
			SectionQuestionnaireID: questionnaireID,
			SectionTitle:           sec.SectionTitle,
			SectionDescription:     sec.SectionDescription,
			SectionOrder:           sec.SectionOrder,
			SectionPosition:        si,
		})
		for qi, q := range sec.Questions {
			questionID := uuid.New()
			qt, _ := model.ParseQuestionType(string(q.QuestionType))
			qs = append(qs, model.QuestionModel{
				QuestionID:          questionID,
				QuestionSectionID:   sectionID,
				QuestionText:        strings.TrimSpace(q.QuestionText),
				QuestionType:        qt,
				QuestionOrder:       q.QuestionOrder,
				QuestionPosition:    qi,
				QuestionIsRequired:  q.QuestionIsRequired,
				QuestionDescription: q.QuestionDescription,
			})
			for oi, o := range q.Options {
				opts = append(opts, model.QuestionOptionModel{
					QuestionOptionID:         uuid.New(),
					QuestionOptionQuestionID: questionID,
					QuestionOptionText:       strings.TrimSpace(o.QuestionOptionText),
					QuestionOptionValue:      o.QuestionOptionValue,
					QuestionOptionOrder:      o.QuestionOptionOrder,
					QuestionOptionPosition:   oi,
				})
			}
		}
	}
	return secs, qs, opts
}

// ValidateAggregate checks an authoring payload. title is nil on updates that
// leave the title alone.
func ValidateAggregate(title *string, sections []model.SectionModel) error {
	fields := map[string][]string{}
	add := func(k, msg string) { fields[k] = append(fields[k], msg) }

	if title != nil {
		t := strings.TrimSpace(*title)
		switch {
		case t == "":
			add("title", "is required")
		case len([]rune(t)) > 255:
			add("title", "must be at most 255 characters")
		}
	}

	for si, sec := range sections {
		sp := fmt.Sprintf("sections[%d]", si)
		if sec.SectionOrder < 1 {
			add(sp+".order", "must be an integer >= 1")
		}
		for qi, q := range sec.Questions {
			qp := fmt.Sprintf("%s.questions[%d]", sp, qi)
			if strings.TrimSpace(q.QuestionText) == "" {
				add(qp+".questionText", "is required")
			}
			if q.QuestionOrder < 1 {
				add(qp+".order", "must be an integer >= 1")
			}
			qt, ok := model.ParseQuestionType(string(q.QuestionType))
			if !ok {
				add(qp+".questionType", "must be one of "+typeList())
				continue
			}
			kind, _ := qt.Kind()
			switch {
			case kind.RequiresOptions && len(q.Options) == 0:
				add(qp+".options", fmt.Sprintf("%s questions need at least one option", qt))
			case !kind.RequiresOptions && len(q.Options) > 0:
				add(qp+".options", fmt.Sprintf("%s questions do not take options", qt))
			}
			for oi, o := range q.Options {
				op := fmt.Sprintf("%s.options[%d]", qp, oi)
				if strings.TrimSpace(o.QuestionOptionText) == "" {
					add(op+".optionText", "is required")
				}
				if o.QuestionOptionOrder < 1 {
					add(op+".order", "must be an integer >= 1")
				}
			}
		}
	}

	if len(fields) > 0 {
		return apperr.Validation("questionnaire is invalid", fields)
	}
	return nil
}

func typeList() string {
	ts := model.QuestionTypes()
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
