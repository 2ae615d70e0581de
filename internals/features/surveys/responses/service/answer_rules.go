package service

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	qmodel "github.com/shaunchuang/DtxEx/internals/features/surveys/questionnaires/model"
	rmodel "github.com/shaunchuang/DtxEx/internals/features/surveys/responses/model"
	"github.com/shaunchuang/DtxEx/internals/helpers/apperr"
)

type AnswerInput struct {
	QuestionID uuid.UUID
	Value      qmodel.AnswerValue
}

// BuildAnswers checks an answer set against the questionnaire's questions and
// returns the rows to store. Answers to display-only questions and answers
// left empty are dropped; everything else that does not fit its question is
// reported per field.
func BuildAnswers(questions []qmodel.QuestionModel, in []AnswerInput) ([]rmodel.AnswerModel, error) {
	byID := make(map[uuid.UUID]*qmodel.QuestionModel, len(questions))
	for i := range questions {
		byID[questions[i].QuestionID] = &questions[i]
	}

	fields := map[string][]string{}
	add := func(k, msg string) { fields[k] = append(fields[k], msg) }

	seen := make(map[uuid.UUID]bool, len(in))
	answered := make(map[uuid.UUID]bool, len(in))
	out := make([]rmodel.AnswerModel, 0, len(in))

	for i, a := range in {
		prefix := fmt.Sprintf("answers[%d]", i)
		q, ok := byID[a.QuestionID]
		if !ok {
			add(prefix+".questionId", "question does not belong to this questionnaire")
			continue
		}
		if seen[a.QuestionID] {
			add(prefix+".questionId", "question answered more than once")
			continue
		}
		seen[a.QuestionID] = true

		kind := q.Kind()
		if !kind.Answerable() {
			continue
		}
		v := kind.Normalize(a.Value)

		bad := false
		for _, optID := range v.Options {
			if !q.HasOption(optID) {
				add(prefix+".selectedOptions", fmt.Sprintf("option %s does not belong to the question", optID))
				bad = true
			}
		}
		if err := kind.CheckSelections(len(v.Options)); err != nil {
			add(prefix+".selectedOptions", err.Error())
			bad = true
		}
		if bad || !kind.IsAnswered(v) {
			continue
		}

		answered[q.QuestionID] = true
		out = append(out, toAnswerModel(q.QuestionID, v, len(out)))
	}

	for i := range questions {
		q := &questions[i]
		if q.QuestionIsRequired && q.Kind().Answerable() && !answered[q.QuestionID] && !seenWithError(fields, in, q.QuestionID) {
			add("questions."+q.QuestionID.String(), "required question is not answered")
		}
	}

	if len(fields) > 0 {
		return nil, apperr.Validation("answer set is invalid", fields)
	}
	return out, nil
}

// seenWithError avoids reporting a required question twice when its answer
// was already rejected for its content.
func seenWithError(fields map[string][]string, in []AnswerInput, id uuid.UUID) bool {
	for i, a := range in {
		if a.QuestionID != id {
			continue
		}
		if _, ok := fields[fmt.Sprintf("answers[%d].selectedOptions", i)]; ok {
			return true
		}
	}
	return false
}

func toAnswerModel(questionID uuid.UUID, v qmodel.AnswerValue, position int) rmodel.AnswerModel {
	a := rmodel.AnswerModel{
		AnswerQuestionID: questionID,
		AnswerText:       v.Text,
		AnswerPosition:   position,
	}
	if v.Date != nil {
		d := datatypes.Date(*v.Date)
		a.AnswerDate = &d
	}
	for i, optID := range v.Options {
		a.SelectedOptions = append(a.SelectedOptions, rmodel.AnswerOptionModel{
			AnswerOptionOptionID: optID,
			AnswerOptionPosition: i,
		})
	}
	return a
}
