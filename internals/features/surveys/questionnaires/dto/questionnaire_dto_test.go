package dto

import (
	"encoding/json"
	"testing"

	"github.com/shaunchuang/DtxEx/internals/features/surveys/questionnaires/model"
	helper "github.com/shaunchuang/DtxEx/internals/helpers"
)

func TestUpdateSectionsPresence(t *testing.T) {
	cases := map[string]bool{
		`{"title":"x"}`:                 false,
		`{"title":"x","sections":null}`: false,
		`{"sections":[]}`:               true,
		`{"sections":[{"order":1}]}`:    true,
	}
	for body, replace := range cases {
		var req UpdateQuestionnaireRequest
		if err := json.Unmarshal([]byte(body), &req); err != nil {
			t.Fatal(err)
		}
		if got := req.ToPatch().ReplaceSections; got != replace {
			t.Errorf("%s: ReplaceSections = %v, want %v", body, got, replace)
		}
	}
}

func TestToModelNormalisesQuestionType(t *testing.T) {
	req := CreateQuestionnaireRequest{
		Title: "Satisfaction",
		Sections: []SectionRequest{{
			Order: 1,
			Questions: []QuestionRequest{{
				QuestionText: "Rate us", QuestionType: "scale", Order: 1,
				Options: []OptionRequest{{OptionText: "1", Order: 1}},
			}},
		}},
	}
	m := req.ToModel()
	q := m.Sections[0].Questions[0]
	if q.QuestionType != model.QuestionTypeScale || len(q.Options) != 1 {
		t.Fatalf("question = %+v", q)
	}
}

func TestQuestionTypeRule(t *testing.T) {
	v := helper.NewValidator()
	if err := RegisterValidations(v); err != nil {
		t.Fatal(err)
	}
	ok := QuestionRequest{QuestionText: "Q", QuestionType: "DATE", Order: 1}
	if err := v.Struct(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := QuestionRequest{QuestionText: "Q", QuestionType: "ESSAY", Order: 1}
	fields := helper.ValidationFields(v.Struct(bad))
	if msgs := fields["questionType"]; len(msgs) != 1 {
		t.Fatalf("fields = %v", fields)
	}
}
