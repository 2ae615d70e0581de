package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shaunchuang/DtxEx/internals/helpers/apperr"
)

func TestParseAnswerDate(t *testing.T) {
	want := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2024-03-09", "2024-03-09T00:00:00Z", " 2024-03-09 "} {
		got, err := ParseAnswerDate(in)
		if err != nil || !got.Equal(want) {
			t.Errorf("ParseAnswerDate(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseAnswerDate("09/03/2024"); err == nil {
		t.Error("expected error for unsupported layout")
	}
}

func TestToAnswerInputs(t *testing.T) {
	qid, opt := uuid.NewString(), uuid.NewString()
	text, date, blank := "hello", "2024-03-09", ""

	in := []AnswerRequest{
		{QuestionID: qid, AnswerText: &text},
		{QuestionID: qid, AnswerDate: &date, SelectedOptions: []string{opt}},
		{QuestionID: qid, AnswerDate: &blank},
	}
	out, err := ToAnswerInputs(in)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 || *out[0].Value.Text != "hello" || out[1].Value.Date == nil || len(out[1].Value.Options) != 1 {
		t.Fatalf("inputs = %+v", out)
	}
	if out[2].Value.Date != nil {
		t.Fatal("blank date should stay unset")
	}

	bad := "yesterday"
	_, err = ToAnswerInputs([]AnswerRequest{{QuestionID: qid, AnswerDate: &bad}})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
}
