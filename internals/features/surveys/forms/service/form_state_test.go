package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shaunchuang/DtxEx/internals/features/surveys/questionnaires/model"
)

type formFixture struct {
	form                         Form
	name, gender, visit, improve uuid.UUID
	notice                       uuid.UUID
	male, female, optA, optB     uuid.UUID
}

func question(id uuid.UUID, text string, t model.QuestionType, required bool, opts ...model.QuestionOptionModel) model.QuestionModel {
	return model.QuestionModel{
		QuestionID:         id,
		QuestionText:       text,
		QuestionType:       t,
		QuestionIsRequired: required,
		Options:            opts,
	}
}

func option(id uuid.UUID, text string) model.QuestionOptionModel {
	return model.QuestionOptionModel{QuestionOptionID: id, QuestionOptionText: text}
}

func newFixture() formFixture {
	f := formFixture{
		name: uuid.New(), gender: uuid.New(), visit: uuid.New(), improve: uuid.New(), notice: uuid.New(),
		male: uuid.New(), female: uuid.New(), optA: uuid.New(), optB: uuid.New(),
	}
	q := &model.QuestionnaireModel{
		QuestionnaireID:    uuid.New(),
		QuestionnaireTitle: "Clinic visit",
		Sections: []model.SectionModel{
			{
				SectionID: uuid.New(),
				Questions: []model.QuestionModel{
					question(f.name, "Name", model.QuestionTypeText, true),
					question(f.gender, "Gender", model.QuestionTypeSingleChoice, true, option(f.male, "Male"), option(f.female, "Female")),
					question(f.visit, "Visit date", model.QuestionTypeDate, false),
				},
			},
			{
				SectionID: uuid.New(),
				Questions: []model.QuestionModel{
					question(f.notice, "Thanks for your time", model.QuestionTypeParagraph, true),
					question(f.improve, "What could improve", model.QuestionTypeMultipleChoice, false, option(f.optA, "Parking"), option(f.optB, "Waiting time")),
				},
			},
		},
	}
	f.form = Render(q)
	return f
}

func TestRenderControls(t *testing.T) {
	f := newFixture()
	if len(f.form.Sections) != 2 {
		t.Fatalf("sections = %d", len(f.form.Sections))
	}
	want := []struct {
		control  model.ControlKind
		required bool
		options  int
	}{
		{model.ControlTextInput, true, 0},
		{model.ControlRadioGroup, true, 2},
		{model.ControlDateInput, false, 0},
		{model.ControlStaticText, false, 0},
		{model.ControlCheckboxGroup, false, 2},
	}

	var got []Control
	for _, s := range f.form.Sections {
		got = append(got, s.Controls...)
	}
	if len(got) != len(want) {
		t.Fatalf("controls = %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		c := got[i]
		if c.Control != w.control || c.Required != w.required || len(c.Options) != w.options {
			t.Errorf("control %d (%s) = %s required=%v options=%d", i, c.Label, c.Control, c.Required, len(c.Options))
		}
	}
	if got[1].MaxSelections != 1 || got[4].MaxSelections != model.Unlimited {
		t.Errorf("max selections = %d / %d", got[1].MaxSelections, got[4].MaxSelections)
	}
}

func TestSelectReplacesAndToggleFlips(t *testing.T) {
	f := newFixture()
	s := NewFormState(f.form)

	if err := s.Select(f.gender, f.male); err != nil {
		t.Fatal(err)
	}
	if err := s.Select(f.gender, f.female); err != nil {
		t.Fatal(err)
	}
	if opts := s.Draft(f.gender).Options; len(opts) != 1 || opts[0] != f.female {
		t.Fatalf("radio draft = %v", opts)
	}

	for _, id := range []uuid.UUID{f.optA, f.optB, f.optA} {
		if err := s.Toggle(f.improve, id); err != nil {
			t.Fatal(err)
		}
	}
	if opts := s.Draft(f.improve).Options; len(opts) != 1 || opts[0] != f.optB {
		t.Fatalf("checkbox draft = %v", opts)
	}
}

func TestWrongControlOperations(t *testing.T) {
	f := newFixture()
	s := NewFormState(f.form)

	cases := map[string]error{
		"text on radio":      s.SetText(f.gender, "male"),
		"date on text":       s.SetDate(f.name, time.Now()),
		"select on checkbox": s.Select(f.improve, f.optA),
		"toggle on radio":    s.Toggle(f.gender, f.male),
		"text on paragraph":  s.SetText(f.notice, "hi"),
		"foreign option":     s.Select(f.gender, f.optA),
		"unknown question":   s.SetText(uuid.New(), "x"),
	}
	for name, err := range cases {
		if err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
	if !errors.Is(cases["text on radio"], ErrWrongControl) {
		t.Errorf("want ErrWrongControl, got %v", cases["text on radio"])
	}
	if !errors.Is(cases["foreign option"], ErrUnknownOption) {
		t.Errorf("want ErrUnknownOption, got %v", cases["foreign option"])
	}
	if !errors.Is(cases["unknown question"], ErrUnknownQuestion) {
		t.Errorf("want ErrUnknownQuestion, got %v", cases["unknown question"])
	}
}

func TestValidateFlagsRequiredOnly(t *testing.T) {
	f := newFixture()
	s := NewFormState(f.form)

	fields := s.Validate()
	if len(fields) != 2 {
		t.Fatalf("fields = %v", fields)
	}
	if _, ok := fields[f.notice.String()]; ok {
		t.Fatal("paragraph must never be required")
	}

	_ = s.SetText(f.name, "   ")
	if _, ok := s.Validate()[f.name.String()]; !ok {
		t.Fatal("blank text should not satisfy a required question")
	}

	_ = s.SetText(f.name, "Ann")
	_ = s.Select(f.gender, f.male)
	if fields := s.Validate(); len(fields) != 0 {
		t.Fatalf("fields = %v", fields)
	}
}

func TestSubmissionShape(t *testing.T) {
	f := newFixture()
	s := NewFormState(f.form)

	_ = s.SetText(f.name, " Ann ")
	_ = s.Select(f.gender, f.female)
	_ = s.SetDate(f.visit, time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC))
	_ = s.Toggle(f.improve, f.optB)
	_ = s.Toggle(f.improve, f.optB) // unticked again

	sub := s.Submission()
	if len(sub) != 3 {
		t.Fatalf("submission = %+v", sub)
	}
	if sub[0].QuestionID != f.name || *sub[0].AnswerText != "Ann" || sub[0].SelectedOptions != nil {
		t.Errorf("name = %+v", sub[0])
	}
	if sub[1].QuestionID != f.gender || len(sub[1].SelectedOptions) != 1 || sub[1].AnswerText != nil {
		t.Errorf("gender = %+v", sub[1])
	}
	if sub[2].QuestionID != f.visit || *sub[2].AnswerDate != "2024-03-09" {
		t.Errorf("visit = %+v", sub[2])
	}
}

func TestApply(t *testing.T) {
	f := newFixture()
	s := NewFormState(f.form)
	text := "Bob"

	if err := s.Apply(f.name, model.AnswerValue{Text: &text}); err != nil {
		t.Fatal(err)
	}
	if err := s.Apply(f.improve, model.AnswerValue{Options: []uuid.UUID{f.optA, f.optB, f.optA}}); err != nil {
		t.Fatal(err)
	}
	if opts := s.Draft(f.improve).Options; len(opts) != 2 {
		t.Fatalf("checkbox draft = %v", opts)
	}
	if err := s.Apply(f.notice, model.AnswerValue{Text: &text}); err != nil {
		t.Fatalf("paragraph values are ignored: %v", err)
	}
	if err := s.Apply(f.gender, model.AnswerValue{Options: []uuid.UUID{f.male, f.female}}); err == nil {
		t.Fatal("radio with two options should fail")
	}
	if err := s.Apply(f.gender, model.AnswerValue{Text: &text}); !errors.Is(err, ErrWrongControl) {
		t.Fatalf("want ErrWrongControl, got %v", err)
	}
}
