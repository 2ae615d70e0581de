package questionnaires

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/shaunchuang/DtxEx/internals/databases/testdb"
	qmodel "github.com/shaunchuang/DtxEx/internals/features/surveys/questionnaires/model"
	qservice "github.com/shaunchuang/DtxEx/internals/features/surveys/questionnaires/service"
	usermodel "github.com/shaunchuang/DtxEx/internals/features/users/user/model"
)

func TestSeedDemoSurveyIsIdempotent(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := SeedQuestionnairesFromJSON(ctx, db, zap.NewNop(), "data_questionnaires.json"); err != nil {
			t.Fatalf("seed run %d: %v", i+1, err)
		}
	}

	var n int64
	db.Model(&qmodel.QuestionnaireModel{}).Count(&n)
	if n != 1 {
		t.Fatalf("questionnaires = %d, want 1", n)
	}
	db.Model(&usermodel.UserModel{}).Where("user_id = ?", "demo-user").Count(&n)
	if n != 1 {
		t.Fatalf("demo respondent missing")
	}

	all, err := qservice.NewQuestionnaireService(db, zap.NewNop()).GetAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	q := all[0]
	if len(q.Sections) != 2 || q.QuestionCount() != 5 {
		t.Fatalf("sections=%d questions=%d", len(q.Sections), q.QuestionCount())
	}
	scale := q.Sections[1].Questions[0]
	if scale.QuestionType != qmodel.QuestionTypeScale || len(scale.Options) != 5 {
		t.Fatalf("scale question = %+v", scale)
	}
}

func TestSeedMissingFile(t *testing.T) {
	db := testdb.Open(t)
	if err := SeedQuestionnairesFromJSON(context.Background(), db, zap.NewNop(), "nope.json"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
