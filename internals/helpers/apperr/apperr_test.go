package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestFromDB(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"unique pg", &pgconn.PgError{Code: "23505"}, KindConflict},
		{"fk pg wrapped", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"}), KindValidation},
		{"not null pg", &pgconn.PgError{Code: "23502", Message: "null value"}, KindValidation},
		{"translated duplicate", gorm.ErrDuplicatedKey, KindConflict},
		{"translated fk", gorm.ErrForeignKeyViolated, KindValidation},
		{"other", errors.New("connection reset"), KindPersistence},
		{"already classified", NotFound("questionnaire", "x"), KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromDB("create questionnaire", tt.err)
			if KindOf(got) != tt.want {
				t.Fatalf("kind = %v, want %v (%v)", KindOf(got), tt.want, got)
			}
		})
	}
	if FromDB("noop", nil) != nil {
		t.Fatal("nil error should stay nil")
	}
}

func TestKindStatus(t *testing.T) {
	if KindValidation.Status() != http.StatusBadRequest ||
		KindNotFound.Status() != http.StatusNotFound ||
		KindConflict.Status() != http.StatusConflict ||
		KindPersistence.Status() != http.StatusInternalServerError {
		t.Fatal("unexpected status mapping")
	}
}

func TestUnwrapKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Persistence("submit response", cause)
	if !errors.Is(err, cause) {
		t.Fatal("cause should be reachable via errors.Is")
	}
	if KindOf(errors.New("plain")) != KindPersistence {
		t.Fatal("unclassified errors are persistence errors")
	}
	if !Is(fmt.Errorf("wrap: %w", Validation("bad", nil)), KindValidation) {
		t.Fatal("Is should see through wrapping")
	}
}
