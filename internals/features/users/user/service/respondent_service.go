package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	usermodel "github.com/shaunchuang/DtxEx/internals/features/users/user/model"
	"github.com/shaunchuang/DtxEx/internals/helpers/apperr"
)

type RespondentInput struct {
	UserID string
	Name   *string
	Email  *string
}

// EnsureRespondent returns the respondent row for in.UserID, inserting it with
// the given or placeholder name/email when missing. Existing rows are never
// modified. db may be a transaction.
func EnsureRespondent(ctx context.Context, db *gorm.DB, log *zap.Logger, in RespondentInput) (*usermodel.UserModel, error) {
	if !usermodel.ValidRespondentID(in.UserID) {
		return nil, apperr.Validation("invalid user id", map[string][]string{
			"userId": {"must be 1-64 characters of letters, digits, '-' or '_'"},
		})
	}

	u := usermodel.UserModel{
		UserID:    in.UserID,
		UserName:  usermodel.AnonymousName,
		UserEmail: usermodel.PlaceholderEmail(in.UserID),
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		u.UserName = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil && strings.TrimSpace(*in.Email) != "" {
		u.UserEmail = strings.ToLower(strings.TrimSpace(*in.Email))
	}

	res := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&u)
	if res.Error != nil {
		return nil, apperr.FromDB("create respondent", res.Error)
	}
	if res.RowsAffected > 0 {
		log.Debug("respondent created", zap.String("user_id", u.UserID))
		return &u, nil
	}

	// nothing inserted: either the id exists or the email belongs to someone else
	var existing usermodel.UserModel
	if err := db.WithContext(ctx).Where("user_id = ?", in.UserID).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Conflict("email " + u.UserEmail + " is already used by another respondent")
		}
		return nil, apperr.FromDB("load respondent", err)
	}
	return &existing, nil
}
