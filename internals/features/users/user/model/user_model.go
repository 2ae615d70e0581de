package model

import (
	"fmt"
	"regexp"
	"time"
)

const (
	AnonymousName   = "Anonymous"
	MaxRespondentID = 64
)

var respondentIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// UserModel is a respondent. Ids are chosen by the client (anything matching
// [A-Za-z0-9_-]{1,64}, UUIDs included); rows are created on first submission.
type UserModel struct {
	UserID    string    `gorm:"column:user_id;type:varchar(64);primaryKey" json:"id"`
	UserName  string    `gorm:"column:user_name;type:varchar(100);not null" json:"name"`
	UserEmail string    `gorm:"column:user_email;type:varchar(255);not null;uniqueIndex:uq_users_email" json:"email"`
	CreatedAt time.Time `gorm:"column:user_created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:user_updated_at;autoUpdateTime" json:"updatedAt"`
}

func (UserModel) TableName() string {
	return "users"
}

func ValidRespondentID(id string) bool {
	return respondentIDPattern.MatchString(id)
}

// PlaceholderEmail is the deterministic address given to respondents who
// submit without one.
func PlaceholderEmail(userID string) string {
	return fmt.Sprintf("user_%s@example.com", userID)
}
