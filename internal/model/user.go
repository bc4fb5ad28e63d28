package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type User struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string    `gorm:"size:255;not null" json:"name"`
	Email             string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash      string    `gorm:"size:255;not null" json:"-"`
	Role              string    `gorm:"size:20;not null" json:"role"`
	Phone             *string   `gorm:"size:50" json:"phone,omitempty"`
	Location          *string   `gorm:"size:255" json:"location,omitempty"`
	Bio               *string   `gorm:"type:text" json:"bio,omitempty"`
	ProfilePictureURL *string   `gorm:"type:text" json:"profile_picture,omitempty"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// AuthToken is one issued bearer credential. The row is the source of truth
// for revocation: a JWT whose jti has no matching row is rejected.
type AuthToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (t *AuthToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// PasswordReset holds at most one live reset record per email. Only the
// bcrypt hash of the mailed token is stored.
type PasswordReset struct {
	Email     string    `gorm:"size:255;primaryKey" json:"email"`
	TokenHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (PasswordReset) TableName() string {
	return "password_resets"
}
