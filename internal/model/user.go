package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenAccessAuth is the purpose tag carried by every session token.
const TokenAccessAuth = "auth"

// User represents a registered account. Only ID and email are ever
// serialized to clients; the wire contract uses "_id".
type User struct {
	ID           uuid.UUID   `json:"_id" gorm:"type:char(36);primaryKey"`
	Email        string      `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string      `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Tokens       []AuthToken `json:"-" gorm:"foreignKey:UserID"`
	CreatedAt    time.Time   `json:"-"`
	UpdatedAt    time.Time   `json:"-"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// AuthToken is one entry in a user's live session list. A user holds one row
// per active session; logout deletes the row whose Token matches exactly.
type AuthToken struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	UserID    uuid.UUID `json:"-" gorm:"type:char(36);not null;index"`
	Access    string    `json:"access" gorm:"size:20;not null"`
	Token     string    `json:"token" gorm:"size:512;not null;index"`
	CreatedAt time.Time `json:"-"`
}
