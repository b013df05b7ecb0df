package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Todo is a single task owned by exactly one user. CompletedAt is an epoch
// millisecond timestamp and is non-nil iff Completed is true; every mutation
// path maintains that pairing.
type Todo struct {
	ID          uuid.UUID `json:"_id" gorm:"type:char(36);primaryKey"`
	Text        string    `json:"text" gorm:"type:text;not null"`
	Completed   bool      `json:"completed" gorm:"not null;default:false"`
	CompletedAt *int64    `json:"completedAt" gorm:"type:bigint"`
	CreatorID   uuid.UUID `json:"_creator" gorm:"type:char(36);not null;index"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Todo) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
