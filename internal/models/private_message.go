package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PrivateMessage is a direct message between two users.
//
// Deleted is a visibility flag, not a row removal: the content stays in
// place so filed reports keep resolving against it. Only a hard DELETE
// (account purge, retention job) makes reports drop out of the
// moderation views.
type PrivateMessage struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatorID   uuid.UUID `gorm:"type:uuid;not null;index" json:"creator_id"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipient_id"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Read        bool      `gorm:"not null;default:false" json:"read"`
	Deleted     bool      `gorm:"not null;default:false" json:"deleted"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Creator   User `gorm:"foreignKey:CreatorID" json:"creator"`
	Recipient User `gorm:"foreignKey:RecipientID" json:"-"`
}

func (m *PrivateMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (PrivateMessage) TableName() string {
	return "private_messages"
}
