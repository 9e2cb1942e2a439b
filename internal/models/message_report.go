package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageReport is a moderation report filed against a private message.
//
// OriginalText snapshots the message content at filing time so the
// evidence survives later edits or deletion flags on the message itself.
// ResolverID stays NULL until a moderator resolves the report.
type MessageReport struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	MessageID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"message_id"`
	ReporterID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"reporter_id"`
	Reason       string     `gorm:"size:500;not null" json:"reason"`
	OriginalText string     `gorm:"type:text;not null" json:"original_text"`
	Resolved     bool       `gorm:"not null;default:false;index" json:"resolved"`
	ResolverID   *uuid.UUID `gorm:"type:uuid" json:"resolver_id,omitempty"`
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Three roles over users plus the message join make up the
	// denormalized view the dashboard consumes. Resolver is a pointer:
	// unresolved reports have no resolver row to join.
	Message  PrivateMessage `gorm:"foreignKey:MessageID" json:"message"`
	Reporter User           `gorm:"foreignKey:ReporterID" json:"reporter"`
	Resolver *User          `gorm:"foreignKey:ResolverID" json:"resolver,omitempty"`
}

func (r *MessageReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (MessageReport) TableName() string {
	return "message_reports"
}
