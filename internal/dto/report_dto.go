package dto

import "github.com/google/uuid"

type CreateReportRequest struct {
	MessageID uuid.UUID `json:"message_id"`
	Reason    string    `json:"reason"`
}
