package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/courier-app/courier-backend/internal/dto"
	"github.com/courier-app/courier-backend/internal/models"
	"github.com/courier-app/courier-backend/internal/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrMessageNotFound   = errors.New("message not found")
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrSelfMessage       = errors.New("cannot message yourself")
	ErrBlocked           = errors.New("messaging is blocked between these users")
	ErrContentRejected   = errors.New("message rejected by content filter")
	ErrAlreadyBlocked    = errors.New("user already blocked")
	ErrSelfBlock         = errors.New("cannot block yourself")
)

// MessageService handles direct messages and user blocks.
type MessageService struct {
	db     *gorm.DB
	filter *ContentFilter
}

func NewMessageService(db *gorm.DB, filter *ContentFilter) *MessageService {
	return &MessageService{db: db, filter: filter}
}

func (s *MessageService) Send(ctx context.Context, creatorID uuid.UUID, req *dto.SendMessageRequest) (*models.PrivateMessage, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, errors.New("content is required")
	}
	if creatorID == req.RecipientID {
		return nil, ErrSelfMessage
	}

	if ok, reason := s.filter.Check(req.Content); !ok {
		return nil, fmt.Errorf("%w: %s", ErrContentRejected, s.filter.RejectionMessage(reason))
	}

	var recipient models.User
	if err := s.db.WithContext(ctx).First(&recipient, "id = ? AND deleted = ?", req.RecipientID, false).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, fmt.Errorf("failed to load recipient: %w", err)
	}

	// A block in either direction closes the conversation.
	var blocked int64
	err := s.db.WithContext(ctx).Model(&models.Block{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)",
			creatorID, req.RecipientID, req.RecipientID, creatorID).
		Count(&blocked).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check blocks: %w", err)
	}
	if blocked > 0 {
		return nil, ErrBlocked
	}

	msg := models.PrivateMessage{
		ID:          uuid.New(),
		CreatorID:   creatorID,
		RecipientID: req.RecipientID,
		Content:     req.Content,
	}
	if err := s.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return &msg, nil
}

func (s *MessageService) Get(ctx context.Context, id uuid.UUID) (*models.PrivateMessage, error) {
	var msg models.PrivateMessage
	err := s.db.WithContext(ctx).
		InnerJoins("Creator").
		First(&msg, "private_messages.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to read message: %w", err)
	}
	return &msg, nil
}

// Conversation lists messages between two users, newest first. Messages
// flagged deleted are hidden from the conversation but remain in
// storage for moderation.
func (s *MessageService) Conversation(ctx context.Context, userID, otherID uuid.UUID, page, limit *int) ([]models.PrivateMessage, error) {
	lim, offset, err := pagination.LimitAndOffset(page, limit)
	if err != nil {
		return nil, err
	}

	var messages []models.PrivateMessage
	err = s.db.WithContext(ctx).
		InnerJoins("Creator").
		Where("((private_messages.creator_id = ? AND private_messages.recipient_id = ?) OR (private_messages.creator_id = ? AND private_messages.recipient_id = ?)) AND private_messages.deleted = ?",
			userID, otherID, otherID, userID, false).
		Order("private_messages.created_at DESC").
		Limit(lim).
		Offset(offset).
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list conversation: %w", err)
	}
	return messages, nil
}

// MarkRead flags a message read; only the recipient can do so.
func (s *MessageService) MarkRead(ctx context.Context, userID, messageID uuid.UUID) error {
	result := s.db.WithContext(ctx).Model(&models.PrivateMessage{}).
		Where("id = ? AND recipient_id = ?", messageID, userID).
		Update("read", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark message read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// Delete hides a message from its participants. The row and content
// stay so existing reports keep their evidence.
func (s *MessageService) Delete(ctx context.Context, userID, messageID uuid.UUID) error {
	result := s.db.WithContext(ctx).Model(&models.PrivateMessage{}).
		Where("id = ? AND (creator_id = ? OR recipient_id = ?)", messageID, userID, userID).
		Update("deleted", true)
	if result.Error != nil {
		return fmt.Errorf("failed to delete message: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (s *MessageService) BlockUser(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	if blockerID == blockedID {
		return ErrSelfBlock
	}

	var existing models.Block
	if err := s.db.WithContext(ctx).Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).First(&existing).Error; err == nil {
		return ErrAlreadyBlocked
	}

	block := models.Block{
		ID:        uuid.New(),
		BlockerID: blockerID,
		BlockedID: blockedID,
	}
	return s.db.WithContext(ctx).Create(&block).Error
}

func (s *MessageService) UnblockUser(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&models.Block{}).Error
}

func (s *MessageService) BlockedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var blocks []models.Block
	if err := s.db.WithContext(ctx).Where("blocker_id = ?", userID).Find(&blocks).Error; err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(blocks))
	for i, b := range blocks {
		ids[i] = b.BlockedID
	}
	return ids, nil
}
