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
	ErrReportNotFound = errors.New("report not found")
	ErrReasonRequired = errors.New("reason is required")
	ErrNotParticipant = errors.New("only conversation participants can report a message")
)

// ReportService owns the message-report lifecycle and the denormalized
// report view the moderation dashboard reads: each report joined with
// the reported message, the message author, the reporter, and the
// resolver once one exists.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// reportView is the shared join set for all read paths. Message,
// message author and reporter are inner joins: a report only drops out
// when one of those rows is hard-removed. Closed accounts and
// delete-flagged messages still join, so filed evidence stays visible.
// The resolver join is a left join since most reports are unresolved.
func (s *ReportService) reportView(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&models.MessageReport{}).
		InnerJoins("Message").
		InnerJoins("Message.Creator").
		InnerJoins("Reporter").
		Joins("Resolver")
}

// orderFor selects the listing order: the unresolved queue drains
// oldest-first so the backlog is worked in arrival order, while the
// full log reads newest-first.
func orderFor(unresolvedOnly bool) string {
	if unresolvedOnly {
		return "message_reports.created_at ASC"
	}
	return "message_reports.created_at DESC"
}

func (s *ReportService) CreateReport(ctx context.Context, reporterID uuid.UUID, req *dto.CreateReportRequest) (*models.MessageReport, error) {
	if strings.TrimSpace(req.Reason) == "" {
		return nil, ErrReasonRequired
	}

	var msg models.PrivateMessage
	if err := s.db.WithContext(ctx).First(&msg, "id = ?", req.MessageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to load message: %w", err)
	}

	// Only the two sides of the conversation may report it; anyone else
	// guessing message IDs must not get the content echoed back.
	if reporterID != msg.CreatorID && reporterID != msg.RecipientID {
		return nil, ErrNotParticipant
	}

	report := models.MessageReport{
		ID:           uuid.New(),
		MessageID:    msg.ID,
		ReporterID:   reporterID,
		Reason:       req.Reason,
		OriginalText: msg.Content,
	}

	if err := s.db.WithContext(ctx).Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return &report, nil
}

// GetReport returns the full view for one report.
func (s *ReportService) GetReport(ctx context.Context, id uuid.UUID) (*models.MessageReport, error) {
	var report models.MessageReport
	err := s.reportView(ctx).
		Where("message_reports.id = ?", id).
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	return &report, nil
}

// ListReports returns a page of report views. With unresolvedOnly the
// result is restricted to pending reports in FIFO order; otherwise all
// reports come back newest-first.
func (s *ReportService) ListReports(ctx context.Context, unresolvedOnly bool, page, limit *int) ([]models.MessageReport, error) {
	lim, offset, err := pagination.LimitAndOffset(page, limit)
	if err != nil {
		return nil, err
	}

	query := s.reportView(ctx)
	if unresolvedOnly {
		query = query.Where("message_reports.resolved = ?", false)
	}

	var reports []models.MessageReport
	err = query.
		Order(orderFor(unresolvedOnly)).
		Limit(lim).
		Offset(offset).
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// CountUnresolved counts pending reports whose message still exists.
// Deliberately narrower than the view: no person joins are needed to
// count rows.
func (s *ReportService) CountUnresolved(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.MessageReport{}).
		InnerJoins("Message").
		Where("message_reports.resolved = ?", false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unresolved reports: %w", err)
	}
	return count, nil
}

// ResolveReport marks a report handled and records who handled it, as a
// single UPDATE so concurrent resolvers serialize on the row and the
// last committed write wins whole. Resolving an already-resolved report
// reassigns the resolver; there is no unresolve.
func (s *ReportService) ResolveReport(ctx context.Context, id, resolverID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Model(&models.MessageReport{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"resolved":    true,
			"resolver_id": resolverID,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to resolve report: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrReportNotFound
	}
	return nil
}
