package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sourcexpress/sourcexpress-backend/internal/data/repos"
	types "github.com/sourcexpress/sourcexpress-backend/internal/domain"
	apperrors "github.com/sourcexpress/sourcexpress-backend/internal/pkg/errors"
	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/logger"
	"github.com/sourcexpress/sourcexpress-backend/internal/qualification"
)

type QuotationItemInput struct {
	RequisitionItemID *uuid.UUID `json:"requisition_item_id,omitempty"`
	Description       string     `json:"description"`
	Quantity          float64    `json:"quantity"`
	UnitPriceCents    int64      `json:"unit_price_cents"`
}

type SubmitQuotationInput struct {
	RequisitionID uuid.UUID            `json:"requisition_id"`
	SupplierID    uuid.UUID            `json:"supplier_id"`
	Currency      string               `json:"currency,omitempty"`
	ValidUntil    *time.Time           `json:"valid_until,omitempty"`
	Notes         string               `json:"notes,omitempty"`
	Items         []QuotationItemInput `json:"items"`
}

type QuotationService interface {
	Submit(ctx context.Context, input SubmitQuotationInput) (*types.Quotation, error)
	Get(ctx context.Context, quotationID uuid.UUID) (*types.Quotation, error)
	ListByRequisition(ctx context.Context, requisitionID uuid.UUID) ([]*types.Quotation, error)
	Transition(ctx context.Context, quotationID uuid.UUID, status types.QuotationStatus) error
}

type quotationService struct {
	db              *gorm.DB
	log             *logger.Logger
	quotationRepo   repos.QuotationRepo
	requisitionRepo repos.RequisitionRepo
	supplierRepo    repos.SupplierRepo
	notifier        Notifier
}

func NewQuotationService(
	db *gorm.DB,
	log *logger.Logger,
	quotationRepo repos.QuotationRepo,
	requisitionRepo repos.RequisitionRepo,
	supplierRepo repos.SupplierRepo,
	notifier Notifier,
) QuotationService {
	return &quotationService{
		db:              db,
		log:             log.With("service", "QuotationService"),
		quotationRepo:   quotationRepo,
		requisitionRepo: requisitionRepo,
		supplierRepo:    supplierRepo,
		notifier:        notifier,
	}
}

// Submit accepts a quotation only for approved requisitions and only from
// suppliers that are not blocked by qualification.
func (qs *quotationService) Submit(ctx context.Context, input SubmitQuotationInput) (*types.Quotation, error) {
	if len(input.Items) == 0 {
		return nil, apperrors.Invalid("at least one item required")
	}

	requisitions, err := qs.requisitionRepo.GetByIDs(ctx, nil, []uuid.UUID{input.RequisitionID})
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	if len(requisitions) == 0 {
		return nil, apperrors.ErrNotFound
	}
	if requisitions[0].Status != types.RequisitionApproved {
		return nil, apperrors.Invalid("requisition is not open for quotations")
	}

	suppliers, err := qs.supplierRepo.GetByIDs(ctx, nil, []uuid.UUID{input.SupplierID})
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	if len(suppliers) == 0 {
		return nil, apperrors.ErrNotFound
	}
	if suppliers[0].Status == qualification.StatusNotQualified {
		return nil, apperrors.Invalid("supplier is not qualified to quote")
	}

	quotation := &types.Quotation{
		ID:            uuid.New(),
		RequisitionID: input.RequisitionID,
		SupplierID:    input.SupplierID,
		Status:        types.QuotationReceived,
		Currency:      strings.ToUpper(strings.TrimSpace(input.Currency)),
		ValidUntil:    input.ValidUntil,
		Notes:         strings.TrimSpace(input.Notes),
	}
	if quotation.Currency == "" {
		quotation.Currency = "BRL"
	}

	var total int64
	for _, item := range input.Items {
		desc := strings.TrimSpace(item.Description)
		if desc == "" {
			return nil, apperrors.Invalid("item description required")
		}
		if item.Quantity <= 0 || item.UnitPriceCents < 0 {
			return nil, apperrors.Invalid(fmt.Sprintf("item %q has invalid quantity or price", desc))
		}
		// Quantities may be fractional (bulk units like kg or m), so the
		// line total is rounded to the nearest cent rather than truncated.
		total += int64(math.Round(item.Quantity * float64(item.UnitPriceCents)))
		quotation.Items = append(quotation.Items, types.QuotationItem{
			ID:                uuid.New(),
			QuotationID:       quotation.ID,
			RequisitionItemID: item.RequisitionItemID,
			Description:       desc,
			Quantity:          item.Quantity,
			UnitPriceCents:    item.UnitPriceCents,
		})
	}
	quotation.TotalCents = total

	if err := qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := qs.quotationRepo.Create(ctx, tx, []*types.Quotation{quotation})
		return err
	}); err != nil {
		return nil, apperrors.Classify(err)
	}

	qs.notifier.QuotationReceived(ctx, quotation.RequisitionID, quotation.ID)
	qs.log.Info("quotation received",
		"quotation_id", quotation.ID,
		"requisition_id", quotation.RequisitionID,
		"supplier_id", quotation.SupplierID,
		"total_cents", quotation.TotalCents,
	)
	return quotation, nil
}

func (qs *quotationService) Get(ctx context.Context, quotationID uuid.UUID) (*types.Quotation, error) {
	rows, err := qs.quotationRepo.GetByIDs(ctx, nil, []uuid.UUID{quotationID})
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return rows[0], nil
}

func (qs *quotationService) ListByRequisition(ctx context.Context, requisitionID uuid.UUID) ([]*types.Quotation, error) {
	return qs.quotationRepo.GetByRequisitionIDs(ctx, nil, []uuid.UUID{requisitionID})
}

func (qs *quotationService) Transition(ctx context.Context, quotationID uuid.UUID, status types.QuotationStatus) error {
	current, err := qs.Get(ctx, quotationID)
	if err != nil {
		return err
	}

	allowed := map[types.QuotationStatus][]types.QuotationStatus{
		types.QuotationReceived:    {types.QuotationUnderReview, types.QuotationDeclined},
		types.QuotationUnderReview: {types.QuotationAccepted, types.QuotationDeclined},
	}
	ok := false
	for _, next := range allowed[current.Status] {
		if next == status {
			ok = true
			break
		}
	}
	if !ok {
		return apperrors.Invalid(fmt.Sprintf("cannot move quotation from %q to %q", current.Status, status))
	}

	if err := qs.quotationRepo.UpdateStatus(ctx, nil, quotationID, status); err != nil {
		return apperrors.Classify(err)
	}
	return nil
}
