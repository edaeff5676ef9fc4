package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sourcexpress/sourcexpress-backend/internal/data/repos"
	types "github.com/sourcexpress/sourcexpress-backend/internal/domain"
	apperrors "github.com/sourcexpress/sourcexpress-backend/internal/pkg/errors"
	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/logger"
)

type RequisitionItemInput struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit,omitempty"`
}

type CreateRequisitionInput struct {
	RequesterID uuid.UUID              `json:"requester_id"`
	Area        string                 `json:"area"`
	Description string                 `json:"description,omitempty"`
	NeededBy    *time.Time             `json:"needed_by,omitempty"`
	Items       []RequisitionItemInput `json:"items"`
}

type RequisitionService interface {
	Create(ctx context.Context, input CreateRequisitionInput) (*types.Requisition, error)
	Get(ctx context.Context, requisitionID uuid.UUID) (*types.Requisition, error)
	ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]*types.Requisition, error)
	Transition(ctx context.Context, requisitionID uuid.UUID, status types.RequisitionStatus) error
}

type requisitionService struct {
	db              *gorm.DB
	log             *logger.Logger
	requisitionRepo repos.RequisitionRepo
}

func NewRequisitionService(db *gorm.DB, log *logger.Logger, requisitionRepo repos.RequisitionRepo) RequisitionService {
	return &requisitionService{
		db:              db,
		log:             log.With("service", "RequisitionService"),
		requisitionRepo: requisitionRepo,
	}
}

func (rs *requisitionService) Create(ctx context.Context, input CreateRequisitionInput) (*types.Requisition, error) {
	input.Area = strings.TrimSpace(input.Area)
	if input.Area == "" {
		return nil, apperrors.Invalid("requesting area required")
	}
	if len(input.Items) == 0 {
		return nil, apperrors.Invalid("at least one item required")
	}

	req := &types.Requisition{
		ID:          uuid.New(),
		RequesterID: input.RequesterID,
		Area:        input.Area,
		Description: strings.TrimSpace(input.Description),
		Status:      types.RequisitionDraft,
		NeededBy:    input.NeededBy,
	}
	req.Number = fmt.Sprintf("REQ-%s-%s", time.Now().UTC().Format("20060102"), strings.ToUpper(req.ID.String()[:8]))

	for _, item := range input.Items {
		desc := strings.TrimSpace(item.Description)
		if desc == "" {
			return nil, apperrors.Invalid("item description required")
		}
		if item.Quantity <= 0 {
			return nil, apperrors.Invalid(fmt.Sprintf("item %q needs a positive quantity", desc))
		}
		req.Items = append(req.Items, types.RequisitionItem{
			ID:            uuid.New(),
			RequisitionID: req.ID,
			Description:   desc,
			Quantity:      item.Quantity,
			Unit:          strings.TrimSpace(item.Unit),
		})
	}

	if err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := rs.requisitionRepo.Create(ctx, tx, []*types.Requisition{req})
		return err
	}); err != nil {
		return nil, apperrors.Classify(err)
	}
	rs.log.Info("requisition created", "requisition_id", req.ID, "number", req.Number, "items", len(req.Items))
	return req, nil
}

func (rs *requisitionService) Get(ctx context.Context, requisitionID uuid.UUID) (*types.Requisition, error) {
	rows, err := rs.requisitionRepo.GetByIDs(ctx, nil, []uuid.UUID{requisitionID})
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return rows[0], nil
}

func (rs *requisitionService) ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]*types.Requisition, error) {
	return rs.requisitionRepo.ListByRequester(ctx, nil, requesterID)
}

// Transition enforces the requisition lifecycle: draft → submitted →
// approved or rejected.
func (rs *requisitionService) Transition(ctx context.Context, requisitionID uuid.UUID, status types.RequisitionStatus) error {
	current, err := rs.Get(ctx, requisitionID)
	if err != nil {
		return err
	}

	allowed := map[types.RequisitionStatus][]types.RequisitionStatus{
		types.RequisitionDraft:     {types.RequisitionSubmitted},
		types.RequisitionSubmitted: {types.RequisitionApproved, types.RequisitionRejected},
	}
	ok := false
	for _, next := range allowed[current.Status] {
		if next == status {
			ok = true
			break
		}
	}
	if !ok {
		return apperrors.Invalid(fmt.Sprintf("cannot move requisition from %q to %q", current.Status, status))
	}

	if err := rs.requisitionRepo.UpdateStatus(ctx, nil, requisitionID, status); err != nil {
		return apperrors.Classify(err)
	}
	rs.log.Info("requisition transitioned", "requisition_id", requisitionID, "from", current.Status, "to", status)
	return nil
}
