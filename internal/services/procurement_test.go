package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sourcexpress/sourcexpress-backend/internal/data/repos"
	types "github.com/sourcexpress/sourcexpress-backend/internal/domain"
	apperrors "github.com/sourcexpress/sourcexpress-backend/internal/pkg/errors"
	"github.com/sourcexpress/sourcexpress-backend/internal/qualification"
)

type procurementFixture struct {
	gdb          *gorm.DB
	requisitions RequisitionService
	quotations   QuotationService
	suppliers    SupplierService
}

func newProcurementFixture(t *testing.T) *procurementFixture {
	t.Helper()
	gdb := testDB(t)
	log := testLogger(t)
	notifier := testNotifier(t)

	requisitionRepo := repos.NewRequisitionRepo(gdb, log)
	supplierRepo := repos.NewSupplierRepo(gdb, log)

	return &procurementFixture{
		gdb:          gdb,
		requisitions: NewRequisitionService(gdb, log, requisitionRepo),
		quotations: NewQuotationService(
			gdb,
			log,
			repos.NewQuotationRepo(gdb, log),
			requisitionRepo,
			supplierRepo,
			notifier,
		),
		suppliers: NewSupplierService(
			gdb,
			log,
			supplierRepo,
			repos.NewContactRepo(gdb, log),
			repos.NewDocumentRepo(gdb, log),
			notifier,
		),
	}
}

func (f *procurementFixture) approvedRequisition(t *testing.T, ctx context.Context) *types.Requisition {
	t.Helper()
	req, err := f.requisitions.Create(ctx, CreateRequisitionInput{
		RequesterID: uuid.New(),
		Area:        "engineering",
		Description: "Parafusos para linha de montagem",
		Items: []RequisitionItemInput{
			{Description: "Parafuso M8", Quantity: 500, Unit: "un"},
			{Description: "Porca M8", Quantity: 500, Unit: "un"},
		},
	})
	if err != nil {
		t.Fatalf("create requisition: %v", err)
	}
	if err := f.requisitions.Transition(ctx, req.ID, types.RequisitionSubmitted); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := f.requisitions.Transition(ctx, req.ID, types.RequisitionApproved); err != nil {
		t.Fatalf("approve: %v", err)
	}
	return req
}

func TestRequisitionLifecycle(t *testing.T) {
	f := newProcurementFixture(t)
	ctx := context.Background()

	requesterID := uuid.New()
	req, err := f.requisitions.Create(ctx, CreateRequisitionInput{
		RequesterID: requesterID,
		Area:        "logistics",
		Items:       []RequisitionItemInput{{Description: "Pallets", Quantity: 20}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if req.Status != types.RequisitionDraft || req.Number == "" {
		t.Fatalf("unexpected requisition: %+v", req)
	}

	// Draft cannot jump straight to approved.
	if err := f.requisitions.Transition(ctx, req.ID, types.RequisitionApproved); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	if err := f.requisitions.Transition(ctx, req.ID, types.RequisitionSubmitted); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := f.requisitions.Transition(ctx, req.ID, types.RequisitionRejected); err != nil {
		t.Fatalf("reject: %v", err)
	}
	// Rejected is terminal.
	if err := f.requisitions.Transition(ctx, req.ID, types.RequisitionApproved); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("expected terminal state, got %v", err)
	}

	got, err := f.requisitions.Get(ctx, req.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != types.RequisitionRejected || len(got.Items) != 1 {
		t.Fatalf("unexpected fetch: status=%q items=%d", got.Status, len(got.Items))
	}

	listed, err := f.requisitions.ListByRequester(ctx, requesterID)
	if err != nil || len(listed) != 1 {
		t.Fatalf("ListByRequester: err=%v len=%d", err, len(listed))
	}
}

func TestRequisitionCreateValidation(t *testing.T) {
	f := newProcurementFixture(t)
	ctx := context.Background()

	cases := []CreateRequisitionInput{
		{RequesterID: uuid.New(), Area: "", Items: []RequisitionItemInput{{Description: "x", Quantity: 1}}},
		{RequesterID: uuid.New(), Area: "finance"},
		{RequesterID: uuid.New(), Area: "finance", Items: []RequisitionItemInput{{Description: "  ", Quantity: 1}}},
		{RequesterID: uuid.New(), Area: "finance", Items: []RequisitionItemInput{{Description: "x", Quantity: 0}}},
	}
	for i, input := range cases {
		if _, err := f.requisitions.Create(ctx, input); !errors.Is(err, apperrors.ErrInvalidArgument) {
			t.Fatalf("case %d: expected invalid, got %v", i, err)
		}
	}
}

func TestQuotationSubmitAndTransition(t *testing.T) {
	f := newProcurementFixture(t)
	ctx := context.Background()

	req := f.approvedRequisition(t, ctx)
	supplier, err := f.suppliers.Register(ctx, cnpjInput())
	if err != nil {
		t.Fatalf("register supplier: %v", err)
	}

	itemID := req.Items[0].ID
	quotation, err := f.quotations.Submit(ctx, SubmitQuotationInput{
		RequisitionID: req.ID,
		SupplierID:    supplier.Supplier.ID,
		Items: []QuotationItemInput{
			{RequisitionItemID: &itemID, Description: "Parafuso M8 inox", Quantity: 500, UnitPriceCents: 35},
			{Description: "Frete", Quantity: 1, UnitPriceCents: 12000},
		},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if quotation.TotalCents != 500*35+12000 {
		t.Fatalf("total: got %d", quotation.TotalCents)
	}
	if quotation.Currency != "BRL" || quotation.Status != types.QuotationReceived {
		t.Fatalf("unexpected quotation: %+v", quotation)
	}

	if err := f.quotations.Transition(ctx, quotation.ID, types.QuotationAccepted); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("expected received→accepted to be blocked, got %v", err)
	}
	if err := f.quotations.Transition(ctx, quotation.ID, types.QuotationUnderReview); err != nil {
		t.Fatalf("under review: %v", err)
	}
	if err := f.quotations.Transition(ctx, quotation.ID, types.QuotationAccepted); err != nil {
		t.Fatalf("accept: %v", err)
	}

	listed, err := f.quotations.ListByRequisition(ctx, req.ID)
	if err != nil || len(listed) != 1 {
		t.Fatalf("ListByRequisition: err=%v len=%d", err, len(listed))
	}
	if listed[0].Status != types.QuotationAccepted {
		t.Fatalf("expected accepted, got %q", listed[0].Status)
	}
}

func TestQuotationFractionalQuantityRounding(t *testing.T) {
	f := newProcurementFixture(t)
	ctx := context.Background()

	req := f.approvedRequisition(t, ctx)
	supplier, err := f.suppliers.Register(ctx, cnpjInput())
	if err != nil {
		t.Fatalf("register supplier: %v", err)
	}

	// 2.5 kg at R$19,99/kg is 4997.5 cents and must round to 4998, not
	// truncate to 4997.
	quotation, err := f.quotations.Submit(ctx, SubmitQuotationInput{
		RequisitionID: req.ID,
		SupplierID:    supplier.Supplier.ID,
		Items: []QuotationItemInput{
			{Description: "Solda MIG", Quantity: 2.5, UnitPriceCents: 1999},
		},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if quotation.TotalCents != 4998 {
		t.Fatalf("total: got %d, want 4998", quotation.TotalCents)
	}
}

func TestQuotationSubmitGuards(t *testing.T) {
	f := newProcurementFixture(t)
	ctx := context.Background()

	supplier, err := f.suppliers.Register(ctx, cnpjInput())
	if err != nil {
		t.Fatalf("register supplier: %v", err)
	}
	items := []QuotationItemInput{{Description: "Item", Quantity: 1, UnitPriceCents: 100}}

	// Unknown requisition.
	if _, err := f.quotations.Submit(ctx, SubmitQuotationInput{
		RequisitionID: uuid.New(),
		SupplierID:    supplier.Supplier.ID,
		Items:         items,
	}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	// Draft requisitions are not open for quotations.
	draft, err := f.requisitions.Create(ctx, CreateRequisitionInput{
		RequesterID: uuid.New(),
		Area:        "purchasing",
		Items:       []RequisitionItemInput{{Description: "Caixas", Quantity: 10}},
	})
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}
	if _, err := f.quotations.Submit(ctx, SubmitQuotationInput{
		RequisitionID: draft.ID,
		SupplierID:    supplier.Supplier.ID,
		Items:         items,
	}); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("expected draft rejection, got %v", err)
	}

	// A blocked supplier cannot quote.
	req := f.approvedRequisition(t, ctx)
	if err := f.suppliers.UpdateStatus(ctx, supplier.Supplier.ID, qualification.StatusNotQualified); err != nil {
		t.Fatalf("block supplier: %v", err)
	}
	if _, err := f.quotations.Submit(ctx, SubmitQuotationInput{
		RequisitionID: req.ID,
		SupplierID:    supplier.Supplier.ID,
		Items:         items,
	}); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("expected blocked supplier rejection, got %v", err)
	}
}
