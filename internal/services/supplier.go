package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sourcexpress/sourcexpress-backend/internal/data/repos"
	types "github.com/sourcexpress/sourcexpress-backend/internal/domain"
	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/brdoc"
	apperrors "github.com/sourcexpress/sourcexpress-backend/internal/pkg/errors"
	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/logger"
	"github.com/sourcexpress/sourcexpress-backend/internal/qualification"
)

// RegisterSupplierInput carries both person-type branches; only the branch
// matching PersonType is validated and stored.
type RegisterSupplierInput struct {
	PersonType     types.SupplierPersonType `json:"person_type"`
	DocumentNumber string                   `json:"document_number"`

	// CNPJ branch
	RazaoSocial        string `json:"razao_social,omitempty"`
	NomeFantasia       string `json:"nome_fantasia,omitempty"`
	InscricaoEstadual  string `json:"inscricao_estadual,omitempty"`
	InscricaoMunicipal string `json:"inscricao_municipal,omitempty"`
	PrimaryCNAE        string `json:"primary_cnae,omitempty"`

	// CPF branch
	FullName         string `json:"full_name,omitempty"`
	IdentityDocument string `json:"identity_document,omitempty"`
	Profession       string `json:"profession,omitempty"`
	MEI              bool   `json:"mei,omitempty"`

	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`

	PostalCode string `json:"postal_code,omitempty"`
	Street     string `json:"street,omitempty"`
	Number     string `json:"number,omitempty"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`

	SupplyCategories []string `json:"supply_categories,omitempty"`

	// AllowDuplicate proceeds past the duplicate warning the first attempt
	// returned.
	AllowDuplicate bool `json:"allow_duplicate,omitempty"`
}

// RegisterSupplierResult either carries the created supplier or, when the
// document is already registered and the caller did not opt in, the existing
// rows for the confirmation screen.
type RegisterSupplierResult struct {
	Supplier  *types.Supplier   `json:"supplier,omitempty"`
	Duplicate bool              `json:"duplicate"`
	Existing  []*types.Supplier `json:"existing,omitempty"`
}

type SupplierService interface {
	Register(ctx context.Context, input RegisterSupplierInput) (*RegisterSupplierResult, error)
	Get(ctx context.Context, supplierID uuid.UUID) (*types.Supplier, error)
	List(ctx context.Context, filter repos.SupplierListFilter) ([]*types.Supplier, error)
	UpdateStatus(ctx context.Context, supplierID uuid.UUID, status qualification.Status) error
	AddContact(ctx context.Context, contact *types.SupplierContact) (*types.SupplierContact, error)
	AddDocument(ctx context.Context, document *types.SupplierDocument) (*types.SupplierDocument, error)
	Compliance(ctx context.Context, supplierID uuid.UUID) ([]DocumentCompliance, error)
}

// DocumentCompliance pairs a stored document with its derived status.
type DocumentCompliance struct {
	Document *types.SupplierDocument `json:"document"`
	Status   types.ComplianceStatus  `json:"status"`
}

type supplierService struct {
	db           *gorm.DB
	log          *logger.Logger
	supplierRepo repos.SupplierRepo
	contactRepo  repos.ContactRepo
	documentRepo repos.DocumentRepo
	notifier     Notifier
}

func NewSupplierService(
	db *gorm.DB,
	log *logger.Logger,
	supplierRepo repos.SupplierRepo,
	contactRepo repos.ContactRepo,
	documentRepo repos.DocumentRepo,
	notifier Notifier,
) SupplierService {
	return &supplierService{
		db:           db,
		log:          log.With("service", "SupplierService"),
		supplierRepo: supplierRepo,
		contactRepo:  contactRepo,
		documentRepo: documentRepo,
		notifier:     notifier,
	}
}

func (ss *supplierService) Register(ctx context.Context, input RegisterSupplierInput) (*RegisterSupplierResult, error) {
	supplier, err := ss.buildSupplier(input)
	if err != nil {
		return nil, err
	}

	existing, err := ss.supplierRepo.GetByDocumentNumbers(ctx, nil, []string{supplier.DocumentNumber})
	if err != nil {
		return nil, fmt.Errorf("duplicate check: %w", err)
	}
	if len(existing) > 0 && !input.AllowDuplicate {
		return &RegisterSupplierResult{Duplicate: true, Existing: existing}, nil
	}
	supplier.DuplicateAllowed = len(existing) > 0

	if err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := ss.supplierRepo.Create(ctx, tx, []*types.Supplier{supplier})
		return err
	}); err != nil {
		return nil, apperrors.Classify(err)
	}

	ss.notifier.SupplierRegistered(ctx, supplier.ID, supplier.DisplayName())
	ss.log.Info("supplier registered",
		"supplier_id", supplier.ID,
		"person_type", supplier.PersonType,
		"duplicate_allowed", supplier.DuplicateAllowed,
	)
	return &RegisterSupplierResult{Supplier: supplier}, nil
}

func (ss *supplierService) buildSupplier(input RegisterSupplierInput) (*types.Supplier, error) {
	doc := brdoc.Normalize(input.DocumentNumber)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperrors.Invalid("valid email required")
	}

	s := &types.Supplier{
		ID:             uuid.New(),
		PersonType:     input.PersonType,
		DocumentNumber: doc,
		Email:          email,
		Phone:          strings.TrimSpace(input.Phone),
		PostalCode:     brdoc.Normalize(input.PostalCode),
		Street:         strings.TrimSpace(input.Street),
		Number:         strings.TrimSpace(input.Number),
		Complement:     strings.TrimSpace(input.Complement),
		District:       strings.TrimSpace(input.District),
		City:           strings.TrimSpace(input.City),
		State:          strings.ToUpper(strings.TrimSpace(input.State)),
		Status:         qualification.StatusAwaitingCompletion,
	}

	switch input.PersonType {
	case types.PersonCNPJ:
		if !brdoc.ValidCNPJ(doc) {
			return nil, apperrors.Invalid("invalid cnpj")
		}
		s.RazaoSocial = strings.TrimSpace(input.RazaoSocial)
		s.NomeFantasia = strings.TrimSpace(input.NomeFantasia)
		s.InscricaoEstadual = strings.TrimSpace(input.InscricaoEstadual)
		s.InscricaoMunicipal = strings.TrimSpace(input.InscricaoMunicipal)
		s.PrimaryCNAE = strings.TrimSpace(input.PrimaryCNAE)
		if s.RazaoSocial == "" {
			return nil, apperrors.Invalid("razao social required for cnpj registration")
		}
	case types.PersonCPF:
		if !brdoc.ValidCPF(doc) {
			return nil, apperrors.Invalid("invalid cpf")
		}
		s.FullName = strings.TrimSpace(input.FullName)
		s.IdentityDocument = strings.TrimSpace(input.IdentityDocument)
		s.Profession = strings.TrimSpace(input.Profession)
		s.MEI = input.MEI
		if s.FullName == "" {
			return nil, apperrors.Invalid("full name required for cpf registration")
		}
	default:
		return nil, apperrors.Invalid(fmt.Sprintf("unknown person type %q", input.PersonType))
	}

	if len(input.SupplyCategories) > 0 {
		raw, err := jsonMarshalCategories(input.SupplyCategories)
		if err != nil {
			return nil, err
		}
		s.SupplyCategories = raw
	}
	return s, nil
}

func jsonMarshalCategories(categories []string) (datatypes.JSON, error) {
	cleaned := make([]string, 0, len(categories))
	for _, c := range categories {
		if c = strings.TrimSpace(c); c != "" {
			cleaned = append(cleaned, c)
		}
	}
	b, err := json.Marshal(cleaned)
	if err != nil {
		return nil, fmt.Errorf("encode supply categories: %w", err)
	}
	return datatypes.JSON(b), nil
}

func (ss *supplierService) Get(ctx context.Context, supplierID uuid.UUID) (*types.Supplier, error) {
	rows, err := ss.supplierRepo.GetByIDs(ctx, nil, []uuid.UUID{supplierID})
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return rows[0], nil
}

func (ss *supplierService) List(ctx context.Context, filter repos.SupplierListFilter) ([]*types.Supplier, error) {
	return ss.supplierRepo.List(ctx, nil, filter)
}

func (ss *supplierService) UpdateStatus(ctx context.Context, supplierID uuid.UUID, status qualification.Status) error {
	if _, err := ss.Get(ctx, supplierID); err != nil {
		return err
	}
	if err := ss.supplierRepo.UpdateStatus(ctx, nil, supplierID, status); err != nil {
		return apperrors.Classify(err)
	}
	ss.notifier.SupplierStatusChanged(ctx, supplierID, status)
	return nil
}

func (ss *supplierService) AddContact(ctx context.Context, contact *types.SupplierContact) (*types.SupplierContact, error) {
	contact.Name = strings.TrimSpace(contact.Name)
	if contact.Name == "" {
		return nil, apperrors.Invalid("contact name required")
	}
	if _, err := ss.Get(ctx, contact.SupplierID); err != nil {
		return nil, err
	}
	contact.ID = uuid.New()
	if _, err := ss.contactRepo.Create(ctx, nil, []*types.SupplierContact{contact}); err != nil {
		return nil, apperrors.Classify(err)
	}
	return contact, nil
}

func (ss *supplierService) AddDocument(ctx context.Context, document *types.SupplierDocument) (*types.SupplierDocument, error) {
	document.Type = strings.TrimSpace(document.Type)
	if document.Type == "" {
		return nil, apperrors.Invalid("document type required")
	}
	if _, err := ss.Get(ctx, document.SupplierID); err != nil {
		return nil, err
	}
	document.ID = uuid.New()
	if _, err := ss.documentRepo.Create(ctx, nil, []*types.SupplierDocument{document}); err != nil {
		return nil, apperrors.Classify(err)
	}
	return document, nil
}

func (ss *supplierService) Compliance(ctx context.Context, supplierID uuid.UUID) ([]DocumentCompliance, error) {
	if _, err := ss.Get(ctx, supplierID); err != nil {
		return nil, err
	}
	docs, err := ss.documentRepo.GetBySupplierIDs(ctx, nil, []uuid.UUID{supplierID})
	if err != nil {
		return nil, apperrors.Classify(err)
	}
	now := time.Now().UTC()
	out := make([]DocumentCompliance, 0, len(docs))
	for _, d := range docs {
		out = append(out, DocumentCompliance{Document: d, Status: d.Compliance(now)})
	}
	return out, nil
}
