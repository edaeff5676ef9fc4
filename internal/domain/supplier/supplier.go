package supplier

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sourcexpress/sourcexpress-backend/internal/qualification"
)

// PersonType branches the registration field set: legal entities register
// with a CNPJ, individuals with a CPF.
type PersonType string

const (
	PersonCNPJ PersonType = "cnpj"
	PersonCPF  PersonType = "cpf"
)

type Supplier struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PersonType     PersonType `gorm:"not null;column:person_type" json:"person_type"`
	DocumentNumber string     `gorm:"index:idx_supplier_document;not null;column:document_number" json:"document_number"`

	// CNPJ branch
	RazaoSocial        string `gorm:"column:razao_social" json:"razao_social,omitempty"`
	NomeFantasia       string `gorm:"column:nome_fantasia" json:"nome_fantasia,omitempty"`
	InscricaoEstadual  string `gorm:"column:inscricao_estadual" json:"inscricao_estadual,omitempty"`
	InscricaoMunicipal string `gorm:"column:inscricao_municipal" json:"inscricao_municipal,omitempty"`
	PrimaryCNAE        string `gorm:"column:primary_cnae" json:"primary_cnae,omitempty"`

	// CPF branch
	FullName         string `gorm:"column:full_name" json:"full_name,omitempty"`
	IdentityDocument string `gorm:"column:identity_document" json:"identity_document,omitempty"`
	Profession       string `gorm:"column:profession" json:"profession,omitempty"`
	MEI              bool   `gorm:"column:mei" json:"mei,omitempty"`

	Email string `gorm:"not null;column:email" json:"email"`
	Phone string `gorm:"column:phone" json:"phone,omitempty"`

	PostalCode string `gorm:"column:postal_code" json:"postal_code,omitempty"`
	Street     string `gorm:"column:street" json:"street,omitempty"`
	Number     string `gorm:"column:number" json:"number,omitempty"`
	Complement string `gorm:"column:complement" json:"complement,omitempty"`
	District   string `gorm:"column:district" json:"district,omitempty"`
	City       string `gorm:"column:city" json:"city,omitempty"`
	State      string `gorm:"column:state" json:"state,omitempty"`

	SupplyCategories datatypes.JSON `gorm:"column:supply_categories" json:"supply_categories,omitempty"`

	Status qualification.Status `gorm:"not null;default:awaiting_completion;column:status" json:"status"`

	// DuplicateAllowed records that registration proceeded past an explicit
	// duplicate warning.
	DuplicateAllowed bool `gorm:"column:duplicate_allowed" json:"duplicate_allowed,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Supplier) TableName() string { return "suppliers" }

// DisplayName is the name shown in listings regardless of person type.
func (s *Supplier) DisplayName() string {
	if s.PersonType == PersonCPF {
		return s.FullName
	}
	if s.NomeFantasia != "" {
		return s.NomeFantasia
	}
	return s.RazaoSocial
}

type Contact struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SupplierID uuid.UUID `gorm:"type:uuid;index;not null;column:supplier_id" json:"supplier_id"`
	Name       string    `gorm:"not null;column:name" json:"name"`
	Email      string    `gorm:"column:email" json:"email,omitempty"`
	Phone      string    `gorm:"column:phone" json:"phone,omitempty"`
	RoleTitle  string    `gorm:"column:role_title" json:"role_title,omitempty"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

func (Contact) TableName() string { return "supplier_contacts" }

// ComplianceStatus of a supplier document, derived from its expiry date.
type ComplianceStatus string

const (
	ComplianceValid    ComplianceStatus = "valid"
	ComplianceExpiring ComplianceStatus = "expiring"
	ComplianceExpired  ComplianceStatus = "expired"
)

// ExpiringWindow is how far ahead a document counts as expiring.
const ExpiringWindow = 30 * 24 * time.Hour

type Document struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SupplierID uuid.UUID  `gorm:"type:uuid;index;not null;column:supplier_id" json:"supplier_id"`
	Type       string     `gorm:"not null;column:type" json:"type"`
	Number     string     `gorm:"column:number" json:"number,omitempty"`
	IssuedAt   *time.Time `gorm:"column:issued_at" json:"issued_at,omitempty"`
	ExpiresAt  *time.Time `gorm:"column:expires_at" json:"expires_at,omitempty"`
	CreatedAt  time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null" json:"updated_at"`
}

func (Document) TableName() string { return "supplier_documents" }

// Compliance derives the document's status at a point in time. Documents
// without an expiry never expire.
func (d *Document) Compliance(now time.Time) ComplianceStatus {
	if d.ExpiresAt == nil {
		return ComplianceValid
	}
	switch {
	case d.ExpiresAt.Before(now):
		return ComplianceExpired
	case d.ExpiresAt.Before(now.Add(ExpiringWindow)):
		return ComplianceExpiring
	default:
		return ComplianceValid
	}
}
