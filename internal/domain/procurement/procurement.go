package procurement

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RequisitionStatus string

const (
	RequisitionDraft     RequisitionStatus = "draft"
	RequisitionSubmitted RequisitionStatus = "submitted"
	RequisitionApproved  RequisitionStatus = "approved"
	RequisitionRejected  RequisitionStatus = "rejected"
)

type Requisition struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Number      string            `gorm:"uniqueIndex;not null;column:number" json:"number"`
	RequesterID uuid.UUID         `gorm:"type:uuid;index;not null;column:requester_id" json:"requester_id"`
	Area        string            `gorm:"not null;column:area" json:"area"`
	Description string            `gorm:"column:description" json:"description,omitempty"`
	Status      RequisitionStatus `gorm:"not null;default:draft;column:status" json:"status"`
	NeededBy    *time.Time        `gorm:"column:needed_by" json:"needed_by,omitempty"`

	Items []RequisitionItem `gorm:"foreignKey:RequisitionID" json:"items,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Requisition) TableName() string { return "requisitions" }

type RequisitionItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RequisitionID uuid.UUID `gorm:"type:uuid;index;not null;column:requisition_id" json:"requisition_id"`
	Description   string    `gorm:"not null;column:description" json:"description"`
	Quantity      float64   `gorm:"not null;column:quantity" json:"quantity"`
	Unit          string    `gorm:"column:unit" json:"unit,omitempty"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}

func (RequisitionItem) TableName() string { return "requisition_items" }

type QuotationStatus string

const (
	QuotationReceived    QuotationStatus = "received"
	QuotationUnderReview QuotationStatus = "under_review"
	QuotationAccepted    QuotationStatus = "accepted"
	QuotationDeclined    QuotationStatus = "declined"
)

type Quotation struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	RequisitionID uuid.UUID       `gorm:"type:uuid;index;not null;column:requisition_id" json:"requisition_id"`
	SupplierID    uuid.UUID       `gorm:"type:uuid;index;not null;column:supplier_id" json:"supplier_id"`
	Status        QuotationStatus `gorm:"not null;default:received;column:status" json:"status"`
	TotalCents    int64           `gorm:"not null;default:0;column:total_cents" json:"total_cents"`
	Currency      string          `gorm:"not null;default:BRL;column:currency" json:"currency"`
	ValidUntil    *time.Time      `gorm:"column:valid_until" json:"valid_until,omitempty"`
	Notes         string          `gorm:"column:notes" json:"notes,omitempty"`

	Items []QuotationItem `gorm:"foreignKey:QuotationID" json:"items,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Quotation) TableName() string { return "quotations" }

type QuotationItem struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	QuotationID       uuid.UUID  `gorm:"type:uuid;index;not null;column:quotation_id" json:"quotation_id"`
	RequisitionItemID *uuid.UUID `gorm:"type:uuid;column:requisition_item_id" json:"requisition_item_id,omitempty"`
	Description       string     `gorm:"not null;column:description" json:"description"`
	Quantity          float64    `gorm:"not null;column:quantity" json:"quantity"`
	UnitPriceCents    int64      `gorm:"not null;column:unit_price_cents" json:"unit_price_cents"`
	CreatedAt         time.Time  `gorm:"not null" json:"created_at"`
}

func (QuotationItem) TableName() string { return "quotation_items" }
