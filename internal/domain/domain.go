// Package domain re-exports the persisted model types so callers can refer
// to them through a single import, mirroring how the data and service
// layers name them.
package domain

import (
	"github.com/sourcexpress/sourcexpress-backend/internal/domain/procurement"
	"github.com/sourcexpress/sourcexpress-backend/internal/domain/qualification"
	"github.com/sourcexpress/sourcexpress-backend/internal/domain/supplier"
	"github.com/sourcexpress/sourcexpress-backend/internal/domain/user"
)

type (
	User      = user.User
	UserToken = user.UserToken
	UserRole  = user.Role

	Supplier           = supplier.Supplier
	SupplierPersonType = supplier.PersonType
	SupplierContact    = supplier.Contact
	SupplierDocument   = supplier.Document
	ComplianceStatus   = supplier.ComplianceStatus

	QuestionnaireModel  = qualification.QuestionnaireModel
	QualificationRecord = qualification.QualificationRecord

	Requisition       = procurement.Requisition
	RequisitionItem   = procurement.RequisitionItem
	RequisitionStatus = procurement.RequisitionStatus
	Quotation         = procurement.Quotation
	QuotationItem     = procurement.QuotationItem
	QuotationStatus   = procurement.QuotationStatus
)

const (
	RoleBuyer    = user.RoleBuyer
	RoleSupplier = user.RoleSupplier
	RoleAdmin    = user.RoleAdmin

	PersonCNPJ = supplier.PersonCNPJ
	PersonCPF  = supplier.PersonCPF

	ComplianceValid    = supplier.ComplianceValid
	ComplianceExpiring = supplier.ComplianceExpiring
	ComplianceExpired  = supplier.ComplianceExpired

	ExpiringWindow = supplier.ExpiringWindow

	RequisitionDraft     = procurement.RequisitionDraft
	RequisitionSubmitted = procurement.RequisitionSubmitted
	RequisitionApproved  = procurement.RequisitionApproved
	RequisitionRejected  = procurement.RequisitionRejected

	QuotationReceived    = procurement.QuotationReceived
	QuotationUnderReview = procurement.QuotationUnderReview
	QuotationAccepted    = procurement.QuotationAccepted
	QuotationDeclined    = procurement.QuotationDeclined
)
