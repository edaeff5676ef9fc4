package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sourcexpress/sourcexpress-backend/internal/data/repos"
	types "github.com/sourcexpress/sourcexpress-backend/internal/domain"
	"github.com/sourcexpress/sourcexpress-backend/internal/http/response"
	"github.com/sourcexpress/sourcexpress-backend/internal/qualification"
	"github.com/sourcexpress/sourcexpress-backend/internal/services"
)

type SupplierHandler struct {
	supplierService services.SupplierService
}

func NewSupplierHandler(supplierService services.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// Register creates a supplier. When the document is already registered and
// allow_duplicate is false the response is 409 with the existing rows so the
// frontend can ask for confirmation.
func (sh *SupplierHandler) Register(c *gin.Context) {
	var req services.RegisterSupplierInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	result, err := sh.supplierService.Register(c.Request.Context(), req)
	if err != nil {
		response.RespondAppError(c, "supplier_register_failed", err)
		return
	}
	if result.Duplicate {
		c.JSON(http.StatusConflict, gin.H{
			"duplicate": true,
			"existing":  result.Existing,
		})
		return
	}
	response.RespondCreated(c, result.Supplier)
}

func (sh *SupplierHandler) Get(c *gin.Context) {
	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_supplier_id", err)
		return
	}
	supplier, err := sh.supplierService.Get(c.Request.Context(), supplierID)
	if err != nil {
		response.RespondAppError(c, "supplier_fetch_failed", err)
		return
	}
	response.RespondOK(c, supplier)
}

func (sh *SupplierHandler) List(c *gin.Context) {
	filter := repos.SupplierListFilter{
		Status:     qualification.Status(c.Query("status")),
		PersonType: types.SupplierPersonType(c.Query("person_type")),
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil {
		filter.Offset = offset
	}
	suppliers, err := sh.supplierService.List(c.Request.Context(), filter)
	if err != nil {
		response.RespondAppError(c, "supplier_list_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"suppliers": suppliers})
}

func (sh *SupplierHandler) UpdateStatus(c *gin.Context) {
	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_supplier_id", err)
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := sh.supplierService.UpdateStatus(c.Request.Context(), supplierID, qualification.Status(req.Status)); err != nil {
		response.RespondAppError(c, "supplier_status_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (sh *SupplierHandler) AddContact(c *gin.Context) {
	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_supplier_id", err)
		return
	}
	var req struct {
		Name      string `json:"name"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
		RoleTitle string `json:"role_title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	contact, err := sh.supplierService.AddContact(c.Request.Context(), &types.SupplierContact{
		SupplierID: supplierID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		RoleTitle:  req.RoleTitle,
	})
	if err != nil {
		response.RespondAppError(c, "supplier_contact_failed", err)
		return
	}
	response.RespondCreated(c, contact)
}

func (sh *SupplierHandler) AddDocument(c *gin.Context) {
	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_supplier_id", err)
		return
	}
	var req struct {
		Type      string     `json:"type"`
		Number    string     `json:"number"`
		IssuedAt  *time.Time `json:"issued_at"`
		ExpiresAt *time.Time `json:"expires_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	document, err := sh.supplierService.AddDocument(c.Request.Context(), &types.SupplierDocument{
		SupplierID: supplierID,
		Type:       req.Type,
		Number:     req.Number,
		IssuedAt:   req.IssuedAt,
		ExpiresAt:  req.ExpiresAt,
	})
	if err != nil {
		response.RespondAppError(c, "supplier_document_failed", err)
		return
	}
	response.RespondCreated(c, document)
}

func (sh *SupplierHandler) Compliance(c *gin.Context) {
	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_supplier_id", err)
		return
	}
	compliance, err := sh.supplierService.Compliance(c.Request.Context(), supplierID)
	if err != nil {
		response.RespondAppError(c, "supplier_compliance_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"documents": compliance})
}
