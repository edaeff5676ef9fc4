package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/sourcexpress/sourcexpress-backend/internal/domain"
	"github.com/sourcexpress/sourcexpress-backend/internal/http/response"
	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/ctxutil"
	"github.com/sourcexpress/sourcexpress-backend/internal/services"
)

type RequisitionHandler struct {
	requisitionService services.RequisitionService
}

func NewRequisitionHandler(requisitionService services.RequisitionService) *RequisitionHandler {
	return &RequisitionHandler{requisitionService: requisitionService}
}

func (rh *RequisitionHandler) Create(c *gin.Context) {
	var req services.CreateRequisitionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	// The requester is the authenticated user.
	if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil {
		req.RequesterID = rd.UserID
	}
	requisition, err := rh.requisitionService.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondAppError(c, "requisition_create_failed", err)
		return
	}
	response.RespondCreated(c, requisition)
}

func (rh *RequisitionHandler) Get(c *gin.Context) {
	requisitionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_requisition_id", err)
		return
	}
	requisition, err := rh.requisitionService.Get(c.Request.Context(), requisitionID)
	if err != nil {
		response.RespondAppError(c, "requisition_fetch_failed", err)
		return
	}
	response.RespondOK(c, requisition)
}

func (rh *RequisitionHandler) ListMine(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	requisitions, err := rh.requisitionService.ListByRequester(c.Request.Context(), rd.UserID)
	if err != nil {
		response.RespondAppError(c, "requisition_list_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"requisitions": requisitions})
}

func (rh *RequisitionHandler) Transition(c *gin.Context) {
	requisitionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_requisition_id", err)
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := rh.requisitionService.Transition(c.Request.Context(), requisitionID, types.RequisitionStatus(req.Status)); err != nil {
		response.RespondAppError(c, "requisition_transition_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

type QuotationHandler struct {
	quotationService services.QuotationService
}

func NewQuotationHandler(quotationService services.QuotationService) *QuotationHandler {
	return &QuotationHandler{quotationService: quotationService}
}

func (qh *QuotationHandler) Submit(c *gin.Context) {
	var req services.SubmitQuotationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	quotation, err := qh.quotationService.Submit(c.Request.Context(), req)
	if err != nil {
		response.RespondAppError(c, "quotation_submit_failed", err)
		return
	}
	response.RespondCreated(c, quotation)
}

func (qh *QuotationHandler) Get(c *gin.Context) {
	quotationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_quotation_id", err)
		return
	}
	quotation, err := qh.quotationService.Get(c.Request.Context(), quotationID)
	if err != nil {
		response.RespondAppError(c, "quotation_fetch_failed", err)
		return
	}
	response.RespondOK(c, quotation)
}

func (qh *QuotationHandler) ListByRequisition(c *gin.Context) {
	requisitionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_requisition_id", err)
		return
	}
	quotations, err := qh.quotationService.ListByRequisition(c.Request.Context(), requisitionID)
	if err != nil {
		response.RespondAppError(c, "quotation_list_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"quotations": quotations})
}

func (qh *QuotationHandler) Transition(c *gin.Context) {
	quotationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_quotation_id", err)
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := qh.quotationService.Transition(c.Request.Context(), quotationID, types.QuotationStatus(req.Status)); err != nil {
		response.RespondAppError(c, "quotation_transition_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
