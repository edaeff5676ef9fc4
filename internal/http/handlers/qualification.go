package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sourcexpress/sourcexpress-backend/internal/http/response"
	"github.com/sourcexpress/sourcexpress-backend/internal/qualification"
	"github.com/sourcexpress/sourcexpress-backend/internal/services"
)

type QualificationHandler struct {
	qualificationService services.QualificationService
}

func NewQualificationHandler(qualificationService services.QualificationService) *QualificationHandler {
	return &QualificationHandler{qualificationService: qualificationService}
}

func (qh *QualificationHandler) StartSession(c *gin.Context) {
	var req struct {
		SupplierID uuid.UUID `json:"supplier_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	view, err := qh.qualificationService.StartSession(c.Request.Context(), req.SupplierID)
	if err != nil {
		response.RespondAppError(c, "session_start_failed", err)
		return
	}
	response.RespondCreated(c, view)
}

func (qh *QualificationHandler) GetSession(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	view, err := qh.qualificationService.Session(c.Request.Context(), sessionID)
	if err != nil {
		response.RespondAppError(c, "session_fetch_failed", err)
		return
	}
	response.RespondOK(c, view)
}

func (qh *QualificationHandler) SelectScope(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	var req struct {
		SupplyType string   `json:"supply_type"`
		Areas      []string `json:"areas"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	areas := make([]qualification.RequestingArea, 0, len(req.Areas))
	for _, a := range req.Areas {
		areas = append(areas, qualification.RequestingArea(a))
	}
	view, err := qh.qualificationService.SelectScope(c.Request.Context(), sessionID, qualification.SupplyType(req.SupplyType), areas)
	if err != nil {
		response.RespondAppError(c, "scope_select_failed", err)
		return
	}
	response.RespondOK(c, view)
}

func (qh *QualificationHandler) SetAnswer(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	var req struct {
		QuestionID string `json:"question_id"`
		Value      any    `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	view, err := qh.qualificationService.SetAnswer(c.Request.Context(), sessionID, req.QuestionID, req.Value)
	if err != nil {
		response.RespondAppError(c, "answer_failed", err)
		return
	}
	response.RespondOK(c, view)
}

// Advance moves the wizard forward. Unanswered required questions come back
// as 422 with their ids so the form can highlight them.
func (qh *QualificationHandler) Advance(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	view, err := qh.qualificationService.Advance(c.Request.Context(), sessionID)
	if err != nil {
		var incomplete *qualification.IncompleteError
		if errors.As(err, &incomplete) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   gin.H{"message": incomplete.Error(), "code": "questionnaire_incomplete"},
				"missing": incomplete.Unanswered,
			})
			return
		}
		response.RespondAppError(c, "advance_failed", err)
		return
	}
	response.RespondOK(c, view)
}

func (qh *QualificationHandler) Back(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	view, err := qh.qualificationService.Back(c.Request.Context(), sessionID)
	if err != nil {
		response.RespondAppError(c, "back_failed", err)
		return
	}
	response.RespondOK(c, view)
}

func (qh *QualificationHandler) Submit(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	record, err := qh.qualificationService.Submit(c.Request.Context(), sessionID)
	if err != nil {
		response.RespondAppError(c, "submit_failed", err)
		return
	}
	response.RespondCreated(c, record)
}

// Preview assembles the questionnaire for a scope without opening a session,
// used by the admin screen that shows what a supplier will be asked.
func (qh *QualificationHandler) Preview(c *gin.Context) {
	var req struct {
		SupplyType string   `json:"supply_type"`
		Areas      []string `json:"areas"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	areas := make([]qualification.RequestingArea, 0, len(req.Areas))
	for _, a := range req.Areas {
		areas = append(areas, qualification.RequestingArea(a))
	}
	model, err := qh.qualificationService.Preview(qualification.SupplyType(req.SupplyType), areas)
	if err != nil {
		response.RespondAppError(c, "preview_failed", err)
		return
	}
	response.RespondOK(c, model)
}

func (qh *QualificationHandler) Records(c *gin.Context) {
	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_supplier_id", err)
		return
	}
	records, err := qh.qualificationService.Records(c.Request.Context(), supplierID)
	if err != nil {
		response.RespondAppError(c, "records_fetch_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"records": records})
}

// Models lists persisted questionnaire models for one supply type.
func (qh *QualificationHandler) Models(c *gin.Context) {
	models, err := qh.qualificationService.Models(c.Request.Context(), qualification.SupplyType(c.Query("supply_type")))
	if err != nil {
		response.RespondAppError(c, "models_fetch_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"models": models})
}

func (qh *QualificationHandler) GetModel(c *gin.Context) {
	modelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_model_id", err)
		return
	}
	model, err := qh.qualificationService.Model(c.Request.Context(), modelID)
	if err != nil {
		response.RespondAppError(c, "model_fetch_failed", err)
		return
	}
	response.RespondOK(c, model)
}

func (qh *QualificationHandler) StatusPresentations(c *gin.Context) {
	response.RespondOK(c, gin.H{"statuses": qh.qualificationService.StatusPresentations()})
}
