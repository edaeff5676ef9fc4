package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/sourcexpress/sourcexpress-backend/internal/http/response"
	"github.com/sourcexpress/sourcexpress-backend/internal/services"
)

type LookupHandler struct {
	lookupService services.LookupService
}

func NewLookupHandler(lookupService services.LookupService) *LookupHandler {
	return &LookupHandler{lookupService: lookupService}
}

func (lh *LookupHandler) CEP(c *gin.Context) {
	addr, err := lh.lookupService.CEP(c.Request.Context(), c.Param("cep"))
	if err != nil {
		response.RespondAppError(c, "cep_lookup_failed", err)
		return
	}
	response.RespondOK(c, addr)
}

func (lh *LookupHandler) CNPJ(c *gin.Context) {
	company, err := lh.lookupService.CNPJ(c.Request.Context(), c.Param("cnpj"))
	if err != nil {
		response.RespondAppError(c, "cnpj_lookup_failed", err)
		return
	}
	response.RespondOK(c, company)
}

// Prefill feeds the registration form: registry data when the CNPJ resolves,
// plus any suppliers already registered with the same document.
func (lh *LookupHandler) Prefill(c *gin.Context) {
	prefill, err := lh.lookupService.PrefillRegistration(c.Request.Context(), c.Param("cnpj"))
	if err != nil {
		response.RespondAppError(c, "prefill_failed", err)
		return
	}
	response.RespondOK(c, prefill)
}
