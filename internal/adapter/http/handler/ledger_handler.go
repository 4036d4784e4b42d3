package handler

import (
	"ledger-service/internal/adapter/http/dto"
	"ledger-service/internal/core/ports"
	"ledger-service/pkg/apperror"
	"ledger-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LedgerHandler handles the ledger API endpoints.
type LedgerHandler struct {
	ledgerSvc ports.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerSvc ports.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerSvc: ledgerSvc}
}

// Ping handles POST /api/ping.
func (h *LedgerHandler) Ping(c *gin.Context) {
	response.OK(c, nil)
}

// Status handles POST /api/status.
func (h *LedgerHandler) Status(c *gin.Context) {
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrBadRequest())
		return
	}
	id, err := uuid.Parse(req.Addition.UUID)
	if err != nil {
		response.Error(c, apperror.ErrBadRequest())
		return
	}

	status, err := h.ledgerSvc.GetStatus(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.StatusResponse{
		Balance: status.Balance,
		Hold:    status.Hold,
		Status:  status.Active,
	})
}

// Add handles POST /api/add.
func (h *LedgerHandler) Add(c *gin.Context) {
	id, value, ok := bindAmount(c)
	if !ok {
		return
	}

	if err := h.ledgerSvc.Credit(c.Request.Context(), id, value); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil)
}

// Subtract handles POST /api/subtract.
func (h *LedgerHandler) Subtract(c *gin.Context) {
	id, value, ok := bindAmount(c)
	if !ok {
		return
	}

	if err := h.ledgerSvc.Reserve(c.Request.Context(), id, value); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil)
}

// bindAmount parses and validates the shared {uuid, value} addition. On
// failure it writes the 400 response and reports ok=false.
func bindAmount(c *gin.Context) (uuid.UUID, int64, bool) {
	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrBadRequest())
		return uuid.Nil, 0, false
	}
	id, err := uuid.Parse(req.Addition.UUID)
	if err != nil {
		response.Error(c, apperror.ErrBadRequest())
		return uuid.Nil, 0, false
	}
	return id, *req.Addition.Value, true
}
