package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/CaioSouzalimaa/clearbalance/internal/application"
	"github.com/CaioSouzalimaa/clearbalance/internal/domain/entity"
	"github.com/CaioSouzalimaa/clearbalance/pkg/response"
	"github.com/CaioSouzalimaa/clearbalance/pkg/validation"
)

const dateLayout = "2006-01-02"
const monthLayout = "2006-01"

type TransactionHandler struct {
	Svc    *application.TransactionService
	Logger *logrus.Logger
}

func NewTransactionHandler(svc *application.TransactionService, logger *logrus.Logger) *TransactionHandler {
	return &TransactionHandler{Svc: svc, Logger: logger}
}

type transactionRequest struct {
	Description string `json:"description"`
	CategoryID  string `json:"category_id"`
	Type        string `json:"type"`
	AmountCents int64  `json:"amount_cents"`
	OccurredOn  string `json:"occurred_on"` // YYYY-MM-DD
}

func (r transactionRequest) toInput() (application.TransactionInput, *validation.Error) {
	occurred, err := time.Parse(dateLayout, r.OccurredOn)
	if err != nil {
		return application.TransactionInput{}, &validation.Error{
			Fields: map[string]string{"occurred_on": "must match datetime format: " + dateLayout},
		}
	}
	return application.TransactionInput{
		Description: r.Description,
		CategoryID:  r.CategoryID,
		Type:        r.Type,
		AmountCents: r.AmountCents,
		OccurredOn:  occurred,
	}, nil
}

func transactionView(t *entity.Transaction) gin.H {
	return gin.H{
		"id":           t.ID,
		"description":  t.Description,
		"category_id":  t.CategoryID,
		"type":         t.Type,
		"amount_cents": t.AmountCents,
		"occurred_on":  t.OccurredOn.Format(dateLayout),
		"created_at":   t.CreatedAt,
		"updated_at":   t.UpdatedAt,
	}
}

// List handles GET /api/transactions with optional month, category_id, type
// and limit query filters.
func (h *TransactionHandler) List(c *gin.Context) {
	var f application.ListFilter
	if m := c.Query("month"); m != "" {
		month, err := time.Parse(monthLayout, m)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid input",
				map[string]string{"month": "must match datetime format: " + monthLayout})
			return
		}
		f.Month = month
	}
	f.CategoryID = c.Query("category_id")
	f.Type = c.Query("type")
	if l := c.Query("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			response.Error[any](c, http.StatusBadRequest, "invalid input",
				map[string]string{"limit": "must be a valid number"})
			return
		}
		f.Limit = n
	}

	list, err := h.Svc.List(c.Request.Context(), c.GetString("userID"), f)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	out := make([]gin.H, 0, len(list))
	for _, t := range list {
		out = append(out, transactionView(t))
	}
	response.Success(c, http.StatusOK, out, "transactions", map[string]any{"count": len(out)})
}

func (h *TransactionHandler) Create(c *gin.Context) {
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	in, verr := req.toInput()
	if verr != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid input", verr.Fields)
		return
	}
	t, err := h.Svc.Create(c.Request.Context(), c.GetString("userID"), in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, transactionView(t), "transaction created", nil)
}

func (h *TransactionHandler) Update(c *gin.Context) {
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	in, verr := req.toInput()
	if verr != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid input", verr.Fields)
		return
	}
	t, err := h.Svc.Update(c.Request.Context(), c.GetString("userID"), c.Param("id"), in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, transactionView(t), "transaction updated", nil)
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "transaction deleted", nil)
}
