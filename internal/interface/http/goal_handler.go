package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/CaioSouzalimaa/clearbalance/internal/application"
	"github.com/CaioSouzalimaa/clearbalance/internal/domain/entity"
	"github.com/CaioSouzalimaa/clearbalance/pkg/response"
	"github.com/CaioSouzalimaa/clearbalance/pkg/validation"
)

type GoalHandler struct {
	Svc    *application.GoalService
	Logger *logrus.Logger
}

func NewGoalHandler(svc *application.GoalService, logger *logrus.Logger) *GoalHandler {
	return &GoalHandler{Svc: svc, Logger: logger}
}

type goalRequest struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	TargetCents int64  `json:"target_cents"`
	SavedCents  int64  `json:"saved_cents"`
	Deadline    string `json:"deadline"` // YYYY-MM-DD
}

func (r goalRequest) toInput() (application.GoalInput, *validation.Error) {
	deadline, err := time.Parse(dateLayout, r.Deadline)
	if err != nil {
		return application.GoalInput{}, &validation.Error{
			Fields: map[string]string{"deadline": "must match datetime format: " + dateLayout},
		}
	}
	return application.GoalInput{
		Name:        r.Name,
		Label:       r.Label,
		TargetCents: r.TargetCents,
		SavedCents:  r.SavedCents,
		Deadline:    deadline,
	}, nil
}

func goalView(g *entity.Goal) gin.H {
	return gin.H{
		"id":           g.ID,
		"name":         g.Name,
		"label":        g.Label,
		"target_cents": g.TargetCents,
		"saved_cents":  g.SavedCents,
		"progress":     g.Progress(),
		"deadline":     g.Deadline.Format(dateLayout),
		"created_at":   g.CreatedAt,
		"updated_at":   g.UpdatedAt,
	}
}

func (h *GoalHandler) List(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	out := make([]gin.H, 0, len(list))
	for _, g := range list {
		out = append(out, goalView(g))
	}
	response.Success(c, http.StatusOK, out, "goals", nil)
}

func (h *GoalHandler) Create(c *gin.Context) {
	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	in, verr := req.toInput()
	if verr != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid input", verr.Fields)
		return
	}
	g, err := h.Svc.Create(c.Request.Context(), c.GetString("userID"), in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, goalView(g), "goal created", nil)
}

func (h *GoalHandler) Update(c *gin.Context) {
	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	in, verr := req.toInput()
	if verr != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid input", verr.Fields)
		return
	}
	g, err := h.Svc.Update(c.Request.Context(), c.GetString("userID"), c.Param("id"), in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, goalView(g), "goal updated", nil)
}

type addSavingsRequest struct {
	AmountCents int64 `json:"amount_cents"`
}

// AddSavings handles POST /api/goals/:id/savings.
func (h *GoalHandler) AddSavings(c *gin.Context) {
	var req addSavingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	g, err := h.Svc.AddSavings(c.Request.Context(), c.GetString("userID"), c.Param("id"), req.AmountCents)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, goalView(g), "savings added", nil)
}

func (h *GoalHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "goal deleted", nil)
}
