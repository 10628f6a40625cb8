package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/CaioSouzalimaa/clearbalance/internal/application"
	"github.com/CaioSouzalimaa/clearbalance/pkg/response"
)

type DashboardHandler struct {
	Svc    *application.SummaryService
	Logger *logrus.Logger
}

func NewDashboardHandler(svc *application.SummaryService, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{Svc: svc, Logger: logger}
}

// Summary handles GET /api/dashboard/summary?month=YYYY-MM, defaulting to
// the current month.
func (h *DashboardHandler) Summary(c *gin.Context) {
	month := time.Now()
	if m := c.Query("month"); m != "" {
		parsed, err := time.Parse(monthLayout, m)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid input",
				map[string]string{"month": "must match datetime format: " + monthLayout})
			return
		}
		month = parsed
	}

	ov, err := h.Svc.Overview(c.Request.Context(), c.GetString("userID"), month)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ov, "dashboard summary", nil)
}
