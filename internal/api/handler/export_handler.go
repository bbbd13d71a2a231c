package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mobilis/backend/internal/service"
)

// ExportHandler serves the spreadsheet report and the calendar feed.
type ExportHandler struct {
	exports *service.ExportService
	logger  *zap.Logger
}

// Missions handles GET /export/missions, an xlsx download for operators.
func (h *ExportHandler) Missions(c *gin.Context) {
	buf, filename, err := h.exports.MissionsReport(c.Request.Context(), currentActor(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes(),
	)
}

// Calendar handles GET /missions/my/calendar, an iCalendar feed of the
// caller's missions.
func (h *ExportHandler) Calendar(c *gin.Context) {
	cal, err := h.exports.Calendar(c.Request.Context(), currentActor(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="missions.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(cal))
}
