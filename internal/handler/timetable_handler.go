package handler

import (
	"bytes"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/models"
	"github.com/noah-isme/uni-timetable-api/internal/service"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
	"github.com/noah-isme/uni-timetable-api/pkg/response"
)

const cacheHeader = "X-Cache"

type timetableGenerator interface {
	Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*service.TimetableRun, error)
	Export(ctx context.Context, req dto.GenerateTimetableRequest, format dto.ExportFormat) (*dto.ExportedTimetable, *service.TimetableRun, error)
	Stats(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.ProblemStatsResponse, error)
	ListRuns(ctx context.Context, query dto.SchedulingRunQuery) ([]models.SchedulingRun, error)
	CacheEnabled() bool
}

// TimetableHandler exposes the scheduling endpoints.
type TimetableHandler struct {
	service timetableGenerator
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(svc *service.TimetableService) *TimetableHandler {
	return &TimetableHandler{service: svc}
}

// Generate godoc
// @Summary Generate a timetable
// @Description Places every lecture, lab and tutorial into the weekly grid. Rejected input returns 400 with the validation errors.
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.GenerateTimetableRequest true "Scheduling problem"
// @Success 200 {object} dto.GenerateTimetableResponse
// @Failure 400 {object} dto.GenerateTimetableResponse
// @Failure 500 {object} dto.GenerateTimetableResponse
// @Router /schedule [post]
func (h *TimetableHandler) Generate(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}
	run, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.writeRun(c, run)
}

// Export godoc
// @Summary Generate and export a timetable
// @Tags Timetable
// @Accept json
// @Produce text/csv,application/pdf,application/json
// @Param format query string false "csv, pdf or json" default(csv)
// @Param payload body dto.GenerateTimetableRequest true "Scheduling problem"
// @Success 200 {file} file
// @Failure 400 {object} response.Failure
// @Router /schedule/export [post]
func (h *TimetableHandler) Export(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}
	format := dto.ExportFormat(c.DefaultQuery("format", string(dto.ExportCSV)))
	file, run, err := h.service.Export(c.Request.Context(), req, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	if file == nil {
		h.writeRun(c, run)
		return
	}
	h.setCacheHeader(c, run)
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}

// Stats godoc
// @Summary Summarise a scheduling problem
// @Description Counts the input collections and the section-slots the components need, without scheduling.
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.GenerateTimetableRequest true "Scheduling problem"
// @Success 200 {object} response.Envelope
// @Router /schedule/stats [post]
func (h *TimetableHandler) Stats(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}
	stats, err := h.service.Stats(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Wrapped(c, http.StatusOK, stats)
}

// Runs godoc
// @Summary List recent scheduling runs
// @Tags Timetable
// @Produce json
// @Param outcome query string false "SUCCEEDED, REJECTED or FAULTED"
// @Param limit query int false "Maximum records" default(50)
// @Success 200 {object} response.Envelope
// @Failure 503 {object} response.Failure
// @Router /schedule/runs [get]
func (h *TimetableHandler) Runs(c *gin.Context) {
	var query dto.SchedulingRunQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid run query"))
		return
	}
	runs, err := h.service.ListRuns(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Wrapped(c, http.StatusOK, runs, map[string]interface{}{"count": len(runs)})
}

func (h *TimetableHandler) bindRequest(c *gin.Context) (dto.GenerateTimetableRequest, bool) {
	var req dto.GenerateTimetableRequest
	raw, err := c.GetRawData()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unreadable request body"))
		return req, false
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		response.Error(c, appErrors.ErrEmptyBody)
		return req, false
	}
	if err := binding.JSON.BindBody(raw, &req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable payload"))
		return req, false
	}
	return req, true
}

func (h *TimetableHandler) writeRun(c *gin.Context, run *service.TimetableRun) {
	status := http.StatusOK
	switch {
	case run.Fault:
		status = http.StatusInternalServerError
	case !run.Response.Success:
		status = http.StatusBadRequest
	}
	h.setCacheHeader(c, run)
	response.JSON(c, status, run.Response)
}

func (h *TimetableHandler) setCacheHeader(c *gin.Context, run *service.TimetableRun) {
	if !h.service.CacheEnabled() {
		return
	}
	if run.CacheHit {
		c.Header(cacheHeader, "HIT")
		return
	}
	c.Header(cacheHeader, "MISS")
}
