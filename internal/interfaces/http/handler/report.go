package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appreport "github.com/kvk/backend/internal/application/report"
	"github.com/kvk/backend/internal/infrastructure/logger"
	"github.com/kvk/backend/internal/interfaces/http/middleware"
)

// ReportHandler serves the section catalog, report generation and PDF
// rendering endpoints.
type ReportHandler struct {
	BaseHandler
	reports *appreport.ReportService
	renders *appreport.RenderService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reports *appreport.ReportService, renders *appreport.RenderService) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		renders: renders,
	}
}

// RegisterRoutes registers report routes on the given group
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/config", h.GetConfig)
		reports.POST("/generate", h.Generate)
		reports.POST("/render", h.Render)
	}
}

// GetConfig returns the section catalog with per-section filter and
// grouping metadata.
func (h *ReportHandler) GetConfig(c *gin.Context) {
	if _, ok := h.caller(c); !ok {
		return
	}
	h.Success(c, h.reports.GetConfig())
}

// Generate assembles a report document and returns it as JSON.
func (h *ReportHandler) Generate(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req appreport.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	doc, err := h.reports.GenerateReport(c.Request.Context(), caller, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// Render generates a report, renders it to PDF (or HTML when requested)
// and either streams the bytes inline or archives them and returns a
// download URL.
func (h *ReportHandler) Render(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req appreport.RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.renders.RenderReport(c.Request.Context(), caller, req)
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("report rendering failed", zap.Error(err))
		h.HandleError(c, err)
		return
	}

	if req.Archive {
		h.Success(c, resp)
		return
	}

	ext := ".pdf"
	if req.Format == "html" {
		ext = ".html"
	}
	c.Header("X-Report-ID", resp.ReportID.String())
	c.Header("X-Page-Count", strconv.Itoa(resp.PageCount))
	c.Header("X-Failed-Kvks", strconv.Itoa(resp.FailedKvks))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", resp.ReportID.String()+ext))
	c.Data(http.StatusOK, resp.ContentType, resp.Data)
}
