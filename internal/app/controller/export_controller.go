package controller

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kpsunited/kps-admin-backend/internal/app/service"
	"github.com/kpsunited/kps-admin-backend/internal/errors"
	"github.com/kpsunited/kps-admin-backend/internal/middleware"
)

type ExportController struct {
	exportService service.ExportService
}

func NewExportController(exportService service.ExportService) *ExportController {
	return &ExportController{exportService: exportService}
}

func (ctrl *ExportController) ExportStoresCSV(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	data, err := ctrl.exportService.StoresCSV(c.Request.Context())
	if err != nil {
		log.Error("Failed to export stores as CSV", err, nil)
		errors.ParseAndRespond(c, err, "fetch")
		return
	}

	serveExport(c, "stores", "csv", "text/csv", data)
}

func (ctrl *ExportController) ExportStoresJSON(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	data, err := ctrl.exportService.StoresJSON(c.Request.Context())
	if err != nil {
		log.Error("Failed to export stores as JSON", err, nil)
		errors.ParseAndRespond(c, err, "fetch")
		return
	}

	serveExport(c, "stores", "json", "application/json", data)
}

func (ctrl *ExportController) EmailList(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	emails, total, err := ctrl.exportService.EmailList(c.Request.Context())
	if err != nil {
		log.Error("Failed to build email list", err, nil)
		errors.ParseAndRespond(c, err, "fetch")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"emails": emails,
		"count":  total,
	})
}

// ExportReport builds the filtered town/vendor report. format=xlsx
// switches the output from CSV to a workbook; archive=true additionally
// uploads the file to the report bucket.
func (ctrl *ExportController) ExportReport(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	town := c.Query("town")
	vendors := c.QueryArray("vendor")
	format := strings.ToLower(c.DefaultQuery("format", "csv"))
	archive := strings.EqualFold(c.Query("archive"), "true")

	var (
		data        []byte
		contentType string
		err         error
	)
	switch format {
	case "csv":
		contentType = "text/csv"
		data, err = ctrl.exportService.ReportCSV(c.Request.Context(), town, vendors)
	case "xlsx":
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		data, err = ctrl.exportService.ReportXLSX(c.Request.Context(), town, vendors)
	default:
		errors.BadRequest(c, errors.ValidationInvalidInput, "format must be csv or xlsx")
		return
	}
	if err != nil {
		log.Error("Failed to build report", err, map[string]interface{}{
			"format": format,
		})
		errors.ParseAndRespond(c, err, "fetch")
		return
	}

	filename := fmt.Sprintf("report-%s.%s", time.Now().Format("2006-01-02"), format)
	if archive {
		url, err := ctrl.exportService.ArchiveReport(c.Request.Context(), filename, contentType, data)
		if err != nil {
			log.Error("Failed to archive report", err, map[string]interface{}{
				"filename": filename,
			})
			errors.RespondWithError(c, http.StatusBadGateway, errors.InternalExternalAPI, "Failed to archive the report")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Report archived successfully",
			"url":     url,
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

func serveExport(c *gin.Context, name, ext, contentType string, data []byte) {
	filename := fmt.Sprintf("%s-%s.%s", name, time.Now().Format("2006-01-02"), ext)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
