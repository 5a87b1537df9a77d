package controller

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kpsunited/kps-admin-backend/internal/app/service"
	"github.com/kpsunited/kps-admin-backend/internal/errors"
	"github.com/kpsunited/kps-admin-backend/internal/middleware"
)

type DocumentController struct {
	docService service.DocumentService
}

func NewDocumentController(docService service.DocumentService) *DocumentController {
	return &DocumentController{docService: docService}
}

func (ctrl *DocumentController) ListDocuments(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	docs, err := ctrl.docService.ListDocuments(c.Request.Context())
	if err != nil {
		log.Error("Failed to list documents", err, nil)
		errors.ParseAndRespond(c, err, "list")
		return
	}

	// Listings carry metadata only; payloads are fetched per document.
	for i := range docs {
		docs[i].Data = ""
	}

	c.JSON(http.StatusOK, gin.H{
		"documents": docs,
		"count":     len(docs),
	})
}

func (ctrl *DocumentController) UploadDocument(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.Warn("Document upload without file", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationRequired, "A file is required")
		return
	}

	name := c.PostForm("name")
	if name == "" {
		name = fileHeader.Filename
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", err, nil)
		errors.InternalError(c, "")
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		log.Error("Failed to read uploaded file", err, nil)
		errors.InternalError(c, "")
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	doc, err := ctrl.docService.UploadDocument(c.Request.Context(), name, mimeType, payload)
	if err != nil {
		log.Warn("Failed to upload document", map[string]interface{}{
			"name":  name,
			"size":  len(payload),
			"error": err.Error(),
		})
		errors.ParseAndRespond(c, err, "upload")
		return
	}

	log.Info("Document uploaded", map[string]interface{}{
		"document_id": doc.ID,
		"name":        doc.Name,
		"size":        len(payload),
	})

	doc.Data = ""
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Document uploaded successfully",
		"document": doc,
	})
}

func (ctrl *DocumentController) DownloadDocument(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Warn("Invalid document ID", map[string]interface{}{
			"document_id": c.Param("id"),
		})
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid document ID")
		return
	}

	doc, payload, err := ctrl.docService.GetDocument(c.Request.Context(), id)
	if err != nil {
		log.Warn("Failed to fetch document", map[string]interface{}{
			"document_id": id,
			"error":       err.Error(),
		})
		errors.ParseAndRespond(c, err, "fetch")
		return
	}

	contentType := doc.Type
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Name))
	c.Data(http.StatusOK, contentType, payload)
}

func (ctrl *DocumentController) DeleteDocument(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Warn("Invalid document ID", map[string]interface{}{
			"document_id": c.Param("id"),
		})
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid document ID")
		return
	}

	if err := ctrl.docService.DeleteDocument(c.Request.Context(), id); err != nil {
		log.Warn("Failed to delete document", map[string]interface{}{
			"document_id": id,
			"error":       err.Error(),
		})
		errors.ParseAndRespond(c, err, "delete")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Document deleted successfully",
	})
}
