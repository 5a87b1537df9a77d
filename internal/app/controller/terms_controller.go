package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kpsunited/kps-admin-backend/internal/app/service"
	"github.com/kpsunited/kps-admin-backend/internal/errors"
	"github.com/kpsunited/kps-admin-backend/internal/middleware"
)

type TermsController struct {
	termsService service.TermsService
}

func NewTermsController(termsService service.TermsService) *TermsController {
	return &TermsController{termsService: termsService}
}

type PublishTermsRequest struct {
	Text string `json:"text" binding:"required"`
}

// GetTerms is public: the terms page is readable without a session.
func (ctrl *TermsController) GetTerms(c *gin.Context) {
	terms, err := ctrl.termsService.GetTerms(c.Request.Context())
	if err != nil {
		errors.ParseAndRespond(c, err, "fetch")
		return
	}

	if terms == nil {
		c.JSON(http.StatusOK, gin.H{
			"published": false,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"published": true,
		"terms":     terms,
	})
}

func (ctrl *TermsController) PublishTerms(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PublishTermsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid terms request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationRequired, "Terms text is required")
		return
	}

	terms, err := ctrl.termsService.PublishTerms(c.Request.Context(), req.Text)
	if err != nil {
		log.Warn("Failed to publish terms", map[string]interface{}{
			"error": err.Error(),
		})
		errors.ParseAndRespond(c, err, "update")
		return
	}

	log.Info("Terms published", map[string]interface{}{
		"version": terms.Version,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Terms published successfully",
		"terms":   terms,
	})
}
