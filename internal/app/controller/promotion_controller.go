package controller

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kpsunited/kps-admin-backend/internal/app/service"
	"github.com/kpsunited/kps-admin-backend/internal/errors"
	"github.com/kpsunited/kps-admin-backend/internal/middleware"
)

type PromotionController struct {
	promoService service.PromotionService
}

func NewPromotionController(promoService service.PromotionService) *PromotionController {
	return &PromotionController{promoService: promoService}
}

func (ctrl *PromotionController) ListPromotions(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	promos, err := ctrl.promoService.ListPromotions(c.Request.Context())
	if err != nil {
		log.Error("Failed to list promotions", err, nil)
		errors.ParseAndRespond(c, err, "list")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"promotions": promos,
		"count":      len(promos),
	})
}

// CreatePromotion accepts a multipart form: title, description, vendor
// and an optional image file.
func (ctrl *PromotionController) CreatePromotion(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	title := c.PostForm("title")
	description := c.PostForm("description")
	vendor := c.PostForm("vendor")

	var image []byte
	if fileHeader, err := c.FormFile("image"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			log.Error("Failed to open promotion image", err, nil)
			errors.InternalError(c, "")
			return
		}
		defer file.Close()

		image, err = io.ReadAll(file)
		if err != nil {
			log.Error("Failed to read promotion image", err, nil)
			errors.InternalError(c, "")
			return
		}
	}

	promo, err := ctrl.promoService.CreatePromotion(c.Request.Context(), title, description, vendor, image)
	if err != nil {
		log.Warn("Failed to create promotion", map[string]interface{}{
			"title": title,
			"error": err.Error(),
		})
		errors.ParseAndRespond(c, err, "create")
		return
	}

	log.Info("Promotion created", map[string]interface{}{
		"promotion_id": promo.ID,
		"title":        promo.Title,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Promotion created successfully",
		"promotion": promo,
	})
}

func (ctrl *PromotionController) DeletePromotion(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Warn("Invalid promotion ID", map[string]interface{}{
			"promotion_id": c.Param("id"),
		})
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid promotion ID")
		return
	}

	if err := ctrl.promoService.DeletePromotion(c.Request.Context(), id); err != nil {
		log.Warn("Failed to delete promotion", map[string]interface{}{
			"promotion_id": id,
			"error":        err.Error(),
		})
		errors.ParseAndRespond(c, err, "delete")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Promotion deleted successfully",
	})
}
