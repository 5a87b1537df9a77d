package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kpsunited/kps-admin-backend/internal/app/model"
	"github.com/kpsunited/kps-admin-backend/internal/app/service"
	"github.com/kpsunited/kps-admin-backend/internal/errors"
	"github.com/kpsunited/kps-admin-backend/internal/middleware"
)

type VendorController struct {
	vendorService service.VendorService
	commService   service.CommunicationService
}

func NewVendorController(vendorService service.VendorService, commService service.CommunicationService) *VendorController {
	return &VendorController{
		vendorService: vendorService,
		commService:   commService,
	}
}

type VendorRequest struct {
	ID           int64  `json:"id"`
	Name         string `json:"name" binding:"required"`
	Pricing      string `json:"pricing"`
	ContactName  string `json:"contactName"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
}

type CommunicationRequest struct {
	VendorID int64  `json:"vendorId" binding:"required"`
	Type     string `json:"type"`
	Message  string `json:"message" binding:"required"`
}

func (ctrl *VendorController) ListVendors(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	vendors, err := ctrl.vendorService.ListVendors(c.Request.Context())
	if err != nil {
		log.Error("Failed to list vendors", err, nil)
		errors.ParseAndRespond(c, err, "list")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vendors": vendors,
		"count":   len(vendors),
	})
}

func (ctrl *VendorController) UpsertVendor(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req VendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid vendor request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Vendor name is required")
		return
	}

	vendor, err := ctrl.vendorService.UpsertVendor(c.Request.Context(), model.Vendor{
		ID:           req.ID,
		Name:         req.Name,
		Pricing:      req.Pricing,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	})
	if err != nil {
		log.Error("Failed to upsert vendor", err, map[string]interface{}{
			"vendor_id": req.ID,
		})
		errors.ParseAndRespond(c, err, "update")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vendor saved successfully",
		"vendor":  vendor,
	})
}

func (ctrl *VendorController) DeleteVendor(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Warn("Invalid vendor ID", map[string]interface{}{
			"vendor_id": c.Param("id"),
		})
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid vendor ID")
		return
	}

	if err := ctrl.vendorService.DeleteVendor(c.Request.Context(), id); err != nil {
		log.Warn("Failed to delete vendor", map[string]interface{}{
			"vendor_id": id,
			"error":     err.Error(),
		})
		errors.ParseAndRespond(c, err, "delete")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vendor deleted successfully",
	})
}

func (ctrl *VendorController) ListCommunications(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	comms, err := ctrl.commService.ListCommunications(c.Request.Context())
	if err != nil {
		log.Error("Failed to list communications", err, nil)
		errors.ParseAndRespond(c, err, "list")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"communications": comms,
		"count":          len(comms),
	})
}

func (ctrl *VendorController) AppendCommunication(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CommunicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid communication request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Vendor ID and message are required")
		return
	}

	comm, err := ctrl.commService.AppendCommunication(c.Request.Context(), req.VendorID, req.Type, req.Message)
	if err != nil {
		log.Error("Failed to append communication", err, map[string]interface{}{
			"vendor_id": req.VendorID,
		})
		errors.ParseAndRespond(c, err, "create")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Communication logged successfully",
		"communication": comm,
	})
}
