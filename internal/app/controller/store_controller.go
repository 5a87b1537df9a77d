package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kpsunited/kps-admin-backend/internal/app/model"
	"github.com/kpsunited/kps-admin-backend/internal/app/service"
	"github.com/kpsunited/kps-admin-backend/internal/errors"
	"github.com/kpsunited/kps-admin-backend/internal/middleware"
)

type StoreController struct {
	storeService service.StoreService
}

func NewStoreController(storeService service.StoreService) *StoreController {
	return &StoreController{storeService: storeService}
}

type StoreRequest struct {
	ID            string   `json:"id" binding:"required"`
	MemberID      string   `json:"memberId"`
	Name          string   `json:"name"`
	BusinessType  string   `json:"businessType"`
	BusinessPhone string   `json:"businessPhone"`
	BusinessEmail string   `json:"businessEmail"`
	City          string   `json:"city"`
	Status        string   `json:"status"`
	Vendors       []string `json:"vendors"`
}

func (ctrl *StoreController) ListStores(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	search := c.Query("search")
	stores, err := ctrl.storeService.FilterStores(c.Request.Context(), search)
	if err != nil {
		log.Error("Failed to list stores", err, nil)
		errors.ParseAndRespond(c, err, "list")
		return
	}

	log.Info("Stores listed", map[string]interface{}{
		"count":  len(stores),
		"search": search,
	})

	c.JSON(http.StatusOK, gin.H{
		"stores": stores,
		"count":  len(stores),
	})
}

func (ctrl *StoreController) ListMembers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	members, err := ctrl.storeService.ListMembers(c.Request.Context())
	if err != nil {
		log.Error("Failed to list members", err, nil)
		errors.ParseAndRespond(c, err, "list")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"members": members,
		"count":   len(members),
	})
}

func (ctrl *StoreController) UpsertStore(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid store request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	store := model.Store{
		ID:            req.ID,
		MemberID:      req.MemberID,
		Name:          req.Name,
		BusinessType:  req.BusinessType,
		BusinessPhone: req.BusinessPhone,
		BusinessEmail: req.BusinessEmail,
		City:          req.City,
		Status:        model.StoreStatus(req.Status),
		Vendors:       req.Vendors,
	}

	stores, err := ctrl.storeService.UpsertStore(c.Request.Context(), store)
	if err != nil {
		log.Error("Failed to upsert store", err, map[string]interface{}{
			"store_id": req.ID,
		})
		errors.ParseAndRespond(c, err, "update")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Store saved successfully",
		"stores":  stores,
	})
}

func (ctrl *StoreController) DeleteStore(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	storeID := c.Param("id")
	result, err := ctrl.storeService.DeleteStore(c.Request.Context(), storeID)
	if err != nil {
		log.Warn("Failed to delete store", map[string]interface{}{
			"store_id": storeID,
			"error":    err.Error(),
		})
		errors.ParseAndRespond(c, err, "delete")
		return
	}

	log.Info("Store deleted", map[string]interface{}{
		"store_id":       result.StoreID,
		"member_removed": result.MemberRemoved,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Store deleted successfully",
		"result":  result,
	})
}

// FilterReport is the town/vendor report behind the directory's
// reporting tab.
func (ctrl *StoreController) FilterReport(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	town := c.Query("town")
	vendors := c.QueryArray("vendor")

	stores, err := ctrl.storeService.FilterByTownAndVendors(c.Request.Context(), town, vendors)
	if err != nil {
		log.Error("Failed to build report", err, nil)
		errors.ParseAndRespond(c, err, "list")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stores": stores,
		"count":  len(stores),
	})
}
