package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kpsunited/kps-admin-backend/internal/app/service"
	"github.com/kpsunited/kps-admin-backend/internal/errors"
	"github.com/kpsunited/kps-admin-backend/internal/middleware"
)

type QueryController struct {
	queryService service.QueryService
}

func NewQueryController(queryService service.QueryService) *QueryController {
	return &QueryController{queryService: queryService}
}

type ReplyRequest struct {
	Reply string `json:"reply"`
}

func (ctrl *QueryController) ListQueries(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	queries, err := ctrl.queryService.ListQueries(c.Request.Context())
	if err != nil {
		log.Error("Failed to list queries", err, nil)
		errors.ParseAndRespond(c, err, "list")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"queries": queries,
		"count":   len(queries),
	})
}

func (ctrl *QueryController) ReplyToQuery(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Warn("Invalid query ID", map[string]interface{}{
			"query_id": c.Param("id"),
		})
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid query ID")
		return
	}

	var req ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid reply request", map[string]interface{}{
			"query_id": id,
			"error":    err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	query, err := ctrl.queryService.ReplyToQuery(c.Request.Context(), id, req.Reply)
	if err != nil {
		log.Warn("Failed to reply to query", map[string]interface{}{
			"query_id": id,
			"error":    err.Error(),
		})
		errors.ParseAndRespond(c, err, "update")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reply sent successfully",
		"query":   query,
	})
}
