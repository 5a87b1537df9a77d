package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kpsunited/kps-admin-backend/internal/app/service"
	"github.com/kpsunited/kps-admin-backend/internal/errors"
	"github.com/kpsunited/kps-admin-backend/internal/middleware"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type LogoutRequest struct {
	Confirmed bool `json:"confirmed"`
}

func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid login request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Password is required")
		return
	}

	session, token, err := ctrl.authService.Login(c.Request.Context(), req.Password)
	if err != nil {
		errors.ParseAndRespond(c, err, "login")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"session": session,
	})
}

func (ctrl *AuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	// Missing body means system-initiated logout, which skips the
	// confirmation step.
	req := LogoutRequest{Confirmed: true}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Warn("Invalid logout request", map[string]interface{}{
				"error": err.Error(),
			})
			errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
			return
		}
	}

	cleared, err := ctrl.authService.Logout(c.Request.Context(), req.Confirmed)
	if err != nil {
		errors.ParseAndRespond(c, err, "logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cleared": cleared,
	})
}

func (ctrl *AuthController) SessionStatus(c *gin.Context) {
	state, session, err := ctrl.authService.SessionState(c.Request.Context())
	if err != nil {
		errors.ParseAndRespond(c, err, "session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state":   state,
		"session": session,
	})
}

// GuardPage answers the console's page-entry check: proceed, or
// redirect and where.
func (ctrl *AuthController) GuardPage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	page := c.Query("page")
	if page == "" {
		log.Warn("Guard check without page", nil)
		errors.BadRequest(c, errors.ValidationRequired, "page is required")
		return
	}

	decision, err := ctrl.authService.EvaluatePage(c.Request.Context(), page)
	if err != nil {
		errors.ParseAndRespond(c, err, "session")
		return
	}

	c.JSON(http.StatusOK, decision)
}
