package router

import (
	"github.com/gin-gonic/gin"

	"github.com/kpsunited/kps-admin-backend/config"
	"github.com/kpsunited/kps-admin-backend/internal/app/controller"
	"github.com/kpsunited/kps-admin-backend/internal/middleware"
	"github.com/kpsunited/kps-admin-backend/internal/websocket"
)

type Router struct {
	authController      *controller.AuthController
	storeController     *controller.StoreController
	vendorController    *controller.VendorController
	queryController     *controller.QueryController
	documentController  *controller.DocumentController
	promotionController *controller.PromotionController
	termsController     *controller.TermsController
	exportController    *controller.ExportController
	authMiddleware      *middleware.AuthMiddleware
	hub                 *websocket.Hub
	config              *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	storeController *controller.StoreController,
	vendorController *controller.VendorController,
	queryController *controller.QueryController,
	documentController *controller.DocumentController,
	promotionController *controller.PromotionController,
	termsController *controller.TermsController,
	exportController *controller.ExportController,
	authMiddleware *middleware.AuthMiddleware,
	hub *websocket.Hub,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:      authController,
		storeController:     storeController,
		vendorController:    vendorController,
		queryController:     queryController,
		documentController:  documentController,
		promotionController: promotionController,
		termsController:     termsController,
		exportController:    exportController,
		authMiddleware:      authMiddleware,
		hub:                 hub,
		config:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "KPS Admin API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		session := v1.Group("/session")
		{
			session.POST("/login", r.authController.Login)
			session.POST("/logout", r.authController.Logout)
			session.GET("/status", r.authController.SessionStatus)
			// The page guard is public: it is exactly what unauthenticated
			// consoles call to find out where to go.
			session.GET("/guard", r.authController.GuardPage)
		}

		// Terms are readable without a session; publishing is admin-only.
		v1.GET("/terms", r.termsController.GetTerms)
		v1.POST("/terms",
			r.authMiddleware.Authenticate(),
			r.termsController.PublishTerms,
		)

		stores := v1.Group("/stores")
		stores.Use(r.authMiddleware.Authenticate())
		{
			stores.GET("", r.storeController.ListStores)
			stores.GET("/report", r.storeController.FilterReport)
			stores.PUT("", r.storeController.UpsertStore)
			stores.DELETE("/:id", r.storeController.DeleteStore)
		}

		members := v1.Group("/members")
		members.Use(r.authMiddleware.Authenticate())
		{
			members.GET("", r.storeController.ListMembers)
		}

		vendors := v1.Group("/vendors")
		vendors.Use(r.authMiddleware.Authenticate())
		{
			vendors.GET("", r.vendorController.ListVendors)
			vendors.PUT("", r.vendorController.UpsertVendor)
			vendors.DELETE("/:id", r.vendorController.DeleteVendor)
			vendors.GET("/communications", r.vendorController.ListCommunications)
			vendors.POST("/communications", r.vendorController.AppendCommunication)
		}

		queries := v1.Group("/queries")
		queries.Use(r.authMiddleware.Authenticate())
		{
			queries.GET("", r.queryController.ListQueries)
			queries.POST("/:id/reply", r.queryController.ReplyToQuery)
		}

		documents := v1.Group("/documents")
		documents.Use(r.authMiddleware.Authenticate())
		{
			documents.GET("", r.documentController.ListDocuments)
			documents.POST("", r.documentController.UploadDocument)
			documents.GET("/:id", r.documentController.DownloadDocument)
			documents.DELETE("/:id", r.documentController.DeleteDocument)
		}

		promotions := v1.Group("/promotions")
		promotions.Use(r.authMiddleware.Authenticate())
		{
			promotions.GET("", r.promotionController.ListPromotions)
			promotions.POST("", r.promotionController.CreatePromotion)
			promotions.DELETE("/:id", r.promotionController.DeletePromotion)
		}

		exports := v1.Group("/exports")
		exports.Use(r.authMiddleware.Authenticate())
		{
			exports.GET("/stores.csv", r.exportController.ExportStoresCSV)
			exports.GET("/stores.json", r.exportController.ExportStoresJSON)
			exports.GET("/emails", r.exportController.EmailList)
			exports.GET("/report", r.exportController.ExportReport)
		}

		// Change-event stream for open consoles.
		v1.GET("/ws",
			r.authMiddleware.Authenticate(),
			websocket.ServeWS(r.hub),
		)
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
