package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/stridefoot/footwear-erp-api/controllers"
	"github.com/stridefoot/footwear-erp-api/middleware"
)

// setupRouter builds the HTTP engine with every route under /api
func setupRouter(app *application) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(app.cfg.CORSAllowedOrigins)))
	router.MaxMultipartMemory = 12 << 20

	orderCtl := controllers.NewOrderController(app.orders, app.documents, app.qc, app.log)
	documentCtl := controllers.NewDocumentController(app.documents, app.log)
	qcCtl := controllers.NewQCController(app.qc, app.log)
	dashboardCtl := controllers.NewDashboardController(app.dashboard, app.log)
	userCtl := controllers.NewUserController(app.users, app.log)

	api := router.Group("/api")
	{
		api.GET("/health", healthCheck)
		api.GET("/database/status", databaseStatus(app))
	}

	secured := api.Group("")
	identity := middleware.StaticActor(middleware.SystemActor)
	manageUsers := func(c *gin.Context) { c.Next() }
	if app.cfg.AuthEnabled() {
		tokenCheck, err := middleware.EnsureValidToken(app.cfg, app.log)
		if err != nil {
			app.log.Fatal("Failed to set up token validation", "error", err)
		}
		identity = tokenCheck
		manageUsers = middleware.RequireScope(middleware.ScopeManageUsers)
	}
	secured.Use(identity, middleware.RequestLogger(app.log))
	{
		secured.GET("/dashboard/stats", dashboardCtl.Stats)

		secured.GET("/orders", orderCtl.ListOrders)
		secured.POST("/orders", orderCtl.CreateOrder)
		secured.GET("/orders/recent", orderCtl.RecentOrders)
		secured.GET("/orders/:id", orderCtl.GetOrder)
		secured.PATCH("/orders/:id/workflow", orderCtl.UpdateWorkflow)
		secured.GET("/orders/:id/documents", orderCtl.ListOrderDocuments)
		secured.GET("/orders/:id/qc-reports", orderCtl.ListOrderQCReports)

		secured.GET("/qc/reports", qcCtl.ListReports)
		secured.POST("/qc/reports", qcCtl.CreateReport)

		secured.GET("/documents", documentCtl.ListDocuments)
		secured.POST("/documents", documentCtl.UploadDocument)
		secured.GET("/documents/:id/file", documentCtl.DownloadDocument)
		secured.PUT("/documents/:id/link", documentCtl.LinkDocument)

		secured.POST("/users", manageUsers, userCtl.CreateUser)
		secured.GET("/users/:id", userCtl.GetUser)
		secured.PUT("/users/:id/role", manageUsers, userCtl.UpdateRole)
		if app.cfg.AuthEnabled() {
			secured.GET("/users/me", userCtl.GetCurrentUser)
			secured.POST("/users/me", userCtl.RegisterCurrentUser)
		}
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Footwear ERP API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(app *application) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := app.store.Ping(c.Request.Context()); err != nil {
			app.log.Error("Database ping failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_CONNECTION_ERROR",
					"message": "Database connection failed",
				},
			})
			return
		}

		tables, err := app.store.Tables()
		if err != nil {
			app.log.Error("Listing tables failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_QUERY_ERROR",
					"message": "Failed to query tables",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Database connected",
			"tables":  tables,
		})
	}
}
