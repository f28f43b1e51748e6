package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ecosept/booking-api/internal/audit"
	"github.com/ecosept/booking-api/internal/config"
	"github.com/ecosept/booking-api/internal/domain/role"
	"github.com/ecosept/booking-api/internal/handlers"
	infraRepo "github.com/ecosept/booking-api/internal/infra/repository"
	"github.com/ecosept/booking-api/internal/middleware"
	ucOrder "github.com/ecosept/booking-api/internal/usecase/order"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	orderRepo := infraRepo.NewOrderGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — ORDERS
	// ======================================================
	createOrderUC := ucOrder.NewCreateOrder(orderRepo, auditDispatcher)
	listOrdersUC := ucOrder.NewListOrders(orderRepo)
	updateOrderUC := ucOrder.NewUpdateOrder(orderRepo, auditDispatcher)
	updateStatusUC := ucOrder.NewUpdateOrderStatus(orderRepo, auditDispatcher)
	cancelOrderUC := ucOrder.NewCancelOwnOrder(orderRepo, auditDispatcher)
	busyTimesUC := ucOrder.NewListBusyTimes(orderRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	profileHandler := handlers.NewProfileHandler(db)
	serviceHandler := handlers.NewServiceHandler(db, auditDispatcher)
	categoryHandler := handlers.NewCategoryHandler(db)
	feedbackHandler := handlers.NewFeedbackHandler(db)
	adminUsersHandler := handlers.NewAdminUsersHandler(db, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	orderHandler := handlers.NewOrderHandler(
		db,
		createOrderUC,
		listOrdersUC,
		updateOrderUC,
		updateStatusUC,
		cancelOrderUC,
		busyTimesUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		api.GET("/services", serviceHandler.List)
		api.GET("/categories", categoryHandler.List)
		api.GET("/feedback", feedbackHandler.List)

		api.POST("/orders/check-availability", orderHandler.CheckAvailability)
		api.GET("/orders/busy-times", orderHandler.BusyTimes)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/profile", profileHandler.Get)
			secured.PUT("/profile", profileHandler.Update)
			secured.PUT("/profile/password", profileHandler.ChangePassword)

			secured.POST("/orders", orderHandler.Create)
			secured.GET("/orders", orderHandler.List)
			secured.PATCH("/orders/:id/cancel", orderHandler.Cancel)

			secured.POST("/feedback", feedbackHandler.Submit)

			// ------------------------------
			// STAFF (ADMIN + EMPLOYEE)
			// ------------------------------
			staff := secured.Group("/")
			staff.Use(middleware.RequireRoles(db, role.Admin, role.Employee))
			{
				staff.POST("/services", serviceHandler.Create)
				staff.PUT("/services/:id", serviceHandler.Update)

				staff.PATCH("/orders/:id", orderHandler.Update)
				staff.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
			}

			// ------------------------------
			// ADMIN ONLY
			// ------------------------------
			admin := secured.Group("/")
			admin.Use(middleware.RequireRoles(db, role.Admin))
			{
				admin.DELETE("/services/:id", serviceHandler.Delete)
				admin.POST("/init/services", serviceHandler.InitServices)
				admin.POST("/restore-services", serviceHandler.RestoreServices)

				admin.GET("/admin/users", adminUsersHandler.List)
				admin.PATCH("/admin/users/:id/role", adminUsersHandler.UpdateRole)
				admin.PATCH("/admin/users/:id/profile", adminUsersHandler.UpdateProfile)

				admin.GET("/admin/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
