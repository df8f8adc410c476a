package routes

import (
	"github.com/HananAabout/PFEHotelGestion/config"
	"github.com/HananAabout/PFEHotelGestion/controllers"
	"github.com/HananAabout/PFEHotelGestion/middlewares"
	"github.com/HananAabout/PFEHotelGestion/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	api := r.Group("/api")
	{
		// Auth routes
		api.POST("/login", controllers.LoginHandler(db))
		api.POST("/register", controllers.RegisterHandler(db))
		api.POST("/password/reset-link", controllers.ResetLinkHandler(db))
		api.POST("/password/reset", controllers.ResetPasswordHandler(db))
	}

	// Staff routes (any authenticated role)

	staff := api.Group("")
	staff.Use(middlewares.AuthMiddleware())
	{
		staff.GET("/rooms", controllers.ListRooms(db))
		staff.POST("/rooms", controllers.CreateRoom(db))
		staff.GET("/rooms/available", controllers.AvailableRooms(db))
		staff.GET("/rooms/status/:statut", controllers.RoomsByStatus(db))
		staff.GET("/rooms/:id", controllers.GetRoom(db))
		staff.PUT("/rooms/:id", controllers.UpdateRoom(db))
		staff.DELETE("/rooms/:id", controllers.DeleteRoom(db))
		staff.PATCH("/rooms/:id/status", controllers.UpdateRoomStatus(db))
		staff.GET("/rooms/:id/status/derived", controllers.DerivedRoomStatus(db, cfg))

		staff.GET("/clients", controllers.ListClients(db))
		staff.POST("/clients", controllers.CreateClient(db))
		staff.GET("/clients/:id", controllers.GetClient(db))
		staff.PUT("/clients/:id", controllers.UpdateClient(db))
		staff.DELETE("/clients/:id", controllers.DeleteClient(db))
		staff.GET("/clients/:id/reservations", controllers.ClientReservations(db))

		staff.GET("/reservations", controllers.ListReservations(db))
		staff.POST("/reservations", controllers.CreateReservation(db, cfg))
		staff.GET("/reservations/:id", controllers.GetReservation(db))
		staff.PUT("/reservations/:id", controllers.UpdateReservation(db, cfg))
		staff.DELETE("/reservations/:id", controllers.DeleteReservation(db, cfg))
		staff.PATCH("/reservations/:id/statut", controllers.UpdateReservationStatus(db, cfg))

		staff.GET("/payments", controllers.ListPayments(db))
		staff.POST("/payments", controllers.CreatePayment(db))
		staff.GET("/payments/:id", controllers.GetPayment(db))
		staff.PUT("/payments/:id", controllers.UpdatePayment(db))
		staff.DELETE("/payments/:id", controllers.DeletePayment(db))
		staff.GET("/payments/:id/receipt", controllers.PaymentReceipt(db))

		staff.GET("/stats/dashboard", controllers.DashboardStats(db))
		staff.GET("/stats/revenue", controllers.RevenueByDay(db))
		staff.GET("/stats/occupancy", controllers.OccupancyStats(db))
	}

	// Admin routes (staff account management)

	admin := api.Group("/users")
	admin.Use(middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleAdministrateur))
	{
		admin.GET("", controllers.ListUsers(db))
		admin.POST("", controllers.CreateUser(db))
		admin.PUT("/:id", controllers.UpdateUser(db))
		admin.DELETE("/:id", controllers.DeleteUser(db))
	}

	// Fallback for unknown routes

	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "page not found"})
	})

	return r
}
