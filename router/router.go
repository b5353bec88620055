package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cafereservas/booking-app/controllers"
	"github.com/cafereservas/booking-app/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	bookingCtrl := controllers.NewBookingController(db)
	tableCtrl := controllers.NewTableController(db)
	authCtrl := controllers.NewAuthController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------

	// Login gets the strict limiter; everything else shares the global one.
	login := r.Group("/auth")
	login.Use(middlewares.NewStrictRateLimiter())
	{
		login.POST("/login", authCtrl.Login)
	}

	// Customers book without an account.
	r.POST("/bookings/create", bookingCtrl.CreateBooking)

	// Public listing, richer for admins carrying a valid token.
	r.GET("/bookings/list", middlewares.OptionalAuth(), bookingCtrl.ListBookings)

	r.GET("/tables/list", tableCtrl.ListTables)

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.RequireAuth(), middlewares.RequireAdmin())

	admin.DELETE("/bookings/cancel/:booking_id", bookingCtrl.CancelBooking)

	admin.POST("/tables/create", tableCtrl.CreateTable)
	admin.DELETE("/tables/delete/:table_id", tableCtrl.DeleteTable)

	admin.POST("/auth/logout", authCtrl.Logout)
	admin.GET("/auth/status", authCtrl.Status)

	return r
}
