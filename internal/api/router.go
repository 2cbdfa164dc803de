package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Chiesa14/pvms-ne/internal/api/handler"
	"github.com/Chiesa14/pvms-ne/internal/api/middleware"
	"github.com/Chiesa14/pvms-ne/internal/notifier"
	"github.com/Chiesa14/pvms-ne/internal/service"
)

func SetupRouter(
	as *service.AuthService,
	vs *service.VehicleService,
	ss *service.ParkingSlotService,
	rs *service.ReservationService,
	ps *service.PaymentService,
	ns *service.NotificationService,
	als *service.AuditService,
	ans *service.AnalyticsService,
	authMw *middleware.AuthMiddleware,
	hub *notifier.Hub,
) *gin.Engine {
	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// WebSocket endpoint (không cần auth cho real-time connection)
	wsHandler := handler.NewWebSocketHandler(hub)
	r.GET("/ws", wsHandler.HandleWebSocket)

	authHandler := handler.NewAuthHandler(as)
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	v1 := r.Group("/api/v1")
	v1.Use(authMw.Authenticate())
	{
		vehicleH := handler.NewVehicleHandler(vs)
		vehicleRoutes := v1.Group("/vehicles")
		{
			vehicleRoutes.POST("", vehicleH.CreateVehicle)
			vehicleRoutes.GET("/mine", vehicleH.ListVehicles)
			vehicleRoutes.GET("/:id", vehicleH.GetVehicle)
			vehicleRoutes.PUT("/:id", vehicleH.UpdateVehicle)
			vehicleRoutes.DELETE("/:id", vehicleH.DeleteVehicle)
		}

		slotH := handler.NewParkingSlotHandler(ss)
		slotRoutes := v1.Group("/parking-slots")
		{
			slotRoutes.POST("", authMw.AuthorizeRole("admin"), slotH.CreateParkingSlot)
			slotRoutes.GET("", slotH.ListParkingSlots)
			slotRoutes.GET("/:id", slotH.GetParkingSlot)
			slotRoutes.PUT("/:id", authMw.AuthorizeRole("admin"), slotH.UpdateParkingSlot)
			slotRoutes.PATCH("/:id/status", authMw.AuthorizeRole("admin"), slotH.UpdateParkingSlotStatus)
			slotRoutes.DELETE("/:id", authMw.AuthorizeRole("admin"), slotH.DeleteParkingSlot)
		}

		reservationH := handler.NewReservationHandler(rs)
		reservationRoutes := v1.Group("/reservations")
		{
			reservationRoutes.POST("", reservationH.CreateReservation)
			reservationRoutes.GET("/mine", reservationH.ListMyReservations)
			reservationRoutes.PATCH("/:id/cancel", reservationH.CancelReservation)
			reservationRoutes.GET("", authMw.AuthorizeRole("admin"), reservationH.ListAllReservations)
			reservationRoutes.PATCH("/:id/acknowledge", authMw.AuthorizeRole("admin"), reservationH.AcknowledgeReservation)
			reservationRoutes.PATCH("/:id/revoke", authMw.AuthorizeRole("admin"), reservationH.RevokeReservation)
		}

		paymentH := handler.NewPaymentHandler(ps)
		paymentRoutes := v1.Group("/payments")
		{
			paymentRoutes.POST("/initiate", paymentH.InitiatePayment)
			paymentRoutes.POST("/verify", paymentH.VerifyPayment)
			paymentRoutes.GET("/mine", paymentH.ListMyPayments)
			paymentRoutes.GET("", authMw.AuthorizeRole("admin"), paymentH.ListAllPayments)
		}

		notificationH := handler.NewNotificationHandler(ns)
		notificationRoutes := v1.Group("/notifications")
		{
			notificationRoutes.GET("/mine", notificationH.ListMyNotifications)
			notificationRoutes.PATCH("/:id/read", notificationH.MarkNotificationRead)
		}

		// Chỉ admin được xem audit logs
		auditH := handler.NewAuditLogHandler(als)
		auditRoutes := v1.Group("/audit-logs")
		auditRoutes.Use(authMw.AuthorizeRole("admin"))
		{
			auditRoutes.GET("", auditH.ListAuditLogs)
			auditRoutes.GET("/search", auditH.SearchAuditLogs)
			auditRoutes.GET("/table/:tableName", auditH.ListAuditLogsByTable)
			auditRoutes.GET("/table/:tableName/record/:recordId", auditH.ListAuditLogsByRecord)
		}

		analyticsH := handler.NewAnalyticsHandler(ans)
		analyticsRoutes := v1.Group("/analytics")
		analyticsRoutes.Use(authMw.AuthorizeRole("admin"))
		{
			analyticsRoutes.GET("/dashboard", analyticsH.GetDashboard)
		}
	}
	return r
}
