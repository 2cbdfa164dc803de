package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsgo_config "github.com/aws/aws-sdk-go-v2/config" // Alias để tránh trùng tên
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/pressly/goose/v3"

	"github.com/Chiesa14/pvms-ne/internal/api"
	"github.com/Chiesa14/pvms-ne/internal/api/middleware"
	"github.com/Chiesa14/pvms-ne/internal/audit"
	"github.com/Chiesa14/pvms-ne/internal/config"
	"github.com/Chiesa14/pvms-ne/internal/gateway"
	"github.com/Chiesa14/pvms-ne/internal/notifier"
	"github.com/Chiesa14/pvms-ne/internal/repository/postgresql"
	"github.com/Chiesa14/pvms-ne/internal/service"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	log.Println("Cấu hình đã được tải.")

	// 2. Setup Database Connection
	db, err := postgresql.NewDB(cfg)
	if err != nil {
		log.Fatalf("Không thể kết nối database: %v", err)
	}
	defer db.Close()
	log.Println("Đã kết nối database thành công!")

	// 3. Chạy migrations
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("Không thể đặt dialect cho goose: %v", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("Không thể chạy migrations: %v", err)
	}
	log.Println("Migrations đã được áp dụng.")

	// 4. Khởi tạo SES email sender (tùy chọn)
	var emailSender notifier.EmailSender
	if cfg.SESSender != "" {
		awsSDKCfg, err := awsgo_config.LoadDefaultConfig(context.TODO(), awsgo_config.WithRegion(cfg.AWSRegion))
		if err != nil {
			log.Fatalf("Không thể tải AWS SDK config: %v", err)
		}
		sesClient := sesv2.NewFromConfig(awsSDKCfg)
		emailSender = notifier.NewSESEmailSender(sesClient, cfg.SESSender)
		log.Println("Đã khởi tạo SES client cho region:", cfg.AWSRegion)
	} else {
		log.Println("CẢNH BÁO: SES_SENDER chưa được cấu hình. Email vé sẽ không được gửi.")
	}

	// 5. Initialize Repositories
	userRepo := postgresql.NewPgUserRepository(db)
	vehicleRepo := postgresql.NewPgVehicleRepository(db)
	parkingSlotRepo := postgresql.NewPgParkingSlotRepository(db)
	reservationRepo := postgresql.NewPgReservationRepository(db)
	paymentRepo := postgresql.NewPgPaymentRepository(db)
	notificationRepo := postgresql.NewPgNotificationRepository(db)
	auditLogRepo := postgresql.NewPgAuditLogRepository(db)

	// init websocket hub
	hub := notifier.NewHub()
	go hub.Start()
	log.Println("WebSocket hub đã được khởi động.")

	ntf := notifier.New(notificationRepo, userRepo, emailSender, hub)
	auditor := audit.NewRecorder(auditLogRepo)
	paymentGateway := gateway.NewSimulatedGateway()

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpirationHours)
	vehicleService := service.NewVehicleService(vehicleRepo, auditor)
	slotService := service.NewParkingSlotService(parkingSlotRepo, auditor)
	reservationService := service.NewReservationService(reservationRepo, vehicleRepo, ntf, auditor)
	paymentService := service.NewPaymentService(paymentRepo, reservationRepo, paymentGateway, ntf, auditor)
	notificationService := service.NewNotificationService(notificationRepo)
	auditService := service.NewAuditService(auditLogRepo)
	analyticsService := service.NewAnalyticsService(userRepo, vehicleRepo, parkingSlotRepo, reservationRepo, paymentRepo)

	// 7. Seed tài khoản admin
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authService.SeedAdmin(seedCtx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminFirstName, cfg.AdminLastName); err != nil {
		log.Fatalf("Không thể seed tài khoản admin: %v", err)
	}
	cancelSeed()

	// 8. Initialize Auth Middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)

	// start background job hủy reservation pending quá hạn
	go startReservationExpiryJob(reservationService, cfg.ReservationExpiryInterval)

	// 9. Setup HTTP Router
	router := api.SetupRouter(authService, vehicleService, slotService, reservationService,
		paymentService, notificationService, auditService, analyticsService, authMiddleware, hub)

	// 10. Start HTTP Server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server đang chạy trên port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Lỗi ListenAndServe(): %v", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Đang tắt server...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server buộc phải tắt: %v", err)
	}

	log.Println("Server đã tắt.")
}

func startReservationExpiryJob(reservationService *service.ReservationService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if _, err := reservationService.ExpirePending(ctx); err != nil {
			log.Printf("Lỗi hủy reservation pending quá hạn: %v", err)
		}
		cancel()
	}
}
