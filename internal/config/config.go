package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	AWSRegion string
	SESSender string // Địa chỉ gửi email vé (để trống thì tắt email)

	JWTSecret          string        // Secret key cho JWT
	JWTExpirationHours time.Duration // Thời gian hết hạn của JWT

	AdminEmail     string // Tài khoản admin seed khi khởi động
	AdminPassword  string
	AdminFirstName string
	AdminLastName  string

	ReservationExpiryInterval time.Duration // Chu kỳ quét reservation pending quá hạn
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Cảnh báo: Không thể tải file .env: %v", err)
	}

	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))

	jwtExpHours, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24")) // Mặc định 24 giờ

	expiryMinutes, _ := strconv.Atoi(getEnv("RESERVATION_EXPIRY_INTERVAL_MINUTES", "5"))

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     dbPort,
		DBUser:     getEnv("DB_USER", "youruser"),         // << THAY THẾ
		DBPassword: getEnv("DB_PASSWORD", "yourpassword"), // << THAY THẾ
		DBName:     getEnv("DB_NAME", "pvms_db"),          // << THAY THẾ
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),

		AWSRegion: getEnv("AWS_REGION", "ap-southeast-1"), // << THAY BẰNG REGION CỦA BẠN
		SESSender: getEnv("SES_SENDER", ""),               // << ĐIỀN ĐỊA CHỈ ĐÃ VERIFY TRONG SES

		JWTSecret:          getEnv("JWT_SECRET", "your-very-secret-key-for-jwt-!@#$"), // << THAY BẰNG SECRET KEY MẠNH HƠN
		JWTExpirationHours: time.Duration(jwtExpHours) * time.Hour,

		AdminEmail:     getEnv("ADMIN_EMAIL", "admin@pvms.local"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", "admin123"), // << THAY THẾ
		AdminFirstName: getEnv("ADMIN_FIRST_NAME", "System"),
		AdminLastName:  getEnv("ADMIN_LAST_NAME", "Admin"),

		ReservationExpiryInterval: time.Duration(expiryMinutes) * time.Minute,
	}
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Biến môi trường '%s' không được đặt, sử dụng giá trị mặc định: '%s'", key, fallback)
	return fallback
}
