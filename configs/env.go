package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv reads .env once at startup. A missing file is fine in
// environments where everything comes from the process environment.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded, using process environment")
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func EnvMongoURI() string {
	return getEnv("MONGOURI", "mongodb://localhost:27017")
}

func EnvMongoDBName() string {
	return getEnv("MONGO_DB_NAME", "paanshala")
}

func EnvPort() string {
	return getEnv("PORT", "3000")
}

func EnvJWTSecret() string {
	return os.Getenv("JWT_SECRET")
}

func EnvRazorpayKeyId() string {
	return os.Getenv("RAZORPAY_KEY_ID")
}

func EnvRazorpayKeySecret() string {
	return os.Getenv("RAZORPAY_KEY_SECRET")
}

func EnvCloudinaryURL() string {
	return os.Getenv("CLOUDINARY_URL")
}

func EnvSMTPHost() string {
	return getEnv("SMTP_HOST", "smtp.gmail.com")
}

func EnvSMTPPort() string {
	return getEnv("SMTP_PORT", "587")
}

func EnvSMTPUser() string {
	return os.Getenv("SMTP_USER")
}

func EnvSMTPPassword() string {
	return os.Getenv("SMTP_PASSWORD")
}

func EnvMailFrom() string {
	return getEnv("MAIL_FROM", "orders@paanshala.in")
}
