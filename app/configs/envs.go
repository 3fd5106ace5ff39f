package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type ENV struct {
	DBDriver       string
	DBHost         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBPort         string
	Port           string
	AppURL         string
	AppEnv         string
	AppAuthKey     string
	AppEncKey      string
	AppCSRFKey     string
	PublicDir      string
	ViewsDir       string
	CurrencySymbol string
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	return ENV{
		DBDriver:       getEnv("DB_DRIVER", "mysql"),
		DBHost:         os.Getenv("DB_HOST"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBPort:         os.Getenv("DB_PORT"),
		Port:           getEnv("APP_PORT", ":8080"),
		AppURL:         getEnv("APP_URL", "http://localhost:8080"),
		AppEnv:         getEnv("APP_ENV", "development"),
		AppAuthKey:     os.Getenv("APP_AUTH_KEY"),
		AppEncKey:      os.Getenv("APP_ENC_KEY"),
		AppCSRFKey:     os.Getenv("APP_CSRF_KEY"),
		PublicDir:      getEnv("PUBLIC_DIR", "public"),
		ViewsDir:       getEnv("VIEWS_DIR", "templates"),
		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "$"),
	}

}

func (e ENV) IsProduction() bool {
	return e.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

var LoadENV = LoadEnv()
