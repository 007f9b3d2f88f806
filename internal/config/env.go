package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIToken  string
	CompanyID string
	BaseURL   string
	Port      string

	FetchTimeout time.Duration
	FetchRetries int

	PdftoppmBin    string
	TesseractBin   string
	OCRDPI         int
	OCRLang        string
	OCRMaxPages    int
	OCRPageTimeout time.Duration

	// ServiceToken guards the tool surface when set; empty disables auth.
	ServiceToken string
}

// LoadConfig loads the environment variables and returns config.
// The two Recruitee credentials are the only required values.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIToken:       getEnv("RECRUITEE_API_TOKEN", ""),
		CompanyID:      getEnv("RECRUITEE_COMPANY_ID", ""),
		BaseURL:        getEnv("RECRUITEE_BASE_URL", "https://api.recruitee.com"),
		Port:           getEnv("PORT", "8080"),
		FetchTimeout:   time.Duration(getEnvInt("FETCH_TIMEOUT_SECONDS", 30)) * time.Second,
		FetchRetries:   getEnvInt("FETCH_RETRIES", 2),
		PdftoppmBin:    getEnv("PDFTOPPM_BIN", "pdftoppm"),
		TesseractBin:   getEnv("TESSERACT_BIN", "tesseract"),
		OCRDPI:         getEnvInt("OCR_DPI", 300),
		OCRLang:        getEnv("OCR_LANG", "eng"),
		OCRMaxPages:    getEnvInt("OCR_MAX_PAGES", 20),
		OCRPageTimeout: time.Duration(getEnvInt("OCR_PAGE_TIMEOUT_SECONDS", 60)) * time.Second,
		ServiceToken:   getEnv("SERVICE_TOKEN", ""),
	}

	if cfg.APIToken == "" || cfg.CompanyID == "" {
		return nil, fmt.Errorf("RECRUITEE_API_TOKEN and RECRUITEE_COMPANY_ID must be set")
	}

	return cfg, nil
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
