package service

import (
	"os"
	"strconv"
)

type Config struct {
	Environment string
	Port        string

	OpenAI struct {
		APIKey      string
		BaseURL     string
		VisionModel string
		ImageModel  string
	}

	Flyer struct {
		FontDir string
		UseAPI  bool
		Offline bool
	}
}

func LoadConfig() (*Config, error) {
	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8000"),
	}

	// OpenAI-compatible endpoints
	config.OpenAI.APIKey = getEnv("OPENAI_API_KEY", "")
	config.OpenAI.BaseURL = getEnv("OPENAI_BASE_URL", "")
	config.OpenAI.VisionModel = getEnv("VISION_MODEL", "gpt-4o-mini")
	config.OpenAI.ImageModel = getEnv("IMAGE_MODEL", "gpt-image-1")

	// Flyer rendering
	config.Flyer.FontDir = getEnv("FLYER_FONT_DIR", "./fonts")
	config.Flyer.UseAPI = getEnvBool("USE_IMAGE_API", true)
	config.Flyer.Offline = getEnvBool("OFFLINE_MODE", false)

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
