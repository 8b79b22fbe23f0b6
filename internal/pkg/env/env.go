package env

import (
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
)

var Env map[string]string

func GetEnv(key, def string) string {
	// Values from the .env file win over the process environment
	if val, ok := Env[key]; ok {
		return val
	}
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// GetEnvInt parses an integer setting, returning def when unset or malformed.
func GetEnvInt(key string, def int) int {
	raw := GetEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Warnf("[Env] %s=%q is not an integer, using %d", key, raw, def)
		return def
	}
	return v
}

// SetupEnvFile loads the first .env found. Containers usually inject plain environment
// variables, so a missing file is not an error.
func SetupEnvFile() {
	envFiles := []string{
		".env",       // Current directory
		"../.env",    // From cmd/
		"../../.env", // Fallback for deeper nesting
	}

	var err error
	for _, envFile := range envFiles {
		Env, err = godotenv.Read(envFile)
		if err == nil {
			log.Infof("[Env] Loaded %s", envFile)
			return
		}
	}

	Env = map[string]string{}
	log.Info("[Env] No .env file found, using process environment")
}

func IsDev() bool {
	return GetEnv("APP_ENV", "prod") == "dev"
}
