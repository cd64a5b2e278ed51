package cli

import (
	"os"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	PlayerID  string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("GLITCHBET_SERVER", "http://localhost:8080"),
		PlayerID:  os.Getenv("GLITCHBET_PLAYER"),
		Output:    "text",
		Verbose:   false,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
