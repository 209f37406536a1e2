package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-recipebox/internal/config"
)

// envPrefix is shared by every recognized variable.
const envPrefix = "RECIPEBOX_"

// envConfig holds configuration from environment variables.
type envConfig struct {
	ConfigPath string // RECIPEBOX_CONFIG: config file name or path
	FormURL    string // RECIPEBOX_FORM_URL: authoring form URL probed by index
	LogLevel   string // RECIPEBOX_LOG_LEVEL: debug, info, warn, error
	Container  bool   // RECIPEBOX_CONTAINER=1: report a container to doctor
}

// knownEnvVars lists valid RECIPEBOX_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"RECIPEBOX_CONFIG":    true,
	"RECIPEBOX_FORM_URL":  true,
	"RECIPEBOX_LOG_LEVEL": true,
	"RECIPEBOX_CONTAINER": true,
}

// loadEnvConfig reads the recognized RECIPEBOX_* values through getenv.
func loadEnvConfig(getenv func(string) string) *envConfig {
	return &envConfig{
		ConfigPath: strings.TrimSpace(getenv("RECIPEBOX_CONFIG")),
		FormURL:    strings.TrimSpace(getenv("RECIPEBOX_FORM_URL")),
		LogLevel:   strings.TrimSpace(getenv("RECIPEBOX_LOG_LEVEL")),
		Container:  getenv("RECIPEBOX_CONTAINER") == "1",
	}
}

// warnUnknownEnvVars prints a warning for each unrecognized RECIPEBOX_*
// variable in environ. Helps catch typos like RECIPEBOX_FORMURL.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name := strings.SplitN(env, "=", 2)[0]
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies set environment values over the loaded config.
// CLI flags are merged afterwards, which gives:
// CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.FormURL != "" {
		cfg.Index.FormURL = env.FormURL
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
}
