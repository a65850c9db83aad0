package config

import (
	"os"
	"path/filepath"
	"strings"
)

const envConfigDir = "WALLE_CONFIG_DIR"

// Dir resolves the config directory: $WALLE_CONFIG_DIR, then the user
// config dir, then a dot directory in the working directory.
func Dir() string {
	if dir := strings.TrimSpace(os.Getenv(envConfigDir)); dir != "" {
		return dir
	}
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		return ".walle"
	}
	return filepath.Join(base, "walle")
}

func DefaultHistoryPath() string {
	return filepath.Join(Dir(), "history.json")
}

func ReplHistoryPath() string {
	return filepath.Join(Dir(), "repl_history")
}
