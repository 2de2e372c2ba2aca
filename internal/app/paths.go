package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	appDirName = "fooddiary"
	dbFileName = "diary.db"

	// EnvDBPath overrides the default database location when --db is not set.
	EnvDBPath = "DIARY_DB"
)

func DefaultDBPath() (string, error) {
	if v := strings.TrimSpace(os.Getenv(EnvDBPath)); v != "" {
		return v, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, dbFileName), nil
}

func EnsureDBDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return nil
}
