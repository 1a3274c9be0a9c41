package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const (
	// AppName is the application name used for directories and identification
	AppName = "dotr"

	// Version is the application version
	Version = "0.3.0"
)

// ConfigDirectory returns the dotr configuration directory path.
// Linux: ~/.config/dotr (via os.UserConfigDir)
// Windows: C:\Users\{username}\AppData\Local\dotr (via os.UserCacheDir)
func ConfigDirectory() (string, error) {
	var (
		base string
		err  error
	)

	switch runtime.GOOS {
	case "windows":
		// Windows: use AppData\Local (via UserCacheDir)
		base, err = os.UserCacheDir()
	default:
		// Linux/others: use ~/.config (via UserConfigDir)
		base, err = os.UserConfigDir()
	}

	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}

	return filepath.Join(base, AppName), nil
}

// CacheDirectory returns the dotr cache directory path, where the
// check timestamp, pending-update notification and checker log live.
func CacheDirectory() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get cache directory: %w", err)
	}

	return filepath.Join(base, AppName), nil
}
