// Package config resolves wallet settings from viper and the environment.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	memoryDatabase = ":memory:"
	databaseFile   = "wallet.db"
)

// DatabasePath returns where the wallet database lives.
//
// database.path wins when set; ~ and $VARS in it are expanded and relative
// paths are kept relative to the working directory. ":memory:" is passed
// through untouched. Without a setting the file goes under $XDG_DATA_HOME/wallet,
// or ~/.local/share/wallet when XDG_DATA_HOME is unset.
func DatabasePath() string {
	if configured := strings.TrimSpace(viper.GetString("database.path")); configured != "" {
		if configured == memoryDatabase {
			return configured
		}
		return filepath.Clean(expandHome(os.ExpandEnv(configured)))
	}

	if dataHome := os.Getenv("XDG_DATA_HOME"); filepath.IsAbs(dataHome) {
		return filepath.Join(dataHome, "wallet", databaseFile)
	}
	return expandHome(filepath.Join("~", ".local", "share", "wallet", databaseFile))
}

// expandHome replaces a leading ~ with the user's home directory. Paths
// are returned unchanged when the home directory is unknown.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
