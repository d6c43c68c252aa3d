package util

import (
	"os"
	"path/filepath"
	"strings"
)

// HomeDir returns the user's home directory
func HomeDir() string {
	home, _ := os.UserHomeDir()
	return home
}

// AgentsyncConfigPath returns the agentsync configuration directory.
// AGENTSYNC_HOME overrides the default of ~/.agentsync.
func AgentsyncConfigPath() string {
	if dir := os.Getenv("AGENTSYNC_HOME"); dir != "" {
		return dir
	}
	return filepath.Join(HomeDir(), ".agentsync")
}

// ExpandPath expands a leading ~ to the home directory and resolves relative
// paths against baseDir. An empty baseDir leaves relative paths untouched.
func ExpandPath(path, baseDir string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		return HomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(HomeDir(), path[2:])
	}
	if filepath.IsAbs(path) || baseDir == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(baseDir, path)
}
