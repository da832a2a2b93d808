package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/7sg56/health-tracker-sub001/internal/core/config"
	"github.com/7sg56/health-tracker-sub001/internal/health"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	Server     string // overrides the configured base URL when set

	// SessionFile is where session cookies persist between invocations
	SessionFile string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Services are the domain services over the shared transport
	Services *health.Services
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "healthtrack", "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/healthtrack/healthtrack.log
// On Linux: $XDG_STATE_HOME/healthtrack/healthtrack.log (defaults to ~/.local/state/...)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "healthtrack", "healthtrack.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "healthtrack", "healthtrack.log")
	}

	return filepath.Join(home, ".local", "state", "healthtrack", "healthtrack.log")
}

// DefaultSessionFile returns where session cookies persist between runs,
// next to the log file in the state directory.
func DefaultSessionFile() string {
	return filepath.Join(filepath.Dir(DefaultLogFile()), "session.json")
}
