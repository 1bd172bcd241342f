package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/emu-settings-control/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	appName = "emu-settings-control"

	envConfigDir  = "EMU_SETTINGS_CONTROL_CONFIG_DIR"
	envDriversDir = "EMU_SETTINGS_CONTROL_DRIVERS_DIR"
	envGame       = "EMU_SETTINGS_CONTROL_GAME"
	envWidth      = "EMU_SETTINGS_CONTROL_WIDTH"
	envHeight     = "EMU_SETTINGS_CONTROL_HEIGHT"
	envShowFooter = "EMU_SETTINGS_CONTROL_FOOTER"
	envVerbose    = "EMU_SETTINGS_CONTROL_VERBOSE"
	envTrace      = "EMU_SETTINGS_CONTROL_TRACE"
	envLogFile    = "EMU_SETTINGS_CONTROL_LOG_FILE"
	envRootMenu   = "EMU_SETTINGS_CONTROL_ROOT_MENU"
	envLang       = "EMU_SETTINGS_CONTROL_LANG"
	envPoll       = "EMU_SETTINGS_CONTROL_POLL"

	defaultPoll = 1500 * time.Millisecond
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	configDir := fs.String("config-dir", envOrDefault(env, envConfigDir, defaultConfigDir()), "directory holding settings.toml")
	driversDir := fs.String("drivers-dir", envOrDefault(env, envDriversDir, ""), "directory of GPU driver packages (defaults to <config-dir>/gpu_drivers)")
	game := fs.String("game", envOrDefault(env, envGame, ""), "title id of the game whose per-game settings are edited")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "log every action result")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	rootMenu := fs.String("root-menu", envOrDefault(env, envRootMenu, ""), "open directly in a menu such as drivers or settings")
	lang := fs.String("lang", envOrDefault(env, envLang, ""), "language tag for user-facing text")
	poll := fs.Duration("poll", envOrDuration(env, envPoll, defaultPoll), "interval between checks for external changes")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *poll <= 0 {
		return Config{}, fmt.Errorf("poll must be > 0 (got %s)", *poll)
	}

	cfg := Config{
		App: app.Config{
			ConfigDir:    *configDir,
			DriversDir:   *driversDir,
			Game:         strings.TrimSpace(*game),
			Width:        *width,
			Height:       *height,
			ShowFooter:   *footer,
			Verbose:      *verbose,
			RootMenu:     *rootMenu,
			Lang:         *lang,
			PollInterval: *poll,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"configDir":  *configDir,
			"driversDir": *driversDir,
			"game":       *game,
			"width":      strconv.Itoa(*width),
			"height":     strconv.Itoa(*height),
			"footer":     strconv.FormatBool(*footer),
			"trace":      strconv.FormatBool(*trace),
			"verbose":    strconv.FormatBool(*verbose),
			"logFile":    *logFile,
			"rootMenu":   *rootMenu,
			"lang":       *lang,
			"poll":       poll.String(),
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func defaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join("~", ".config", appName)
	}
	return filepath.Join(dir, appName)
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.App.ConfigDir) == "" {
		return fmt.Errorf("config directory required")
	}
	return nil
}
