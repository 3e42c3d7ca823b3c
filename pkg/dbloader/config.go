package dbloader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tailscale/hujson"
)

// Config is the explicit construction-time configuration for a Loader
// (SPEC_FULL.md §4.8): base/overlay paths, a capacity hint for the initial
// entry vectors, the trace level, and a lock-acquisition timeout. The
// timeout is recorded but never enforced — spec §5 rules out user-visible
// timeouts; it exists so a future resource-bounded build has somewhere to
// put the knob without changing the config file format.
type Config struct {
	BasePath             string        `json:"base_path"`    //nolint:tagliatelle
	OverlayPath          string        `json:"overlay_path"` //nolint:tagliatelle
	InitialEntryCapacity int           `json:"initial_entry_capacity,omitempty"`
	LogLevel             string        `json:"log_level,omitempty"`
	LockTimeout          time.Duration `json:"-"`
}

// ConfigFileName is the default project config file name, loaded relative
// to the working directory if present.
const ConfigFileName = ".configdb.jsonc"

// ConfigSources tracks which config files were loaded, mirroring the
// precedence report the teacher's own LoadConfig returns.
type ConfigSources struct {
	Global  string
	Project string
}

// DefaultConfig returns the built-in configuration baseline.
func DefaultConfig() Config {
	return Config{
		BasePath:             "configdb.bin",
		OverlayPath:          "configdb.overlay",
		InitialEntryCapacity: 64,
		LogLevel:             "INFO",
	}
}

// LoadConfig loads configuration with the following precedence (highest
// wins), the same order the teacher's own config layer uses:
//  1. built-in defaults
//  2. global user config ($XDG_CONFIG_HOME/configdb/config.jsonc or
//     ~/.config/configdb/config.jsonc)
//  3. project config file at workDir/.configdb.jsonc, if present, or
//     the explicit config file at configPath instead when configPath is
//     non-empty (the project file is then not read)
//  4. CLI overrides, applied by the caller after LoadConfig returns
func LoadConfig(workDir, configPath string) (Config, ConfigSources, error) {
	cfg := DefaultConfig()

	var sources ConfigSources

	globalCfg, globalPath, err := loadGlobalConfig()
	if err != nil {
		return Config{}, ConfigSources{}, err
	}

	sources.Global = globalPath
	cfg = mergeConfig(cfg, globalCfg)

	projectCfg, projectPath, err := loadProjectConfig(workDir, configPath)
	if err != nil {
		return Config{}, ConfigSources{}, err
	}

	sources.Project = projectPath
	cfg = mergeConfig(cfg, projectCfg)

	return cfg, sources, nil
}

func globalConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "configdb", "config.jsonc")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "configdb", "config.jsonc")
}

func loadGlobalConfig() (Config, string, error) {
	path := globalConfigPath()
	if path == "" {
		return Config{}, "", nil
	}

	cfg, loaded, err := loadConfigFile(path, false)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	return cfg, path, nil
}

func loadProjectConfig(workDir, configPath string) (Config, string, error) {
	var (
		path      string
		mustExist bool
	)

	if configPath != "" {
		path = configPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}

		mustExist = true
	} else {
		path = filepath.Join(workDir, ConfigFileName)
	}

	cfg, loaded, err := loadConfigFile(path, mustExist)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	return cfg, path, nil
}

func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}

		return Config{}, false, fmt.Errorf("reading config %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("invalid JWCC in %s: %w", path, err)
	}

	var cfg Config

	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, false, fmt.Errorf("invalid config JSON in %s: %w", path, err)
	}

	return cfg, true, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.BasePath != "" {
		base.BasePath = overlay.BasePath
	}

	if overlay.OverlayPath != "" {
		base.OverlayPath = overlay.OverlayPath
	}

	if overlay.InitialEntryCapacity != 0 {
		base.InitialEntryCapacity = overlay.InitialEntryCapacity
	}

	if overlay.LogLevel != "" {
		base.LogLevel = strings.ToUpper(overlay.LogLevel)
	}

	return base
}
