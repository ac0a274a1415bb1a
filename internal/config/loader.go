package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/rshade/vlist/internal/logging"
)

// Environment overrides.
const (
	EnvLogLevel      = "VLIST_LOG_LEVEL"
	EnvItemsPerPage  = "VLIST_ITEMS_PER_PAGE"
	EnvLayoutMode    = "VLIST_LAYOUT_MODE"
	EnvSelectionMode = "VLIST_SELECTION_MODE"
)

// Global file names, tried in order.
const (
	FileNameYAML = "config.yaml"
	FileNameTOML = "config.toml"
)

// ErrUnsupportedFile is returned for config files that are neither YAML nor TOML.
var ErrUnsupportedFile = errors.New("unsupported config file type")

// LoadOptions controls file discovery.
type LoadOptions struct {
	// Path is an explicit global config file. It must exist when set.
	Path string
	// WorkDir is where the project overlay search starts. Empty disables it.
	WorkDir string
}

// Load builds the configuration: defaults, then the global file, then the
// project overlay, then environment overrides. The result is validated.
func Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	log := logging.FromContext(ctx)
	cfg := New()

	path, err := discoverGlobalPath(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("config discovery: %w", err)
	}
	if path != "" {
		if err = loadFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		log.Debug().Str("component", "config").Str("path", path).Msg("loaded config file")
	}

	if opts.WorkDir != "" {
		if overlay := ResolveProjectFile(ctx, opts.WorkDir); overlay != "" {
			if err = ShallowMergeYAML(cfg, overlay); err != nil {
				return nil, err
			}
			log.Debug().Str("component", "config").Str("path", overlay).Msg("merged project config")
		}
	}

	applyEnvOverrides(ctx, cfg)

	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func discoverGlobalPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", err
		}
		return explicit, nil
	}

	dir, err := GetConfigDir()
	if err != nil {
		return "", nil //nolint:nilerr // No resolvable config dir means defaults only.
	}
	for _, name := range []string{FileNameYAML, FileNameTOML} {
		candidate := filepath.Join(dir, name)
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate, nil
		}
	}
	return "", nil
}

// loadFile decodes path onto cfg. Keys absent from the file keep their current values.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parsing YAML: %w", err)
		}
	case ".toml":
		if _, err = toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("parsing TOML: %w", err)
		}
	default:
		return fmt.Errorf("%s: %w", path, ErrUnsupportedFile)
	}
	return nil
}

func applyEnvOverrides(ctx context.Context, cfg *Config) {
	log := logging.FromContext(ctx)

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvItemsPerPage); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.List.ItemsPerPage = n
		} else {
			log.Warn().Str("component", "config").Str("env", EnvItemsPerPage).Str("value", v).
				Msg("not a valid integer, ignoring")
		}
	}
	if v := os.Getenv(EnvLayoutMode); v != "" {
		cfg.Table.LayoutMode = v
	}
	if v := os.Getenv(EnvSelectionMode); v != "" {
		cfg.Table.SelectionMode = v
	}
}

// Encode renders cfg as YAML, or TOML when path ends in .toml.
func Encode(cfg *Config, path string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, fmt.Errorf("encoding TOML: %w", err)
		}
		return buf.Bytes(), nil
	case ".yaml", ".yml", "":
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("encoding YAML: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFile)
	}
}

// Save writes cfg to path, creating parent directories. Existing files are
// only replaced when overwrite is set.
func Save(cfg *Config, path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, os.ErrExist)
		}
	}
	data, err := Encode(cfg, path)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
