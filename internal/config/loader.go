package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads the portal configuration.
// Search order: customPath -> ~/.arcade/configs/portal.yaml -> ./configs/portal.yaml -> embedded default.
// Files are merged onto Default(), so partial files only override what they set.
// Only an explicit customPath that cannot be read or parsed is an error.
func Load(customPath string) (Portal, error) {
	if customPath != "" {
		data, err := os.ReadFile(ExpandHome(customPath))
		if err != nil {
			return Default(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Default(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{"configs/portal.yaml"}
	if p := userConfigPath("portal.yaml"); p != "" {
		candidates = append([]string{p}, candidates...)
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := Parse(defaultPortalYAML)
	if err != nil {
		return Default(), nil
	}
	return cfg, nil
}

// Parse decodes YAML onto the defaults and normalizes the result.
func Parse(data []byte) (Portal, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	cfg.normalize()
	return cfg, nil
}

// normalize replaces values that would stall or break the loop with defaults.
func (p *Portal) normalize() {
	def := Default()
	if p.Loop.TickRate <= 0 {
		p.Loop.TickRate = def.Loop.TickRate
	}
	if p.Loop.FrameRate <= 0 {
		p.Loop.FrameRate = def.Loop.FrameRate
	}
	if p.Loop.MaxCatchUp <= 0 {
		p.Loop.MaxCatchUp = def.Loop.MaxCatchUp
	}
	if p.Analytics.RetentionDays <= 0 {
		p.Analytics.RetentionDays = def.Analytics.RetentionDays
	}
	if p.Storage.Driver == "" {
		p.Storage.Driver = def.Storage.Driver
	}
	if p.Storage.KeyPrefix == "" {
		p.Storage.KeyPrefix = def.Storage.KeyPrefix
	}
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
