// Package config handles texcalc.toml configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/tliron/commonlog"

	"github.com/zephyrtronium/texcalc"
)

// FileName is the name of configuration files found by FindAndLoad.
const FileName = "texcalc.toml"

var logger = commonlog.GetLogger("texcalc.config")

// Config represents a texcalc.toml file.
type Config struct {
	// HighAccuracy selects extended-precision exponentiation instead of
	// integer powers.
	HighAccuracy bool `toml:"high_accuracy"`
	// Places is the number of decimal places to which results are printed.
	// Negative means results are printed as computed.
	Places int `toml:"places"`
	// MaxDepth limits the nesting of evaluated expressions. Zero means no
	// limit.
	MaxDepth int `toml:"max_depth"`

	// Path is the file the configuration was loaded from, if any.
	Path string `toml:"-"`
}

// Default returns the configuration used when there is no file.
func Default() *Config {
	return &Config{Places: -1}
}

// Load parses a configuration file. Keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	c := Default()
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		logger.Warningf("%s: unknown keys %v", path, keys)
	}
	if c.MaxDepth < 0 {
		return nil, fmt.Errorf("%s: max_depth must not be negative, not %d", path, c.MaxDepth)
	}
	c.Path = path
	logger.Debugf("loaded %s: high_accuracy=%t places=%d max_depth=%d", path, c.HighAccuracy, c.Places, c.MaxDepth)
	return c, nil
}

// LoadOrDefault loads a configuration file, or returns the default
// configuration if the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	c, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debugf("no configuration at %s; using defaults", path)
		return Default(), nil
	}
	return c, err
}

// FindAndLoad walks up from startDir to find a texcalc.toml file, then loads
// and returns it. If no file is found, the result is the default
// configuration.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return Default(), nil
		}
		dir = parent
	}
}

// Apply installs the configuration's process-wide settings.
func (c *Config) Apply() {
	texcalc.SetHighAccuracy(c.HighAccuracy)
}

// EvalOptions returns the evaluator options the configuration implies.
func (c *Config) EvalOptions() []texcalc.EvalOption {
	return []texcalc.EvalOption{
		texcalc.HighAccuracy(c.HighAccuracy),
		texcalc.MaxDepth(c.MaxDepth),
	}
}
