// Package config loads and writes the optional project configuration of
// the gate.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up at the project
// root.
const FileName = ".agent-gate.yml"

const lockFileName = ".agent-gate.lock"

// Config errors.
var (
	// ErrConfigExists means Save refused to overwrite an existing file.
	ErrConfigExists = errors.New("config file already exists")

	// ErrConfigLocked means another process holds the config lock.
	ErrConfigLocked = errors.New("config file is locked by another process")
)

// Config is the user-facing configuration surface of the gate. The zero
// value is the default behavior: built-in protections on, no extra
// patterns.
type Config struct {
	// DisableDefaultProtections turns off the built-in secret-file
	// patterns entirely. Prefer negation patterns in an ignore file to
	// re-allow individual paths.
	DisableDefaultProtections bool `yaml:"disable_default_protections"`

	// ExtraPatterns are appended after every ignore file and therefore
	// take the highest precedence.
	ExtraPatterns []string `yaml:"extra_patterns"`
}

// Load reads the project configuration from root. A missing file yields
// the zero value with no error; an unreadable or malformed file yields
// the zero value with a warning string, because the gate must still
// produce a decision.
func Load(root string) (Config, string) {
	data, err := os.ReadFile(filepath.Join(root, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, ""
		}
		return Config{}, fmt.Sprintf("cannot read %s: %v", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Sprintf("cannot parse %s: %v", FileName, err)
	}
	return cfg, ""
}

// Save writes cfg to root under a file lock, so concurrent hook installs
// cannot interleave writes. It refuses to overwrite an existing file.
func Save(root string, cfg Config) error {
	fileLock := flock.New(filepath.Join(root, lockFileName))
	locked, err := fileLock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire config lock: %w", err)
	}
	if !locked {
		return ErrConfigLocked
	}
	defer func() {
		_ = fileLock.Unlock()
		_ = os.Remove(fileLock.Path())
	}()

	path := filepath.Join(root, FileName)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
