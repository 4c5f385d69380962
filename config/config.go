// Package config loads the bundledeps command line configuration.
//
// The configuration is a YAML document:
//
//	workspace: BUNDLES.bazel
//	localRepository: ~/.m2/repository
//	remoteRepository: https://repo.example.com/releases
//	releaseTo: dist
//	concurrency: 4
//	executionEnvironments:
//	  JavaSE-1.6: /usr/lib/jvm/java-6
//
// Individual options can be overridden with Set, which backs the --set flag.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"sigs.k8s.io/yaml"
)

// ErrInvalidOption is returned for options the configuration does not support.
var ErrInvalidOption = errors.New("invalid option")

// InvalidOptionError names the option that was rejected.
type InvalidOptionError struct {
	Option string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("configuration does not support the option %s", e.Option)
}

func (e *InvalidOptionError) Unwrap() error {
	return ErrInvalidOption
}

// Config holds the settings shared by the CLI tasks.
type Config struct {
	Workspace             string            `json:"workspace,omitempty"`
	LocalRepository       string            `json:"localRepository,omitempty"`
	RemoteRepository      string            `json:"remoteRepository,omitempty"`
	Username              string            `json:"username,omitempty"`
	Password              string            `json:"password,omitempty"`
	ReleaseTo             string            `json:"releaseTo,omitempty"`
	NestedArchivePattern  string            `json:"nestedArchivePattern,omitempty"`
	TempDir               string            `json:"tempDir,omitempty"`
	Concurrency           int               `json:"concurrency,omitempty"`
	ExecutionEnvironments map[string]string `json:"executionEnvironments,omitempty"`
}

// Options lists the keys accepted by Set.
var Options = []string{
	"workspace",
	"localRepository",
	"remoteRepository",
	"username",
	"password",
	"releaseTo",
	"nestedArchivePattern",
	"tempDir",
	"concurrency",
	"executionEnvironments",
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{Workspace: "BUNDLES.bazel"}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.LocalRepository = filepath.Join(home, ".m2", "repository")
	}
	return cfg
}

// Load reads the configuration file at path on top of Default.
// Unknown keys in the file are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that cannot be expressed in the YAML schema.
func (c *Config) Validate() error {
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must be >= 0, got %d", c.Concurrency)
	}
	if c.Username != "" && c.RemoteRepository == "" {
		return errors.New("username requires remoteRepository")
	}
	return nil
}

// Set assigns a single option from its string form. executionEnvironments
// takes comma separated name=value pairs.
func (c *Config) Set(key, value string) error {
	switch key {
	case "workspace":
		c.Workspace = value
	case "localRepository":
		c.LocalRepository = value
	case "remoteRepository":
		c.RemoteRepository = value
	case "username":
		c.Username = value
	case "password":
		c.Password = value
	case "releaseTo":
		c.ReleaseTo = value
	case "nestedArchivePattern":
		c.NestedArchivePattern = value
	case "tempDir":
		c.TempDir = value
	case "concurrency":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("option %s: %w", key, err)
		}
		if n < 0 {
			return fmt.Errorf("option %s: must be >= 0, got %d", key, n)
		}
		c.Concurrency = n
	case "executionEnvironments":
		envs, err := parsePairs(value)
		if err != nil {
			return fmt.Errorf("option %s: %w", key, err)
		}
		c.ExecutionEnvironments = envs
	default:
		return &InvalidOptionError{Option: key}
	}
	return nil
}

// Apply runs Set for each key=value assignment in order, then Validate.
func (c *Config) Apply(assignments []string) error {
	for _, a := range assignments {
		key, value, ok := strings.Cut(a, "=")
		if !ok {
			return fmt.Errorf("option %q: expected key=value", a)
		}
		if err := c.Set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return err
		}
	}
	return c.Validate()
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func parsePairs(value string) (map[string]string, error) {
	out := make(map[string]string)
	for _, pair := range strings.Split(value, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("expected name=value, got %q", pair)
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out, nil
}
