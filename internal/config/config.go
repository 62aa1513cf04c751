// Package config loads and validates the pairsync configuration: the
// general section (status storage), named storages, and the pairs that tie
// two storages together. Sources are, in order of precedence, command-line
// flags, environment variables, .env files, and the config file.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pairsync/pairsync/pkg/errors"
	"github.com/pairsync/pairsync/pkg/metasync"
	"github.com/pairsync/pairsync/pkg/storage"
)

// StatusBackend selects how baselines are persisted.
type StatusBackend string

// Supported status backends.
const (
	StatusBackendFile   StatusBackend = "file"
	StatusBackendSQLite StatusBackend = "sqlite"
)

// General holds the settings that apply to every pair.
type General struct {
	// StatusPath is the directory holding baseline snapshots (file backend)
	// or the parent directory of the status database (sqlite backend).
	StatusPath string `mapstructure:"status_path"`

	// StatusBackend picks the baseline store; defaults to "file".
	StatusBackend StatusBackend `mapstructure:"status_backend"`
}

// Pair associates two named storages plus sync options.
type Pair struct {
	Name string `mapstructure:"-"`

	// A and B name the two sides; both must be declared storages.
	A string `mapstructure:"a"`
	B string `mapstructure:"b"`

	// Metadata lists the keys to reconcile, e.g. displayname, color.
	Metadata []string `mapstructure:"metadata"`

	// ConflictResolution is empty, "a wins" or "b wins".
	ConflictResolution string `mapstructure:"conflict_resolution"`
}

// Policy parses the pair's conflict resolution setting.
func (p *Pair) Policy() (metasync.Policy, error) {
	return metasync.ParsePolicy(p.ConflictResolution)
}

// Config is the fully loaded and validated configuration.
type Config struct {
	General  General
	Storages map[string]storage.Config
	Pairs    map[string]Pair

	// File is the config file that was actually read, for diagnostics.
	File string
}

// sectionNameChars is the set of characters allowed in storage and pair
// names. Restricting names keeps status file paths and CLI arguments
// unambiguous.
const sectionNameChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_"

// Load reads the configuration. An explicit path wins; otherwise the
// standard locations are searched (., $HOME, with name .pairsync.yaml).
func Load(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvPrefix("PAIRSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".pairsync")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.NewConfigError("", "cannot read config file", err)
	}

	cfg := &Config{
		Storages: make(map[string]storage.Config),
		Pairs:    make(map[string]Pair),
		File:     v.ConfigFileUsed(),
	}

	if err := v.UnmarshalKey("general", &cfg.General); err != nil {
		return nil, errors.WrapConfig("general", err)
	}

	var storages map[string]storage.Config
	if err := v.UnmarshalKey("storages", &storages); err != nil {
		return nil, errors.WrapConfig("storages", err)
	}
	for name, sc := range storages {
		sc.Name = name
		cfg.Storages[name] = sc
	}

	var pairs map[string]Pair
	if err := v.UnmarshalKey("pairs", &pairs); err != nil {
		return nil, errors.WrapConfig("pairs", err)
	}
	for name, pc := range pairs {
		pc.Name = name
		cfg.Pairs[name] = pc
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills in the optional general settings.
func applyDefaults(cfg *Config) {
	if cfg.General.StatusBackend == "" {
		cfg.General.StatusBackend = StatusBackendFile
	}
	if cfg.General.StatusPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.General.StatusPath = filepath.Join(home, ".local", "share", "pairsync", "status")
		}
	}
}

// Validate checks section names, backend values and cross-references.
func (c *Config) Validate() error {
	var problems []string

	if c.General.StatusPath == "" {
		problems = append(problems, "general.status_path is required")
	}
	switch c.General.StatusBackend {
	case StatusBackendFile, StatusBackendSQLite:
	default:
		problems = append(problems,
			"general.status_backend must be \"file\" or \"sqlite\", not "+string(c.General.StatusBackend))
	}

	for name := range c.Storages {
		if err := validateSectionName(name, "storage"); err != nil {
			problems = append(problems, err.Error())
		}
	}

	for name, pair := range c.Pairs {
		if err := validateSectionName(name, "pair"); err != nil {
			problems = append(problems, err.Error())
		}
		if _, ok := c.Storages[pair.A]; !ok {
			problems = append(problems, "pair "+name+" side a references unknown storage "+pair.A)
		}
		if _, ok := c.Storages[pair.B]; !ok {
			problems = append(problems, "pair "+name+" side b references unknown storage "+pair.B)
		}
		if _, err := pair.Policy(); err != nil {
			problems = append(problems, "pair "+name+": "+err.Error())
		}
	}

	if len(problems) > 0 {
		return errors.NewCommandError("invalid configuration", problems...)
	}
	return nil
}

// validateSectionName rejects names that could not serve as status file
// names or CLI arguments.
func validateSectionName(name, sectionType string) error {
	if name == "" {
		return errors.NewValidationError(sectionType, name, "name must not be empty")
	}
	for _, r := range name {
		if !strings.ContainsRune(sectionNameChars, r) {
			return errors.NewValidationError(sectionType, name,
				"only letters, digits and underscores are allowed in "+sectionType+" names")
		}
	}
	return nil
}

// ParsePairArgs resolves the pair names given on the command line against
// the configured pairs. No arguments means every configured pair, in
// deterministic (sorted) order.
func ParsePairArgs(args []string, pairs map[string]Pair) ([]Pair, error) {
	if len(args) == 0 {
		names := make([]string, 0, len(pairs))
		for name := range pairs {
			names = append(names, name)
		}
		sort.Strings(names)

		selected := make([]Pair, 0, len(names))
		for _, name := range names {
			selected = append(selected, pairs[name])
		}
		return selected, nil
	}

	selected := make([]Pair, 0, len(args))
	for _, arg := range args {
		pair, ok := pairs[arg]
		if !ok {
			return nil, errors.NewNotFoundError("pair", arg)
		}
		selected = append(selected, pair)
	}
	return selected, nil
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}
