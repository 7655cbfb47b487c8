// Package config reads the mycarbs settings from a YAML file and the
// environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/etnz/mycarbs"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file read when none is given.
const DefaultFile = "mycarbs.yaml"

// Store backends.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreS3     = "s3"
	StoreMemory = "memory"
)

// Config holds the settings of the mycarbs command.
type Config struct {
	Store       string `yaml:"store"`
	DataDir     string `yaml:"data_dir"`
	SQLitePath  string `yaml:"sqlite_path"`
	S3Bucket    string `yaml:"s3_bucket"`
	S3Prefix    string `yaml:"s3_prefix"`
	S3Region    string `yaml:"s3_region"`
	GeminiModel string `yaml:"gemini_model"`
	SampleFoods bool   `yaml:"sample_foods"`
	Verbose     bool   `yaml:"verbose"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	dir := ".mycarbs"
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".mycarbs")
	}
	return Config{
		Store:       StoreFile,
		DataDir:     dir,
		GeminiModel: "gemini-2.5-flash",
	}
}

// Load returns the default settings, overridden by the YAML file at path if
// it exists, then by MYCARBS_* environment variables.
func Load(path string) (Config, error) {
	c := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return c, fmt.Errorf("cannot read config %q: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &c); err != nil {
				return c, fmt.Errorf("invalid config %q: %w", path, err)
			}
		}
	}
	if err := c.applyEnv(os.LookupEnv); err != nil {
		return c, err
	}
	return c, c.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"MYCARBS_STORE":        &c.Store,
		"MYCARBS_DATA_DIR":     &c.DataDir,
		"MYCARBS_SQLITE_PATH":  &c.SQLitePath,
		"MYCARBS_S3_BUCKET":    &c.S3Bucket,
		"MYCARBS_S3_PREFIX":    &c.S3Prefix,
		"MYCARBS_S3_REGION":    &c.S3Region,
		"MYCARBS_GEMINI_MODEL": &c.GeminiModel,
	}
	for env, field := range strs {
		if v, ok := lookup(env); ok && v != "" {
			*field = v
		}
	}

	bools := map[string]*bool{
		"MYCARBS_SAMPLE_FOODS": &c.SampleFoods,
		"MYCARBS_VERBOSE":      &c.Verbose,
	}
	for env, field := range bools {
		v, ok := lookup(env)
		if !ok || v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", env, v, err)
		}
		*field = b
	}
	return nil
}

// Validate checks that the selected store has what it needs.
func (c Config) Validate() error {
	switch c.Store {
	case StoreFile, StoreSQLite:
		if c.DataDir == "" && c.SQLitePath == "" {
			return fmt.Errorf("store %q needs a data_dir", c.Store)
		}
	case StoreS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("store %q needs an s3_bucket", c.Store)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown store %q, want one of file, sqlite, s3, memory", c.Store)
	}
	return nil
}

// DatabasePath is the SQLite file of the sqlite store.
func (c Config) DatabasePath() string {
	if c.SQLitePath != "" {
		return c.SQLitePath
	}
	return filepath.Join(c.DataDir, "mycarbs.db")
}

// OpenStore opens the configured backend. closer releases it.
func (c Config) OpenStore(ctx context.Context) (store mycarbs.Store, closer func() error, err error) {
	noop := func() error { return nil }
	switch c.Store {
	case StoreFile:
		s, err := mycarbs.NewFileStore(c.DataDir)
		return s, noop, err
	case StoreSQLite:
		s, err := mycarbs.OpenSQLiteStore(c.DatabasePath())
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case StoreS3:
		s, err := mycarbs.OpenS3Store(ctx, c.S3Region, c.S3Bucket, c.S3Prefix)
		return s, noop, err
	case StoreMemory:
		return mycarbs.NewMemoryStore(), noop, nil
	}
	return nil, nil, c.Validate()
}
