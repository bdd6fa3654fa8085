package berth

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvConfig describes the ambient env handed to every factory.
type EnvConfig struct {
	Name        string            `yaml:"name"`
	Version     string            `yaml:"version"`
	Commit      string            `yaml:"commit"`
	Environment string            `yaml:"environment"`
	Values      map[string]string `yaml:"values"`

	// EnvKeys lists variables copied into Values from .env files and the
	// process environment. The process environment wins.
	EnvKeys []string `yaml:"env_keys"`
}

// Env is the read-only ambient context passed to every factory.
// It has no mutators; build it once and attach it with Container.AttachEnv.
type Env struct {
	name        string
	version     string
	commit      string
	environment string
	values      map[string]string
}

// NewEnv builds an Env from cfg, resolving EnvKeys against the process
// environment.
func NewEnv(cfg EnvConfig) *Env {
	return buildEnv(cfg, nil)
}

// LoadEnv reads an EnvConfig from a YAML file and resolves its EnvKeys from
// the given .env files and the process environment. An empty path skips the
// YAML file; missing .env files are an error.
//
// Example:
//
//	env, err := berth.LoadEnv("config/app.yaml", ".env")
func LoadEnv(path string, dotenvFiles ...string) (*Env, error) {
	var cfg EnvConfig

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read env config %s: %w", path, err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse env config %s: %w", path, err)
		}
	}

	var dotenv map[string]string

	if len(dotenvFiles) > 0 {
		values, err := godotenv.Read(dotenvFiles...)
		if err != nil {
			return nil, fmt.Errorf("read dotenv files: %w", err)
		}

		dotenv = values
	}

	return buildEnv(cfg, dotenv), nil
}

func buildEnv(cfg EnvConfig, dotenv map[string]string) *Env {
	values := make(map[string]string, len(cfg.Values)+len(cfg.EnvKeys))
	for k, v := range cfg.Values {
		values[k] = v
	}

	for _, key := range cfg.EnvKeys {
		if v, ok := os.LookupEnv(key); ok {
			values[key] = v

			continue
		}

		if v, ok := dotenv[key]; ok {
			values[key] = v
		}
	}

	return &Env{
		name:        cfg.Name,
		version:     cfg.Version,
		commit:      cfg.Commit,
		environment: cfg.Environment,
		values:      values,
	}
}

// Name returns the application name.
func (e *Env) Name() string { return e.name }

// Version returns the build version.
func (e *Env) Version() string { return e.version }

// Commit returns the build commit.
func (e *Env) Commit() string { return e.commit }

// Environment returns the deployment environment, e.g. "production".
func (e *Env) Environment() string { return e.environment }

// Get returns the raw value for key.
func (e *Env) Get(key string) (string, bool) {
	v, ok := e.values[key]

	return v, ok
}

// String returns the value for key or def when it is absent.
func (e *Env) String(key, def string) string {
	if v, ok := e.values[key]; ok {
		return v
	}

	return def
}

// Bool returns the value for key parsed as a bool, or def when it is absent
// or malformed.
func (e *Env) Bool(key string, def bool) bool {
	v, ok := e.values[key]
	if !ok {
		return def
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}

	return b
}

// Int returns the value for key parsed as an int, or def when it is absent
// or malformed.
func (e *Env) Int(key string, def int) int {
	v, ok := e.values[key]
	if !ok {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

// Keys returns the sorted value keys.
func (e *Env) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Values returns a copy of all values.
func (e *Env) Values() map[string]string {
	values := make(map[string]string, len(e.values))
	for k, v := range e.values {
		values[k] = v
	}

	return values
}
