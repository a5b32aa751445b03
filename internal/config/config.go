package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	envPrefix     = "HARBOR"
	envConfigFile = "HARBOR_CONFIG_FILE"

	defaultPort            = "8080"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultIdleTimeout     = 120 * time.Second
	defaultStoreDriver     = DriverSQLite
	defaultDBPath          = "./harborline.db"
	defaultLoadTimeout     = 10 * time.Second
	defaultFormResetDelay  = 3 * time.Second
	defaultSessionTTL      = 30 * time.Minute
	defaultSessionCapacity = 1024
	defaultLogLevel        = "info"
)

// Store drivers.
const (
	DriverSQLite    = "sqlite"
	DriverFirestore = "firestore"
	DriverMemory    = "memory"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Firestore FirestoreConfig
	Content   ContentConfig
	Forms     FormsConfig
	Log       LogConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	StaticDir      string
	AllowedOrigins []string
}

// StoreConfig selects the document store backend.
type StoreConfig struct {
	Driver string
	DBPath string
}

// FirestoreConfig stores database parameters.
type FirestoreConfig struct {
	ProjectID    string
	EmulatorHost string
}

// ContentConfig controls how content collections are loaded.
type ContentConfig struct {
	LoadTimeout     time.Duration
	RefreshInterval time.Duration
}

// FormsConfig controls submission forms and visitor sessions.
type FormsConfig struct {
	ResetDelay      time.Duration
	SessionTTL      time.Duration
	SessionCapacity int
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level string
}

// ValidationError is returned when configuration fields are invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envMap       map[string]string
	useSystemEnv bool
	configFile   string
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// WithConfigFile reads settings from a YAML file. Keys are the variable names without
// the HARBOR_ prefix in lower case, e.g. `db_path`. Environment variables win over the file.
func WithConfigFile(path string) Option {
	return func(o *loaderOptions) {
		o.configFile = path
	}
}

type lookupFunc func(key string) (string, bool)

// Load assembles the configuration from defaults, an optional config file and
// HARBOR_* environment variables, in increasing order of precedence.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{useSystemEnv: true}
	for _, opt := range opts {
		opt(&options)
	}

	v := viper.New()
	if options.useSystemEnv {
		v.SetEnvPrefix(envPrefix)
		v.AutomaticEnv()
	}

	configFile := options.configFile
	if configFile == "" {
		if value, ok := options.envMap[envConfigFile]; ok {
			configFile = value
		} else if options.useSystemEnv {
			configFile = os.Getenv(envConfigFile)
		}
	}
	if configFile = strings.TrimSpace(configFile); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}

	lookup := func(key string) (string, bool) {
		if value, ok := options.envMap[key]; ok {
			return value, true
		}
		name := strings.ToLower(strings.TrimPrefix(key, envPrefix+"_"))
		if v.IsSet(name) {
			return v.GetString(name), true
		}
		return "", false
	}

	var invalid []string
	durationOf := func(key string, fallback time.Duration) time.Duration {
		d, err := durationWithDefault(lookup, key, fallback)
		if err != nil {
			invalid = append(invalid, key)
		}
		return d
	}
	intOf := func(key string, fallback int) int {
		n, err := intWithDefault(lookup, key, fallback)
		if err != nil {
			invalid = append(invalid, key)
		}
		return n
	}

	cfg := Config{
		Server: ServerConfig{
			Port:           stringWithDefault(lookup, "HARBOR_PORT", defaultPort),
			ReadTimeout:    durationOf("HARBOR_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:   durationOf("HARBOR_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:    durationOf("HARBOR_IDLE_TIMEOUT", defaultIdleTimeout),
			StaticDir:      stringWithDefault(lookup, "HARBOR_STATIC_DIR", ""),
			AllowedOrigins: listWithDefault(lookup, "HARBOR_ALLOWED_ORIGINS", []string{"http://localhost:*"}),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(stringWithDefault(lookup, "HARBOR_STORE_DRIVER", defaultStoreDriver)),
			DBPath: stringWithDefault(lookup, "HARBOR_DB_PATH", defaultDBPath),
		},
		Firestore: FirestoreConfig{
			ProjectID:    stringWithDefault(lookup, "HARBOR_FIRESTORE_PROJECT_ID", ""),
			EmulatorHost: stringWithDefault(lookup, "HARBOR_FIRESTORE_EMULATOR_HOST", ""),
		},
		Content: ContentConfig{
			LoadTimeout:     durationOf("HARBOR_CONTENT_LOAD_TIMEOUT", defaultLoadTimeout),
			RefreshInterval: durationOf("HARBOR_CONTENT_REFRESH_INTERVAL", 0),
		},
		Forms: FormsConfig{
			ResetDelay:      durationOf("HARBOR_FORM_RESET_DELAY", defaultFormResetDelay),
			SessionTTL:      durationOf("HARBOR_SESSION_TTL", defaultSessionTTL),
			SessionCapacity: intOf("HARBOR_SESSION_MAX", defaultSessionCapacity),
		},
		Log: LogConfig{
			Level: strings.ToLower(stringWithDefault(lookup, "HARBOR_LOG_LEVEL", defaultLogLevel)),
		},
	}

	invalid = append(invalid, cfg.validate()...)
	if len(invalid) > 0 {
		return Config{}, &ValidationError{fields: invalid}
	}
	return cfg, nil
}

func (c Config) validate() []string {
	var invalid []string
	switch c.Store.Driver {
	case DriverSQLite:
		if c.Store.DBPath == "" {
			invalid = append(invalid, "HARBOR_DB_PATH")
		}
	case DriverFirestore, DriverMemory:
	default:
		invalid = append(invalid, "HARBOR_STORE_DRIVER")
	}
	if c.Server.Port == "" {
		invalid = append(invalid, "HARBOR_PORT")
	}
	if c.Content.LoadTimeout <= 0 {
		invalid = append(invalid, "HARBOR_CONTENT_LOAD_TIMEOUT")
	}
	if c.Content.RefreshInterval < 0 {
		invalid = append(invalid, "HARBOR_CONTENT_REFRESH_INTERVAL")
	}
	if c.Forms.ResetDelay <= 0 {
		invalid = append(invalid, "HARBOR_FORM_RESET_DELAY")
	}
	if c.Forms.SessionTTL <= 0 {
		invalid = append(invalid, "HARBOR_SESSION_TTL")
	}
	if c.Forms.SessionCapacity <= 0 {
		invalid = append(invalid, "HARBOR_SESSION_MAX")
	}
	return invalid
}

func stringWithDefault(lookup lookupFunc, key, fallback string) string {
	if value, ok := lookup(key); ok {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func durationWithDefault(lookup lookupFunc, key string, fallback time.Duration) (time.Duration, error) {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback, err
	}
	return d, nil
}

func intWithDefault(lookup lookupFunc, key string, fallback int) (int, error) {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback, err
	}
	return n, nil
}

func listWithDefault(lookup lookupFunc, key string, fallback []string) []string {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
