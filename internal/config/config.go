package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/talkdeck/talkdeck/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "talkdeck.json"

	// DefaultPort is the default HTTP listener port.
	DefaultPort = 8080

	// DefaultHost is the default HTTP listener host.
	DefaultHost = "localhost"

	// DefaultStorageBackend is used when no backend is configured.
	DefaultStorageBackend = "memory"

	// DefaultSQLitePath is the default database location, relative to
	// the config file.
	DefaultSQLitePath = "data/talkdeck.db"
)

// Storage backend names accepted in storage.backend.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendS3     = "s3"
)

// Config represents the complete talkdeck.json configuration.
type Config struct {
	// Name is the deployment name, used in logs.
	Name string `json:"name,omitempty"`

	// Server contains HTTP listener configuration.
	Server ServerConfig `json:"server,omitempty"`

	// Feed contains talk source configuration.
	Feed FeedConfig `json:"feed,omitempty"`

	// Storage contains persistence backend configuration.
	Storage StorageConfig `json:"storage,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP listener settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`
}

// FeedConfig contains talk source settings.
type FeedConfig struct {
	// URL is the RSS/Atom feed the talk collection is loaded from.
	URL string `json:"url,omitempty"`

	// RefreshOnStart loads the collection once during startup.
	RefreshOnStart bool `json:"refreshOnStart,omitempty"`
}

// StorageConfig contains persistence backend settings.
type StorageConfig struct {
	// Backend selects the KV implementation: memory, sqlite, or s3.
	Backend string `json:"backend,omitempty"`

	// Path is the SQLite database file (sqlite backend).
	Path string `json:"path,omitempty"`

	// Bucket and Prefix locate objects (s3 backend).
	Bucket string `json:"bucket,omitempty"`
	Prefix string `json:"prefix,omitempty"`

	// Region is the AWS region (s3 backend).
	Region string `json:"region,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty"`

	// JSON switches from text to JSON log output.
	JSON bool `json:"json,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		Name: "talkdeck",
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Feed: FeedConfig{
			RefreshOnStart: true,
		},
		Storage: StorageConfig{
			Backend: DefaultStorageBackend,
			Path:    DefaultSQLitePath,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the specified directory. It looks for
// talkdeck.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E101").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path))
		}
		return nil, errors.New("E102").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E102").
			WithDetail("Failed to parse " + path + ": " + err.Error())
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = "talkdeck"
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = DefaultStorageBackend
	}
	if c.Storage.Path == "" {
		c.Storage.Path = DefaultSQLitePath
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E103").
			WithDetail("server.port must be between 0 and 65535")
	}

	switch c.Storage.Backend {
	case BackendMemory, BackendSQLite:
	case BackendS3:
		if c.Storage.Bucket == "" {
			return errors.New("E103").
				WithDetail("storage.bucket is required for the s3 backend")
		}
	default:
		return errors.New("E202").
			WithDetail("storage.backend = " + strconv.Quote(c.Storage.Backend))
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("E103").
			WithDetail("log.level = " + strconv.Quote(c.Log.Level))
	}

	return nil
}

// Address returns the host:port string for the HTTP listener.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// SQLitePath returns the absolute path to the SQLite database file.
func (c *Config) SQLitePath() string {
	if filepath.IsAbs(c.Storage.Path) {
		return c.Storage.Path
	}
	return filepath.Join(c.Dir(), c.Storage.Path)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
