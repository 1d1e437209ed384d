// =============================================================================
// ORAE Bridge - Configuration Module
// =============================================================================
//
// This module loads the bridge configuration from a YAML file.
//
// CONFIGURATION FILE:
//   config.yaml: Pub/Sub identifiers, save paths, validation switches,
//   subscriber tuning and optional archive/layout settings.
//
// LOADING:
//   Load reads the file, applies defaults, then validates. Validation creates
//   the save directories when they are configured but missing. Serve mode
//   additionally calls RequirePubSub.
//
// ENVIRONMENT:
//   LOG_LEVEL overrides log_level when set.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied by Load.
const (
	DefaultLogLevel               = "info"
	DefaultIdleTimeoutMinutes     = 30
	DefaultMaxOutstandingMessages = 100
	DefaultMaxOutstandingBytes    = 10 * 1024 * 1024
	DefaultMaxConcurrency         = 4
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the bridge configuration.
type Config struct {
	// =========================================================================
	// PUB/SUB SETTINGS
	// =========================================================================

	// ProjectID is the Google Cloud project hosting the topic and subscription.
	ProjectID string `yaml:"project_id"`

	// TopicID is the topic record sets are published to.
	TopicID string `yaml:"topic_id"`

	// SubscriptionID is the subscription retail events are received from.
	SubscriptionID string `yaml:"subscription_id"`

	// =========================================================================
	// SAVE SETTINGS
	// =========================================================================

	// InputSavePath is where received events are saved. Empty disables saving.
	InputSavePath string `yaml:"input_save_path"`

	// OutputSavePath is where produced record sets are saved. Empty disables
	// saving in serve mode; in convert mode outputs go next to the input.
	OutputSavePath string `yaml:"output_save_path"`

	// ArchiveBucket is a GCS bucket saved files are copied to. Optional.
	ArchiveBucket string `yaml:"archive_bucket"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// EnableDebugLogging forces debug level.
	EnableDebugLogging bool `yaml:"enable_debug_logging"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// DisableORAEValidation skips input validation. Output validation always
	// runs.
	DisableORAEValidation bool `yaml:"disable_orae_validation"`

	// LayoutTemplate is an optional XLSX workbook overriding the built-in
	// field length layout.
	LayoutTemplate string `yaml:"layout_template"`

	// IdleTimeoutMinutes restarts the subscriber after this long without a
	// message.
	// Default: 30
	IdleTimeoutMinutes int `yaml:"idle_timeout_minutes"`

	// MaxOutstandingMessages bounds unacknowledged messages held by the
	// subscriber.
	// Default: 100
	MaxOutstandingMessages int `yaml:"max_outstanding_messages"`

	// MaxOutstandingBytes bounds the bytes of unacknowledged messages.
	// Default: 10 MiB
	MaxOutstandingBytes int `yaml:"max_outstanding_bytes"`

	// MaxConcurrency is the maximum number of files converted concurrently
	// in batch mode.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`
}

// IdleTimeout returns IdleTimeoutMinutes as a duration.
func (c *Config) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutMinutes) * time.Minute
}

// =============================================================================
// LOADING FUNCTIONS
// =============================================================================

// Load loads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//
// RETURNS:
//   - A pointer to the loaded Config.
//   - An error if the file cannot be read, parsed or validated.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if err := validate(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Parse parses YAML configuration and applies defaults without touching the
// filesystem.
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	applyDefaults(&config)
	return &config, nil
}

// Default returns a configuration with every default applied. It is used
// when no configuration file exists in convert and validate modes.
func Default() *Config {
	var config Config
	applyDefaults(&config)
	return &config
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *Config) {
	if level := strings.TrimSpace(os.Getenv("LOG_LEVEL")); level != "" {
		config.LogLevel = level
	}
	if config.LogLevel == "" {
		config.LogLevel = DefaultLogLevel
	}
	if config.IdleTimeoutMinutes <= 0 {
		config.IdleTimeoutMinutes = DefaultIdleTimeoutMinutes
	}
	if config.MaxOutstandingMessages <= 0 {
		config.MaxOutstandingMessages = DefaultMaxOutstandingMessages
	}
	if config.MaxOutstandingBytes <= 0 {
		config.MaxOutstandingBytes = DefaultMaxOutstandingBytes
	}
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = DefaultMaxConcurrency
	}
}

// validate checks values and creates configured save directories.
func validate(config *Config) error {
	switch strings.ToLower(config.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", config.LogLevel)
	}

	if config.LayoutTemplate != "" {
		if _, err := os.Stat(config.LayoutTemplate); err != nil {
			return fmt.Errorf("layout_template: %w", err)
		}
	}

	for _, dir := range []string{config.InputSavePath, config.OutputSavePath} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// ErrMissingPubSub is returned by RequirePubSub.
var ErrMissingPubSub = errors.New("project_id, topic_id and subscription_id are required")

// RequirePubSub reports whether the Pub/Sub identifiers needed by serve mode
// are set.
func (c *Config) RequirePubSub() error {
	var missing []string
	if c.ProjectID == "" {
		missing = append(missing, "project_id")
	}
	if c.TopicID == "" {
		missing = append(missing, "topic_id")
	}
	if c.SubscriptionID == "" {
		missing = append(missing, "subscription_id")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrMissingPubSub, strings.Join(missing, ", "))
	}
	return nil
}
