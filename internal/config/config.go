package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the catpoint binaries.
type Config struct {
	// ServerAddress is the gRPC server address for security service connections.
	ServerAddress string `yaml:"server_addr"`
	// HTTPAddress is the listen address of the admin HTTP server. Empty disables it.
	HTTPAddress string `yaml:"http_addr,omitempty"`
	// Timeout is the duration for network operations and RPC calls.
	Timeout time.Duration `yaml:"timeout"`
	// LogLevel is the minimum level of log messages.
	LogLevel string `yaml:"log_level"`
	// Camera configures the image classifier.
	Camera CameraConfig `yaml:"camera"`
	// Storage configures where the security state is kept.
	Storage StorageConfig `yaml:"storage"`
	// MQTT configures the optional status publisher.
	MQTT MQTTConfig `yaml:"mqtt,omitempty"`
}

// CameraConfig configures the cat classifier.
type CameraConfig struct {
	// Classifier selects the implementation: "fake" or "heuristic".
	Classifier string `yaml:"classifier"`
	// Sensitivity is the confidence threshold in percent handed to the classifier.
	Sensitivity float32 `yaml:"sensitivity"`
}

// StorageConfig configures the repository backend.
type StorageConfig struct {
	// Backend selects the repository: "memory", "file" or "redis".
	Backend string `yaml:"backend"`
	// StateFile is the path to the JSON file used by the file backend.
	StateFile string `yaml:"state_file,omitempty"`
	// RedisURL is the connection URL used by the redis backend.
	RedisURL string `yaml:"redis_url,omitempty"`
	// RedisPrefix namespaces the keys written by the redis backend.
	RedisPrefix string `yaml:"redis_prefix,omitempty"`
}

// MQTTConfig configures the MQTT status publisher. An empty Broker disables it.
type MQTTConfig struct {
	// Broker is the broker URL, e.g. tcp://localhost:1883.
	Broker string `yaml:"broker,omitempty"`
	// ClientID is the MQTT client identifier. A random one is used when empty.
	ClientID string `yaml:"client_id,omitempty"`
	// Username authenticates the client when set.
	Username string `yaml:"username,omitempty"`
	// Password authenticates the client when set.
	Password string `yaml:"password,omitempty"`
	// BaseTopic prefixes every published topic.
	BaseTopic string `yaml:"base_topic,omitempty"`
	// HADiscovery enables Home Assistant discovery payloads.
	HADiscovery bool `yaml:"ha_discovery,omitempty"`
	// HADiscoveryPrefix is the Home Assistant discovery topic prefix.
	HADiscoveryPrefix string `yaml:"ha_discovery_prefix,omitempty"`
}

// Storage backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Classifier implementations.
const (
	ClassifierFake      = "fake"
	ClassifierHeuristic = "heuristic"
)

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "catpoint-settings.yaml"

	// DefaultStateFilename is the default filename for the security state JSON.
	DefaultStateFilename = "catpoint-state.json"

	// DefaultTimeout is the default duration for network operations.
	DefaultTimeout = 5 * time.Second

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"

	// DefaultSensitivity is the classifier confidence threshold in percent.
	DefaultSensitivity float32 = 50

	// DefaultMQTTBaseTopic is the topic prefix used when none is configured.
	DefaultMQTTBaseTopic = "catpoint"

	// DefaultHADiscoveryPrefix is the Home Assistant discovery prefix.
	DefaultHADiscoveryPrefix = "homeassistant"

	// DefaultFilePermissions is the default file permission for config and state files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errServerSocketRequired is returned when server address is missing.
	errServerSocketRequired = errors.New("server address must be provided")
	// errUnknownBackend is returned for unsupported storage backends.
	errUnknownBackend = errors.New("unknown storage backend")
	// errRedisURLRequired is returned when the redis backend has no URL.
	errRedisURLRequired = errors.New("redis_url must be provided for the redis backend")
	// errUnknownClassifier is returned for unsupported classifiers.
	errUnknownClassifier = errors.New("unknown classifier")
	// errInvalidSensitivity is returned for thresholds outside (0, 100].
	errInvalidSensitivity = errors.New("sensitivity must be within (0, 100]")
	// errInvalidTopic is returned for MQTT topics with unsupported characters.
	errInvalidTopic = errors.New("invalid topic, can only contain letters, numbers, underscores and slashes")
	// errUnknownLogLevel is returned for log levels zap does not know.
	errUnknownLogLevel = errors.New("unknown log level")
)

// topicPattern matches valid MQTT base topics.
var topicPattern = regexp.MustCompile(`^[a-zA-Z0-9_]+(/[a-zA-Z0-9_]+)*$`)

// logLevels lists the accepted log level names.
//
//nolint:gochecknoglobals // Read-only lookup table.
var logLevels = map[string]struct{}{
	"debug": {}, "info": {}, "warn": {}, "error": {}, "dpanic": {}, "panic": {}, "fatal": {},
}

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes Config to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions, the file may hold broker credentials.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills defaults for optional fields.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.ServerAddress == "" {
		return errServerSocketRequired
	}

	if _, err := net.ResolveTCPAddr("tcp", settings.ServerAddress); err != nil {
		return fmt.Errorf("invalid server socket: %w", err)
	}

	if settings.HTTPAddress != "" {
		if _, _, err := net.SplitHostPort(settings.HTTPAddress); err != nil {
			return fmt.Errorf("invalid http address: %w", err)
		}
	}

	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	if settings.LogLevel == "" {
		settings.LogLevel = DefaultLogLevel
	}

	if _, ok := logLevels[settings.LogLevel]; !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, settings.LogLevel)
	}

	if err := validateCamera(&settings.Camera); err != nil {
		return err
	}

	if err := validateStorage(&settings.Storage); err != nil {
		return err
	}

	return validateMQTT(&settings.MQTT)
}

// validateCamera fills classifier defaults and checks the threshold.
func validateCamera(camera *CameraConfig) error {
	if camera.Classifier == "" {
		camera.Classifier = ClassifierFake
	}

	switch camera.Classifier {
	case ClassifierFake, ClassifierHeuristic:
	default:
		return fmt.Errorf("%w: %q", errUnknownClassifier, camera.Classifier)
	}

	if camera.Sensitivity == 0 {
		camera.Sensitivity = DefaultSensitivity
	}

	if camera.Sensitivity < 0 || camera.Sensitivity > 100 {
		return errInvalidSensitivity
	}

	return nil
}

// validateStorage fills storage defaults and checks backend-specific fields.
func validateStorage(storage *StorageConfig) error {
	if storage.Backend == "" {
		storage.Backend = BackendFile
	}

	switch storage.Backend {
	case BackendMemory:
	case BackendFile:
		if storage.StateFile == "" {
			storage.StateFile = DefaultStateFilename
		}
	case BackendRedis:
		if storage.RedisURL == "" {
			return errRedisURLRequired
		}

		if _, err := url.Parse(storage.RedisURL); err != nil {
			return fmt.Errorf("invalid redis URL: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", errUnknownBackend, storage.Backend)
	}

	return nil
}

// validateMQTT fills publisher defaults when a broker is configured.
func validateMQTT(mqtt *MQTTConfig) error {
	if mqtt.Broker == "" {
		return nil
	}

	if _, err := url.ParseRequestURI(mqtt.Broker); err != nil {
		return fmt.Errorf("invalid mqtt broker URI: %w", err)
	}

	if mqtt.BaseTopic == "" {
		mqtt.BaseTopic = DefaultMQTTBaseTopic
	}

	if !topicPattern.MatchString(mqtt.BaseTopic) {
		return fmt.Errorf("%w: %q", errInvalidTopic, mqtt.BaseTopic)
	}

	if mqtt.HADiscoveryPrefix == "" {
		mqtt.HADiscoveryPrefix = DefaultHADiscoveryPrefix
	}

	return nil
}
