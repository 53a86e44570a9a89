package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redhat-data-and-ai/repobridge/pkg/common/structs"
	"github.com/spf13/viper"
)

const envPrefix = "REPOBRIDGE"

// AppConfig is the root of the application configuration
type AppConfig struct {
	App    App          `mapstructure:"app"`
	Bridge BridgeConfig `mapstructure:"bridge" validate:"required"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Jobs   JobsConfig   `mapstructure:"jobs"`
	Log    LogConfig    `mapstructure:"log"`
}

type App struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// BridgeConfig locates the two local bridge processes
type BridgeConfig struct {
	Host           string        `mapstructure:"host" validate:"required"`
	Query          Listener      `mapstructure:"query"`
	REST           Listener      `mapstructure:"rest"`
	HealthTimeout  time.Duration `mapstructure:"healthTimeout" validate:"gt=0"`
	RequestTimeout time.Duration `mapstructure:"requestTimeout" validate:"gt=0"`
	RetryCount     int           `mapstructure:"retryCount" validate:"min=0,max=10"`
	RetryBackoff   time.Duration `mapstructure:"retryBackoff" validate:"min=0"`
}

// Listener is one bridge variant's address. Host overrides BridgeConfig.Host.
type Listener struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"min=1,max=65535"`
}

type CacheConfig struct {
	Driver   string         `mapstructure:"driver" validate:"oneof=memory redis"`
	InMemory InMemoryConfig `mapstructure:"inmemory"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type InMemoryConfig struct {
	DefaultExpiration int32 `mapstructure:"defaultExpiration"`
	CleanupInterval   int32 `mapstructure:"cleanupInterval"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Database int32  `mapstructure:"database"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type JobsConfig struct {
	CacheRefreshInterval time.Duration `mapstructure:"cacheRefreshInterval"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=json text"`
}

var (
	mu        sync.RWMutex
	appConfig *AppConfig
)

// Port returns the configured port for the protocol
func (b BridgeConfig) Port(p structs.Protocol) int {
	if p == structs.ProtocolREST {
		return b.REST.Port
	}
	return b.Query.Port
}

// BaseURL returns the base URL of the bridge serving the protocol
func (b BridgeConfig) BaseURL(p structs.Protocol) string {
	listener := b.Query
	if p == structs.ProtocolREST {
		listener = b.REST
	}
	host := listener.Host
	if host == "" {
		host = b.Host
	}
	return fmt.Sprintf("http://%s", net.JoinHostPort(host, strconv.Itoa(listener.Port)))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "repobridge")
	v.SetDefault("app.environment", "default")
	v.SetDefault("bridge.host", "127.0.0.1")
	v.SetDefault("bridge.query.port", 9876)
	v.SetDefault("bridge.rest.port", 9877)
	v.SetDefault("bridge.healthTimeout", "3s")
	v.SetDefault("bridge.requestTimeout", "30s")
	v.SetDefault("bridge.retryCount", 2)
	v.SetDefault("bridge.retryBackoff", "200ms")
	v.SetDefault("cache.driver", "memory")
	v.SetDefault("cache.inmemory.defaultExpiration", -1)
	v.SetDefault("cache.inmemory.cleanupInterval", -1)
	v.SetDefault("cache.redis.host", "localhost")
	v.SetDefault("cache.redis.port", "6379")
	v.SetDefault("jobs.cacheRefreshInterval", "10m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// LoadConfig reads $WORKDIR/appconfig/<environment>.yaml, applies REPOBRIDGE_*
// environment overrides and stores the result for GetConfig. A missing file is
// not an error, defaults and environment still apply.
func LoadConfig(environment string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(environment)
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(workDir(), "appconfig"))

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config %q: %w", environment, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mu.Lock()
	appConfig = cfg
	mu.Unlock()

	return cfg, nil
}

// GetConfig returns the last loaded config, loading the "default" environment
// on first use.
func GetConfig() (*AppConfig, error) {
	mu.RLock()
	cfg := appConfig
	mu.RUnlock()
	if cfg != nil {
		return cfg, nil
	}
	return LoadConfig(environmentName())
}

// Validate validates the AppConfig struct
func (c *AppConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.Bridge.Query.Port == c.Bridge.REST.Port && c.Bridge.Query.Host == c.Bridge.REST.Host {
		return fmt.Errorf("invalid config: query and rest bridges cannot share port %d", c.Bridge.Query.Port)
	}
	return nil
}

func workDir() string {
	if dir := os.Getenv("WORKDIR"); dir != "" {
		return dir
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}

func environmentName() string {
	if env := os.Getenv("APP_ENV"); env != "" {
		return env
	}
	return "default"
}
