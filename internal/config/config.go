package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/ff-token-prober/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// EthereumConfig holds Ethereum-specific configuration
type EthereumConfig struct {
	RPCURL  string       `mapstructure:"rpc_url"`
	ChainID domain.Chain `mapstructure:"chain_id"`
}

// RateLimitConfig holds RPC rate limiting and 429 retry configuration
type RateLimitConfig struct {
	RequestsPerSecond float64       `mapstructure:"requests_per_second"` // 0 disables local limiting
	Burst             int           `mapstructure:"burst"`
	InitialInterval   time.Duration `mapstructure:"initial_interval"`
	MaxInterval       time.Duration `mapstructure:"max_interval"`
	MaxElapsedTime    time.Duration `mapstructure:"max_elapsed_time"` // Total retry time limit for rate-limited calls
}

// DiscoveryConfig holds token discovery configuration
type DiscoveryConfig struct {
	Delay                time.Duration `mapstructure:"delay"`      // Pause after each sample probe and between sweep batches
	BatchSize            int           `mapstructure:"batch_size"` // Parallel probes per sweep batch
	MaxChecks            int           `mapstructure:"max_checks"` // Sweep ceiling
	SweepStart           int64         `mapstructure:"sweep_start"`
	EnumerableSampleSize int           `mapstructure:"enumerable_sample_size"`
}

// MetadataConfig holds metadata resolver configuration
type MetadataConfig struct {
	IPFSGateways    []string      `mapstructure:"ipfs_gateways"`
	ArweaveGateways []string      `mapstructure:"arweave_gateways"`
	GatewayTimeout  time.Duration `mapstructure:"gateway_timeout"` // Per gateway attempt
	HTTPTimeout     time.Duration `mapstructure:"http_timeout"`    // Direct http(s) fetch
	MaxBodySize     int64         `mapstructure:"max_body_size"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// ProberConfig holds configuration for the prober CLI
type ProberConfig struct {
	BaseConfig `mapstructure:",squash"`
	Ethereum   EthereumConfig  `mapstructure:"ethereum"`
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
	Discovery  DiscoveryConfig `mapstructure:"discovery"`
	Metadata   MetadataConfig  `mapstructure:"metadata"`
}

// APIConfig holds configuration for API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig    `mapstructure:"server"`
	Ethereum   EthereumConfig  `mapstructure:"ethereum"`
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
	Discovery  DiscoveryConfig `mapstructure:"discovery"`
	Metadata   MetadataConfig  `mapstructure:"metadata"`
}

// LoadProberConfig loads configuration for the prober CLI
func LoadProberConfig(configFile string, envPath string) (*ProberConfig, error) {
	v := configureViper("prober", configFile, envPath)
	setProbeDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg ProberConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateProbe(cfg.Ethereum, cfg.Discovery, cfg.Metadata); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)
	setProbeDefaults(v)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 300)
	v.SetDefault("server.idle_timeout", 120)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg APIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateProbe(cfg.Ethereum, cfg.Discovery, cfg.Metadata); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setProbeDefaults sets the defaults shared by every service that probes contracts
func setProbeDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("ethereum.chain_id", string(domain.ChainEthereumMainnet))
	v.SetDefault("rate_limit.requests_per_second", 0)
	v.SetDefault("rate_limit.burst", 1)
	v.SetDefault("rate_limit.initial_interval", "500ms")
	v.SetDefault("rate_limit.max_interval", "10s")
	v.SetDefault("rate_limit.max_elapsed_time", "1m")
	v.SetDefault("discovery.delay", "100ms")
	v.SetDefault("discovery.batch_size", 10)
	v.SetDefault("discovery.max_checks", 1000)
	v.SetDefault("discovery.sweep_start", 1)
	v.SetDefault("discovery.enumerable_sample_size", 0)
	v.SetDefault("metadata.ipfs_gateways", []string{
		domain.DEFAULT_IPFS_GATEWAY,
		"https://cloudflare-ipfs.com",
		"https://gateway.pinata.cloud",
	})
	v.SetDefault("metadata.arweave_gateways", []string{domain.DEFAULT_ARWEAVE_GATEWAY})
	v.SetDefault("metadata.gateway_timeout", "10s")
	v.SetDefault("metadata.http_timeout", "30s")
	v.SetDefault("metadata.max_body_size", 10*1024*1024)
}

func validateProbe(eth EthereumConfig, discovery DiscoveryConfig, metadata MetadataConfig) error {
	if !domain.IsValidChain(eth.ChainID) {
		return fmt.Errorf("unsupported chain_id: %s", eth.ChainID)
	}
	if discovery.BatchSize <= 0 {
		return fmt.Errorf("discovery.batch_size must be positive")
	}
	if discovery.MaxChecks <= 0 {
		return fmt.Errorf("discovery.max_checks must be positive")
	}
	if discovery.SweepStart < 0 {
		return fmt.Errorf("discovery.sweep_start must not be negative")
	}
	if metadata.GatewayTimeout < 0 || metadata.HTTPTimeout < 0 {
		return fmt.Errorf("metadata timeouts must not be negative")
	}
	return nil
}

// readConfig reads the config file, tolerating a missing one
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			// Config file not found, use environment variables
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("FF_PROBER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal only sees keys viper knows about, so nested keys must be bound explicitly
	bindEnvs(v)

	return v
}

func bindEnvs(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Ethereum
		"ethereum.rpc_url",
		"ethereum.chain_id",
		// Rate limit
		"rate_limit.requests_per_second",
		"rate_limit.burst",
		"rate_limit.initial_interval",
		"rate_limit.max_interval",
		"rate_limit.max_elapsed_time",
		// Discovery
		"discovery.delay",
		"discovery.batch_size",
		"discovery.max_checks",
		"discovery.sweep_start",
		"discovery.enumerable_sample_size",
		// Metadata
		"metadata.ipfs_gateways",
		"metadata.arweave_gateways",
		"metadata.gateway_timeout",
		"metadata.http_timeout",
		"metadata.max_body_size",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		_ = godotenv.Overload(filepath.Join(envPath, envFile)) // later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// Address returns the listen address of the server
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
