// Package config loads server settings from defaults, a YAML file, the environment and flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Store kinds.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
)

// MongoConfig locates the document store.
type MongoConfig struct {
	URI      string `yaml:"uri,omitempty"`
	Database string `yaml:"database,omitempty"`
}

// RedisConfig enables the board cache when Addr is set.
type RedisConfig struct {
	Addr string        `yaml:"addr,omitempty"`
	TTL  time.Duration `yaml:"ttl,omitempty"`
}

// Config is the server configuration.
type Config struct {
	HTTPAddr    string      `yaml:"http_addr"`
	GRPCAddr    string      `yaml:"grpc_addr"`
	Store       string      `yaml:"store"`
	DatabaseDSN string      `yaml:"database_dsn,omitempty"`
	Mongo       MongoConfig `yaml:"mongo,omitempty"`
	Redis       RedisConfig `yaml:"redis,omitempty"`
	Dev         bool        `yaml:"dev,omitempty"`
	LogLevel    string      `yaml:"log_level,omitempty"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		HTTPAddr: ":5002",
		GRPCAddr: ":9090",
		Store:    StoreMemory,
		Mongo:    MongoConfig{Database: "kanban"},
		Redis:    RedisConfig{TTL: 5 * time.Minute},
		LogLevel: "info",
	}
}

// Load builds a Config from args (without the program name) and getenv.
// Later sources win: defaults, then the -config file, then environment, then flags.
func Load(args []string, getenv func(string) string) (*Config, error) {
	cfg := Default()

	var (
		path string
		fl   = cfg
	)
	fs := flag.NewFlagSet("kanban-server", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to YAML config file")
	fs.StringVar(&fl.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&fl.GRPCAddr, "grpc-addr", cfg.GRPCAddr, "gRPC listen address")
	fs.StringVar(&fl.Store, "store", cfg.Store, "board store: memory|postgres|mongo")
	fs.StringVar(&fl.DatabaseDSN, "dsn", cfg.DatabaseDSN, "PostgreSQL DSN")
	fs.StringVar(&fl.Mongo.URI, "mongo-uri", cfg.Mongo.URI, "MongoDB URI")
	fs.StringVar(&fl.Mongo.Database, "mongo-db", cfg.Mongo.Database, "MongoDB database")
	fs.StringVar(&fl.Redis.Addr, "redis-addr", cfg.Redis.Addr, "Redis address for the board cache (empty disables it)")
	fs.DurationVar(&fl.Redis.TTL, "cache-ttl", cfg.Redis.TTL, "board cache TTL")
	fs.BoolVar(&fl.Dev, "dev", cfg.Dev, "development logging and gRPC reflection")
	fs.StringVar(&fl.LogLevel, "log-level", cfg.LogLevel, "debug|info|warn|error")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return nil, err
		}
	}
	applyEnv(&cfg, getenv)

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "http-addr":
			cfg.HTTPAddr = fl.HTTPAddr
		case "grpc-addr":
			cfg.GRPCAddr = fl.GRPCAddr
		case "store":
			cfg.Store = fl.Store
		case "dsn":
			cfg.DatabaseDSN = fl.DatabaseDSN
		case "mongo-uri":
			cfg.Mongo.URI = fl.Mongo.URI
		case "mongo-db":
			cfg.Mongo.Database = fl.Mongo.Database
		case "redis-addr":
			cfg.Redis.Addr = fl.Redis.Addr
		case "cache-ttl":
			cfg.Redis.TTL = fl.Redis.TTL
		case "dev":
			cfg.Dev = fl.Dev
		case "log-level":
			cfg.LogLevel = fl.LogLevel
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	if getenv == nil {
		return
	}
	if v := getenv("PORT"); v != "" {
		cfg.HTTPAddr = ":" + v
	}
	if v := getenv("KANBAN_STORE"); v != "" {
		cfg.Store = v
	}
	if v := getenv("DATABASE_DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := getenv("MONGO_URI"); v != "" {
		cfg.Mongo.URI = v
	}
	if v := getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
}

// Validate checks the store choice has what it needs.
func (c *Config) Validate() error {
	if c.HTTPAddr == "" || c.GRPCAddr == "" {
		return errors.New("http and grpc addresses are required")
	}
	switch c.Store {
	case StoreMemory:
	case StorePostgres:
		if c.DatabaseDSN == "" {
			return errors.New("store postgres requires a DSN (-dsn or DATABASE_DSN)")
		}
	case StoreMongo:
		if c.Mongo.URI == "" {
			return errors.New("store mongo requires a URI (-mongo-uri or MONGO_URI)")
		}
		if c.Mongo.Database == "" {
			return errors.New("store mongo requires a database name")
		}
	default:
		return fmt.Errorf("unknown store %q (want memory, postgres or mongo)", c.Store)
	}
	if c.Redis.Addr != "" && c.Redis.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive, got %s", c.Redis.TTL)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// Logger builds the zap logger: production JSON by default, console output in dev mode.
func (c *Config) Logger() (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if c.Dev {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}
