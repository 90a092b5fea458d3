package config

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

const envPrefix = "PETS"

type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

type Config struct {
	HTTP       HTTPConfig       `mapstructure:"http"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Log        LogConfig        `mapstructure:"log"`
	Pagination PaginationConfig `mapstructure:"pagination"`
	Reconcile  ReconcileConfig  `mapstructure:"reconcile"`
}

type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type StorageConfig struct {
	Driver      Driver `mapstructure:"driver"`
	DSN         string `mapstructure:"dsn"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	App    string `mapstructure:"app"`
}

type PaginationConfig struct {
	PageSize    int `mapstructure:"page_size"`
	MaxPageSize int `mapstructure:"max_page_size"`
}

type ReconcileConfig struct {
	// exact | contains (contains = política histórica del PATCH)
	UpdateMatch string `mapstructure:"update_match"`
}

// SetDefaults registra los valores por defecto.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", 5*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)

	v.SetDefault("storage.driver", "")
	v.SetDefault("storage.dsn", "")
	v.SetDefault("storage.auto_migrate", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.app", "pets-api")

	v.SetDefault("pagination.page_size", 10)
	v.SetDefault("pagination.max_page_size", 100)

	v.SetDefault("reconcile.update_match", "exact")
}

// NewViper arma una instancia con defaults + env.
// Variables con prefijo PETS_ (PETS_STORAGE_DSN, PETS_HTTP_ADDR...) y, por compatibilidad,
// las que el servicio ya leía: DB_DSN, LOG_LEVEL, LOG_FORMAT, APP_NAME y PORT.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("storage.dsn", envPrefix+"_STORAGE_DSN", "DB_DSN")
	_ = v.BindEnv("log.level", envPrefix+"_LOG_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("log.format", envPrefix+"_LOG_FORMAT", "LOG_FORMAT")
	_ = v.BindEnv("log.app", envPrefix+"_LOG_APP", "APP_NAME")
	_ = v.BindEnv("port", "PORT")

	SetDefaults(v)
	return v
}

// Load lee la configuración. configPath es opcional (toml, yaml o json según extensión).
func Load(configPath string) (Config, error) {
	v := NewViper()

	if p := strings.TrimSpace(configPath); p != "" {
		v.SetConfigFile(p)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config file %s", p)
		}
	}

	return FromViper(v)
}

func FromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "unmarshal config")
	}

	// PORT pisa http.addr, igual que antes.
	if port := strings.TrimSpace(v.GetString("port")); port != "" {
		cfg.HTTP.Addr = ":" + port
	}

	cfg.Storage.Driver = Driver(strings.ToLower(strings.TrimSpace(string(cfg.Storage.Driver))))
	if cfg.Storage.Driver == "" {
		// Sin driver explícito: si hay DSN asumimos Postgres (comportamiento de DB_DSN).
		if strings.TrimSpace(cfg.Storage.DSN) != "" {
			cfg.Storage.Driver = DriverPostgres
		} else {
			cfg.Storage.Driver = DriverMemory
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres, DriverSQLite:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return errors.Newf("storage.dsn is required for driver %q", c.Storage.Driver)
		}
	default:
		return errors.Newf("unknown storage.driver %q", c.Storage.Driver)
	}

	switch strings.ToLower(strings.TrimSpace(c.Reconcile.UpdateMatch)) {
	case "exact", "contains":
	default:
		return errors.Newf("unknown reconcile.update_match %q", c.Reconcile.UpdateMatch)
	}

	if c.Pagination.PageSize <= 0 {
		return errors.New("pagination.page_size must be positive")
	}
	if c.Pagination.MaxPageSize < c.Pagination.PageSize {
		return errors.New("pagination.max_page_size must be >= pagination.page_size")
	}
	return nil
}
