package configs

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Conf is the configuration loaded by Load, shared by main and the seeders.
var Conf *Config

var vp *viper.Viper

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Seed     SeedConfig     `mapstructure:"seed"`
}

type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	FrontendURL    string        `mapstructure:"frontend_url"`
	BodyLimitMB    int           `mapstructure:"body_limit_mb"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	RateLimit      int           `mapstructure:"rate_limit"`
	Environment    string        `mapstructure:"environment"`
}

type DatabaseConfig struct {
	Driver        string        `mapstructure:"driver"` // postgres | sqlite
	Host          string        `mapstructure:"host"`
	Port          string        `mapstructure:"port"`
	User          string        `mapstructure:"user"`
	Password      string        `mapstructure:"password"`
	Name          string        `mapstructure:"name"`
	SSLMode       string        `mapstructure:"sslmode"`
	SQLitePath    string        `mapstructure:"sqlite_path"`
	MaxOpenConns  int           `mapstructure:"max_open_conns"`
	MaxIdleConns  int           `mapstructure:"max_idle_conns"`
	SlowThreshold time.Duration `mapstructure:"slow_threshold"`
	LogLevel      string        `mapstructure:"log_level"` // silent | error | warn | info
	AutoMigrate   bool          `mapstructure:"auto_migrate"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Directory  string `mapstructure:"directory"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
	Console    bool   `mapstructure:"console"`
}

type SeedConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	File    string `mapstructure:"file"`
}

// PostgresDSN builds the pgx DSN with a server-side statement timeout.
func (d DatabaseConfig) PostgresDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=medsurvey&options=-c statement_timeout=3000",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ no .env file found, using system environment")
	} else {
		log.Println("✅ .env loaded")
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.frontend_url", "http://localhost:5173")
	v.SetDefault("server.body_limit_mb", 10)
	v.SetDefault("server.request_timeout", "5s")
	v.SetDefault("server.rate_limit", 100)
	v.SetDefault("server.environment", "development")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "medical_questionnaire")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.sqlite_path", "medsurvey.db")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.slow_threshold", "200ms")
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.directory", "logs")
	v.SetDefault("logging.max_size", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 7)
	v.SetDefault("logging.compress", true)
	v.SetDefault("logging.console", true)

	v.SetDefault("seed.enabled", false)
	v.SetDefault("seed.file", "internals/seeds/surveys/questionnaires/data_questionnaires.json")
}

// env names kept compatible with the .env files used by deployments
var envAliases = map[string]string{
	"server.port":           "PORT",
	"server.frontend_url":   "FRONTEND_URL",
	"server.environment":    "APP_ENV",
	"database.driver":       "DB_DRIVER",
	"database.host":         "DB_HOST",
	"database.port":         "DB_PORT",
	"database.user":         "DB_USER",
	"database.password":     "DB_PASSWORD",
	"database.name":         "DB_NAME",
	"database.sslmode":      "DB_SSLMODE",
	"database.sqlite_path":  "DB_SQLITE_PATH",
	"database.auto_migrate": "DB_AUTO_MIGRATE",
	"logging.level":         "LOG_LEVEL",
	"logging.directory":     "LOG_DIR",
	"seed.enabled":          "DB_SEED",
	"seed.file":             "DB_SEED_FILE",
}

// Load reads defaults, an optional <configDir>/config.yaml and the environment.
func Load(configDir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(configDir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("MEDSURVEY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envAliases {
		if err := v.BindEnv(key, "MEDSURVEY_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	if cfg.Database.Driver != "postgres" && cfg.Database.Driver != "sqlite" {
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	vp = v
	Conf = &cfg
	return &cfg, nil
}

// WatchConfig hot-reloads the config file. Only the log level is applied live;
// everything else needs a restart.
func WatchConfig(log *zap.Logger, level zap.AtomicLevel) {
	if vp == nil || vp.ConfigFileUsed() == "" {
		return
	}
	vp.OnConfigChange(func(e fsnotify.Event) {
		log.Info("configuration file changed, reloading", zap.String("file", e.Name))
		var next Config
		if err := vp.Unmarshal(&next); err != nil {
			log.Error("error reloading configuration", zap.Error(err))
			return
		}
		if lvl, err := ParseLevel(next.Logging.Level); err == nil && lvl != level.Level() {
			level.SetLevel(lvl)
			log.Info("log level changed", zap.String("level", lvl.String()))
		}
		next.Database = Conf.Database
		Conf = &next
	})
	vp.WatchConfig()
}
