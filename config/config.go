package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Store         StoreConfig         `mapstructure:"store"`
	Achievements  AchievementsConfig  `mapstructure:"achievements"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Activity      ActivityConfig      `mapstructure:"activity"`
	Auth          AuthConfig          `mapstructure:"auth"`
	Log           LogConfig           `mapstructure:"log"`
}

type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Database selects the sql driver backing the key/value store.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // "sqlite3", "libsql" or "postgres"
	URL    string `mapstructure:"url"`
}

type StoreConfig struct {
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	Retries     int           `mapstructure:"retries"`
}

type AchievementsConfig struct {
	Cooldown         time.Duration `mapstructure:"cooldown"`
	SerializePerUser bool          `mapstructure:"serialize_per_user"`
}

type NotificationsConfig struct {
	ShownRetention int `mapstructure:"shown_retention"`
}

type ActivityConfig struct {
	Retention int `mapstructure:"retention"`
}

type AuthConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	SessionSecret string `mapstructure:"session_secret"`
	LoginPassword string `mapstructure:"login_password"`
	// SecureCookie marks the session cookie Secure; enable behind TLS.
	SecureCookie bool `mapstructure:"secure_cookie"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "http://localhost:8080"})

	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.url", "./achievements.db")

	v.SetDefault("store.read_timeout", 2*time.Second)
	v.SetDefault("store.retries", 1)

	v.SetDefault("achievements.cooldown", 5*time.Second)
	v.SetDefault("achievements.serialize_per_user", true)

	v.SetDefault("notifications.shown_retention", 10)
	v.SetDefault("activity.retention", 50)

	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.session_secret", "your-secret-key-change-this-in-production")
	v.SetDefault("auth.secure_cookie", false)

	v.SetDefault("log.level", "info")
}

// Load reads config.yaml (and an optional config.local.yaml on top of it)
// from the working directory or ./config, then applies CAPSULE_* env overrides.
func Load() (*Config, error) {
	return LoadWith(viper.New(), ".", "./config")
}

// LoadWith is Load against an explicit viper instance and search path.
func LoadWith(v *viper.Viper, paths ...string) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	SetDefaults(v)

	v.BindEnv("database.url", "CAPSULE_DATABASE_URL", "DATABASE_URL")
	v.BindEnv("server.port", "CAPSULE_SERVER_PORT", "PORT")

	// Allow environment variables
	v.SetEnvPrefix("CAPSULE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		// Config file not found, use defaults
	} else {
		// Local overrides (ignored by git)
		v.SetConfigName("config.local")
		v.MergeInConfig()
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
