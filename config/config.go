package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "FLYER"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	OSS      OSSConfig      `mapstructure:"oss"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Projects ProjectsConfig `mapstructure:"projects"`
	Sweeper  SweeperConfig  `mapstructure:"sweeper"`
	Log      LogConfig      `mapstructure:"log"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // mysql, sqlite3
	DSN    string `mapstructure:"dsn"`
}

type OSSConfig struct {
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	Bucket        string `mapstructure:"bucket"`
	PublicBaseURL string `mapstructure:"public_base_url"`
}

type AuthConfig struct {
	Password   string  `mapstructure:"password"`
	LoginRate  float64 `mapstructure:"login_rate"` // attempts per second
	LoginBurst int     `mapstructure:"login_burst"`
}

type ProjectsConfig struct {
	EventNames           []string      `mapstructure:"event_names"`
	ReportMutationErrors bool          `mapstructure:"report_mutation_errors"`
	CreateWait           time.Duration `mapstructure:"create_wait"`
}

type SweeperConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Spec    string `mapstructure:"spec"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json, text
	File   string `mapstructure:"file"`
}

type TracingConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

const DefaultPassword = "password"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.dsn", "flyerboard.db?_busy_timeout=5000")
	v.SetDefault("oss.endpoint", "")
	v.SetDefault("oss.access_key", "")
	v.SetDefault("oss.secret_key", "")
	v.SetDefault("oss.bucket", "flyer-files")
	v.SetDefault("oss.public_base_url", "")
	v.SetDefault("auth.password", DefaultPassword)
	v.SetDefault("auth.login_rate", 1.0)
	v.SetDefault("auth.login_burst", 5)
	v.SetDefault("projects.event_names", []string{})
	v.SetDefault("projects.report_mutation_errors", false)
	v.SetDefault("projects.create_wait", "3s")
	v.SetDefault("sweeper.enabled", false)
	v.SetDefault("sweeper.spec", "0 30 3 * * *")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")
	v.SetDefault("tracing.enabled", false)
}

// Load reads path (optional) and FLYER_* environment variables over the
// defaults. FLYER_DATABASE_DSN overrides database.dsn, and so on.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if c.Auth.Password == "" {
		return errors.New("auth.password must not be empty")
	}
	if c.Auth.LoginRate <= 0 {
		return errors.New("auth.login_rate must be positive")
	}
	if c.Projects.CreateWait < 0 {
		return errors.New("projects.create_wait must not be negative")
	}
	return nil
}

// OSSEnabled reports whether a real bucket is configured.
func (c *Config) OSSEnabled() bool {
	return c.OSS.Endpoint != ""
}
